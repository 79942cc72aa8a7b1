// Package memory 提供仓储接口的内存实现，测试不依赖 PostgreSQL。
// 行为对齐 gorm 实现：找不到记录返回 gorm.ErrRecordNotFound，
// 更新推进 UpdatedAt，列表排序与 SQL 版一致
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"CarnivalLive/internal/model"
	"CarnivalLive/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store 同时实现四个仓储接口
type Store struct {
	mu            sync.Mutex
	sports        map[string]model.Sport
	matches       map[string]model.Match
	announcements map[string]model.Announcement
	users         map[string]model.User

	base time.Time
	seq  int64

	// readErr 非空时所有查询返回该错误，用于模拟存储故障
	readErr error
}

// NewStore 创建空的内存仓储
func NewStore() *Store {
	return &Store{
		sports:        map[string]model.Sport{},
		matches:       map[string]model.Match{},
		announcements: map[string]model.Announcement{},
		users:         map[string]model.User{},
		base:          time.Now().UTC(),
	}
}

// 编译期检查：各实体视图覆盖对应的仓储接口
var (
	_ repository.SportRepository        = (*Store)(nil)
	_ repository.MatchRepository        = (*matchStore)(nil)
	_ repository.AnnouncementRepository = (*announcementStore)(nil)
	_ repository.UserRepository         = (*userStore)(nil)
)

// tick 单调递增的时间戳，保证排序稳定
func (s *Store) tick() time.Time {
	s.seq++
	return s.base.Add(time.Duration(s.seq) * time.Millisecond)
}

// SetReadErr 设置（或传 nil 清除）查询故障，持锁写入，流式测试会跨协程调用
func (s *Store) SetReadErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// SeedUser 注入用户（用户表没有写接口）
func (s *Store) SeedUser(user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

// --- SportRepository ---

func (s *Store) ListAll(ctx context.Context) ([]*model.Sport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	out := make([]*model.Sport, 0, len(s.sports))
	for _, sp := range s.sports {
		cp := sp
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (*model.Sport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	for _, sp := range s.sports {
		if sp.Slug == slug {
			cp := sp
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Store) GetByID(ctx context.Context, id string) (*model.Sport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	if sp, ok := s.sports[id]; ok {
		cp := sp
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Store) Create(ctx context.Context, sport *model.Sport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sport.ID == "" {
		sport.ID = uuid.NewString()
	}
	now := s.tick()
	sport.CreatedAt = now
	sport.UpdatedAt = now
	s.sports[sport.ID] = *sport
	return nil
}

// --- MatchRepository ---

// Matches 比赛仓储视图。Create 方法名与 SportRepository 冲突，
// 所以比赛/公告/用户仓储按实体拆成视图类型
func (s *Store) Matches() repository.MatchRepository { return (*matchStore)(s) }

type matchStore Store

func (m *matchStore) Create(ctx context.Context, match *model.Match) error {
	s := (*Store)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.sports[match.SportID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	now := s.tick()
	match.CreatedAt = now
	match.UpdatedAt = now
	stored := *match
	stored.Sport = nil
	s.matches[match.ID] = stored
	cp := sp
	match.Sport = &cp
	return nil
}

func (m *matchStore) GetByID(ctx context.Context, id string) (*model.Match, error) {
	s := (*Store)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.matchByIDLocked(id)
}

func (m *matchStore) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Match, error) {
	s := (*Store)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for column, value := range fields {
		switch column {
		case "team_a":
			match.TeamA = value.(string)
		case "team_b":
			match.TeamB = value.(string)
		case "status":
			match.Status = value.(string)
		case "start_time":
			t := value.(time.Time)
			match.StartTime = &t
		case "venue":
			v := value.(string)
			match.Venue = &v
		case "score":
			match.Score = toJSON(value)
		}
	}
	if len(fields) > 0 {
		match.UpdatedAt = s.tick()
		s.matches[id] = match
	}
	return s.matchByIDLocked(id)
}

func (m *matchStore) Delete(ctx context.Context, id string) error {
	s := (*Store)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, id)
	return nil
}

func (m *matchStore) List(ctx context.Context, filter repository.MatchFilter) ([]*model.Match, error) {
	s := (*Store)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	out := s.collectMatchesLocked(filter.SportID, filter.Statuses)
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *matchStore) ListLiveBoard(ctx context.Context, sportID string) ([]*model.Match, error) {
	s := (*Store)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	out := s.collectMatchesLocked(sportID, []string{model.MatchLive, model.MatchUpcoming})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Status != out[j].Status {
			return out[i].Status < out[j].Status
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *Store) matchByIDLocked(id string) (*model.Match, error) {
	match, ok := s.matches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := match
	if sp, ok := s.sports[match.SportID]; ok {
		spCp := sp
		cp.Sport = &spCp
	}
	return &cp, nil
}

func (s *Store) collectMatchesLocked(sportID string, statuses []string) []*model.Match {
	out := []*model.Match{}
	for _, match := range s.matches {
		if sportID != "" && match.SportID != sportID {
			continue
		}
		if len(statuses) > 0 && !contains(statuses, match.Status) {
			continue
		}
		cp := match
		if sp, ok := s.sports[match.SportID]; ok {
			spCp := sp
			cp.Sport = &spCp
		}
		out = append(out, &cp)
	}
	return out
}

// --- AnnouncementRepository ---

func (s *Store) Announcements() repository.AnnouncementRepository { return (*announcementStore)(s) }

type announcementStore Store

func (a *announcementStore) Create(ctx context.Context, ann *model.Announcement) error {
	s := (*Store)(a)
	s.mu.Lock()
	defer s.mu.Unlock()
	if ann.ID == "" {
		ann.ID = uuid.NewString()
	}
	now := s.tick()
	ann.CreatedAt = now
	ann.UpdatedAt = now
	s.announcements[ann.ID] = *ann
	return nil
}

func (a *announcementStore) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	s := (*Store)(a)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	if ann, ok := s.announcements[id]; ok {
		cp := ann
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (a *announcementStore) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Announcement, error) {
	s := (*Store)(a)
	s.mu.Lock()
	defer s.mu.Unlock()
	ann, ok := s.announcements[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for column, value := range fields {
		switch column {
		case "title":
			ann.Title = value.(string)
		case "body":
			ann.Body = value.(string)
		case "pinned":
			ann.Pinned = value.(bool)
		}
	}
	if len(fields) > 0 {
		ann.UpdatedAt = s.tick()
		s.announcements[id] = ann
	}
	cp := ann
	return &cp, nil
}

func (a *announcementStore) Delete(ctx context.Context, id string) error {
	s := (*Store)(a)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.announcements, id)
	return nil
}

func (a *announcementStore) List(ctx context.Context, limit int) ([]*model.Announcement, error) {
	s := (*Store)(a)
	return s.listAnnouncements(false, limit)
}

func (a *announcementStore) ListPinned(ctx context.Context, limit int) ([]*model.Announcement, error) {
	s := (*Store)(a)
	return s.listAnnouncements(true, limit)
}

func (s *Store) listAnnouncements(pinnedOnly bool, limit int) ([]*model.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	out := []*model.Announcement{}
	for _, ann := range s.announcements {
		if pinnedOnly && !ann.Pinned {
			continue
		}
		cp := ann
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- UserRepository ---

func (s *Store) Users() repository.UserRepository { return (*userStore)(s) }

type userStore Store

func (u *userStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	s := (*Store)(u)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := user
	if cp.SportID != nil {
		if sp, ok := s.sports[*cp.SportID]; ok {
			spCp := sp
			cp.Sport = &spCp
		}
	}
	return &cp, nil
}

func toJSON(v interface{}) datatypes.JSON {
	switch t := v.(type) {
	case datatypes.JSON:
		return t
	case []byte:
		return datatypes.JSON(t)
	default:
		b, _ := json.Marshal(t)
		return datatypes.JSON(b)
	}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
