package service

import (
	"context"
	"errors"
	"time"

	"CarnivalLive/internal/auth"
	"CarnivalLive/internal/model"
	"CarnivalLive/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminService 后台写接口的业务层：输入校验之外的归属判定与持久化都在这里
type AdminService struct {
	sports        repository.SportRepository
	matches       repository.MatchRepository
	announcements repository.AnnouncementRepository
	logger        *logrus.Logger
}

// NewAdminService 创建 AdminService
func NewAdminService(
	sports repository.SportRepository,
	matches repository.MatchRepository,
	announcements repository.AnnouncementRepository,
	logger *logrus.Logger,
) *AdminService {
	return &AdminService{
		sports:        sports,
		matches:       matches,
		announcements: announcements,
		logger:        logger,
	}
}

// CreateMatchInput 新建比赛请求体
type CreateMatchInput struct {
	SportSlug string         `json:"sportSlug" binding:"required"`
	TeamA     string         `json:"teamA" binding:"required"`
	TeamB     string         `json:"teamB" binding:"required"`
	Status    string         `json:"status"`
	StartTime *time.Time     `json:"startTime"`
	Venue     *string        `json:"venue"`
	Score     datatypes.JSON `json:"score"`
}

// UpdateMatchInput 部分更新请求体。nil 字段不动
type UpdateMatchInput struct {
	TeamA     *string        `json:"teamA"`
	TeamB     *string        `json:"teamB"`
	Status    *string        `json:"status"`
	StartTime *time.Time     `json:"startTime"`
	Venue     *string        `json:"venue"`
	Score     datatypes.JSON `json:"score"`
}

// CreateMatch 新建比赛：先解析项目 slug，再做归属判定
func (s *AdminService) CreateMatch(ctx context.Context, principal *model.User, input *CreateMatchInput) (*model.Match, error) {
	sport, err := s.sports.GetBySlug(ctx, input.SportSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	if !auth.CanManageSport(principal, sport.ID) {
		return nil, &ForbiddenError{Action: "manage", Resource: "sport"}
	}

	status := input.Status
	if status == "" {
		status = model.MatchUpcoming
	}
	match := &model.Match{
		SportID:   sport.ID,
		TeamA:     input.TeamA,
		TeamB:     input.TeamB,
		Status:    status,
		StartTime: input.StartTime,
		Venue:     input.Venue,
		Score:     input.Score,
	}
	if err := s.matches.Create(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

// GetMatch 后台读单场比赛，带归属判定
func (s *AdminService) GetMatch(ctx context.Context, principal *model.User, id string) (*model.Match, error) {
	match, err := s.loadMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanManageSport(principal, match.SportID) {
		return nil, &ForbiddenError{Action: "view", Resource: "match"}
	}
	return match, nil
}

// UpdateMatch 部分更新：只写入请求中出现的字段，updated_at 随之推进
func (s *AdminService) UpdateMatch(ctx context.Context, principal *model.User, id string, input *UpdateMatchInput) (*model.Match, error) {
	match, err := s.loadMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanManageSport(principal, match.SportID) {
		return nil, &ForbiddenError{Action: "update", Resource: "match"}
	}

	fields := map[string]interface{}{}
	if input.TeamA != nil {
		fields["team_a"] = *input.TeamA
	}
	if input.TeamB != nil {
		fields["team_b"] = *input.TeamB
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.StartTime != nil {
		fields["start_time"] = *input.StartTime
	}
	if input.Venue != nil {
		fields["venue"] = *input.Venue
	}
	if input.Score != nil {
		fields["score"] = input.Score
	}
	return s.matches.Update(ctx, id, fields)
}

// DeleteMatch 删除比赛，带归属判定
func (s *AdminService) DeleteMatch(ctx context.Context, principal *model.User, id string) error {
	match, err := s.loadMatch(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanManageSport(principal, match.SportID) {
		return &ForbiddenError{Action: "delete", Resource: "match"}
	}
	return s.matches.Delete(ctx, id)
}

// ListMatches 后台比赛列表。SPORT_ADMIN 无视入参强制过滤到自己的项目
func (s *AdminService) ListMatches(ctx context.Context, principal *model.User, sportID, status string) ([]*model.Match, error) {
	filter := repository.MatchFilter{SportID: sportID}
	if principal.Role == model.RoleSportAdmin {
		if principal.SportID == nil {
			return []*model.Match{}, nil
		}
		filter.SportID = *principal.SportID
	}
	if status != "" {
		filter.Statuses = []string{status}
	}
	return s.matches.List(ctx, filter)
}

// CreateAnnouncementInput 新建公告请求体
type CreateAnnouncementInput struct {
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body" binding:"required"`
	Pinned bool   `json:"pinned"`
}

// UpdateAnnouncementInput 部分更新请求体。nil 字段不动
type UpdateAnnouncementInput struct {
	Title  *string `json:"title"`
	Body   *string `json:"body"`
	Pinned *bool   `json:"pinned"`
}

// CreateAnnouncement 新建公告。角色限制由路由上的 SuperAdminOnly 保证
func (s *AdminService) CreateAnnouncement(ctx context.Context, input *CreateAnnouncementInput) (*model.Announcement, error) {
	ann := &model.Announcement{
		Title:  input.Title,
		Body:   input.Body,
		Pinned: input.Pinned,
	}
	if err := s.announcements.Create(ctx, ann); err != nil {
		return nil, err
	}
	return ann, nil
}

// UpdateAnnouncement 部分更新公告
func (s *AdminService) UpdateAnnouncement(ctx context.Context, id string, input *UpdateAnnouncementInput) (*model.Announcement, error) {
	if _, err := s.loadAnnouncement(ctx, id); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Body != nil {
		fields["body"] = *input.Body
	}
	if input.Pinned != nil {
		fields["pinned"] = *input.Pinned
	}
	return s.announcements.Update(ctx, id, fields)
}

// DeleteAnnouncement 删除公告
func (s *AdminService) DeleteAnnouncement(ctx context.Context, id string) error {
	if _, err := s.loadAnnouncement(ctx, id); err != nil {
		return err
	}
	return s.announcements.Delete(ctx, id)
}

func (s *AdminService) loadMatch(ctx context.Context, id string) (*model.Match, error) {
	match, err := s.matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *AdminService) loadAnnouncement(ctx context.Context, id string) (*model.Announcement, error) {
	ann, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return ann, nil
}
