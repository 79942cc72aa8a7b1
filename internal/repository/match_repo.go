package repository

import (
	"context"

	"CarnivalLive/internal/model"

	"gorm.io/gorm"
)

// MatchFilter 比赛列表筛选条件
type MatchFilter struct {
	SportID  string   // 可选：所属项目ID
	Statuses []string // 可选：状态集合
	Limit    int      // 0 表示不限制
}

// MatchRepository 比赛仓储接口
type MatchRepository interface {
	// Create 新建比赛
	Create(ctx context.Context, match *model.Match) error
	// GetByID 通过 id 获取比赛（带项目信息）
	GetByID(ctx context.Context, id string) (*model.Match, error)
	// Update 按字段部分更新，返回更新后的记录
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Match, error)
	// Delete 删除比赛
	Delete(ctx context.Context, id string) error
	// List 按筛选条件查询，updated_at 降序
	List(ctx context.Context, filter MatchFilter) ([]*model.Match, error)
	// ListLiveBoard 推送用：LIVE/UPCOMING 的比赛，状态升序后 updated_at 降序
	ListLiveBoard(ctx context.Context, sportID string) ([]*model.Match, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository 创建 MatchRepository 实例
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// Create 新建比赛
func (r *matchRepository) Create(ctx context.Context, match *model.Match) error {
	if err := r.db.WithContext(ctx).Create(match).Error; err != nil {
		return err
	}
	// 返回体带上项目信息
	var sport model.Sport
	if err := r.db.WithContext(ctx).First(&sport, "id = ?", match.SportID).Error; err != nil {
		return err
	}
	match.Sport = &sport
	return nil
}

// GetByID 通过 id 获取比赛
func (r *matchRepository) GetByID(ctx context.Context, id string) (*model.Match, error) {
	var match model.Match
	if err := r.db.WithContext(ctx).
		Preload("Sport").
		Where("id = ?", id).
		First(&match).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// Update 按字段部分更新。fields 的键为列名，未出现的列保持原值
func (r *matchRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Match, error) {
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&model.Match{}).
			Where("id = ?", id).
			Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete 删除比赛
func (r *matchRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Match{}, "id = ?", id).Error
}

// List 按筛选条件查询，updated_at 降序
func (r *matchRepository) List(ctx context.Context, filter MatchFilter) ([]*model.Match, error) {
	db := r.db.WithContext(ctx).Model(&model.Match{}).Preload("Sport")

	if filter.SportID != "" {
		db = db.Where("sport_id = ?", filter.SportID)
	}
	if len(filter.Statuses) > 0 {
		db = db.Where("status IN ?", filter.Statuses)
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}

	// 空结果也返回 []，序列化成 [] 而不是 null
	matches := []*model.Match{}
	if err := db.Order("updated_at DESC").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// ListLiveBoard 推送用：LIVE/UPCOMING 的比赛
func (r *matchRepository) ListLiveBoard(ctx context.Context, sportID string) ([]*model.Match, error) {
	db := r.db.WithContext(ctx).Model(&model.Match{}).Preload("Sport").
		Where("status IN ?", []string{model.MatchLive, model.MatchUpcoming})
	if sportID != "" {
		db = db.Where("sport_id = ?", sportID)
	}

	matches := []*model.Match{}
	if err := db.Order("status ASC").Order("updated_at DESC").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}
