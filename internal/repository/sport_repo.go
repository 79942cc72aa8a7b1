package repository

import (
	"context"

	"CarnivalLive/internal/model"

	"gorm.io/gorm"
)

// SportRepository 体育项目仓储接口
type SportRepository interface {
	// ListAll 全部项目，按名称升序
	ListAll(ctx context.Context) ([]*model.Sport, error)
	// GetBySlug 通过 slug 获取项目
	GetBySlug(ctx context.Context, slug string) (*model.Sport, error)
	// GetByID 通过 id 获取项目
	GetByID(ctx context.Context, id string) (*model.Sport, error)
	// Create 新建项目（种子数据用）
	Create(ctx context.Context, sport *model.Sport) error
}

type sportRepository struct {
	db *gorm.DB
}

// NewSportRepository 创建 SportRepository 实例
func NewSportRepository(db *gorm.DB) SportRepository {
	return &sportRepository{db: db}
}

// ListAll 全部项目，按名称升序
func (r *sportRepository) ListAll(ctx context.Context) ([]*model.Sport, error) {
	sports := []*model.Sport{}
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&sports).Error; err != nil {
		return nil, err
	}
	return sports, nil
}

// GetBySlug 通过 slug 获取项目
func (r *sportRepository) GetBySlug(ctx context.Context, slug string) (*model.Sport, error) {
	var sport model.Sport
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&sport).Error; err != nil {
		return nil, err
	}
	return &sport, nil
}

// GetByID 通过 id 获取项目
func (r *sportRepository) GetByID(ctx context.Context, id string) (*model.Sport, error) {
	var sport model.Sport
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sport).Error; err != nil {
		return nil, err
	}
	return &sport, nil
}

// Create 新建项目
func (r *sportRepository) Create(ctx context.Context, sport *model.Sport) error {
	return r.db.WithContext(ctx).Create(sport).Error
}
