package repository

import (
	"context"

	"CarnivalLive/internal/model"

	"gorm.io/gorm"
)

// AnnouncementRepository 公告仓储接口
type AnnouncementRepository interface {
	// Create 新建公告
	Create(ctx context.Context, ann *model.Announcement) error
	// GetByID 通过 id 获取公告
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	// Update 按字段部分更新，返回更新后的记录
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Announcement, error)
	// Delete 删除公告
	Delete(ctx context.Context, id string) error
	// List 置顶优先，updated_at 降序，带 limit
	List(ctx context.Context, limit int) ([]*model.Announcement, error)
	// ListPinned 仅置顶公告，updated_at 降序，带 limit（推送用）
	ListPinned(ctx context.Context, limit int) ([]*model.Announcement, error)
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository 创建 AnnouncementRepository 实例
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

// Create 新建公告
func (r *announcementRepository) Create(ctx context.Context, ann *model.Announcement) error {
	return r.db.WithContext(ctx).Create(ann).Error
}

// GetByID 通过 id 获取公告
func (r *announcementRepository) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	var ann model.Announcement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ann).Error; err != nil {
		return nil, err
	}
	return &ann, nil
}

// Update 按字段部分更新
func (r *announcementRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Announcement, error) {
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&model.Announcement{}).
			Where("id = ?", id).
			Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete 删除公告
func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Announcement{}, "id = ?", id).Error
}

// List 置顶优先，updated_at 降序
func (r *announcementRepository) List(ctx context.Context, limit int) ([]*model.Announcement, error) {
	anns := []*model.Announcement{}
	db := r.db.WithContext(ctx).Model(&model.Announcement{}).
		Order("pinned DESC").Order("updated_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&anns).Error; err != nil {
		return nil, err
	}
	return anns, nil
}

// ListPinned 仅置顶公告，updated_at 降序
func (r *announcementRepository) ListPinned(ctx context.Context, limit int) ([]*model.Announcement, error) {
	anns := []*model.Announcement{}
	db := r.db.WithContext(ctx).Model(&model.Announcement{}).
		Where("pinned = ?", true).
		Order("updated_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&anns).Error; err != nil {
		return nil, err
	}
	return anns, nil
}
