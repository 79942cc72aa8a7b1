package repository

import (
	"context"

	"CarnivalLive/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户仓储接口。用户由外部身份服务写入，这里只做查询
type UserRepository interface {
	// GetByID 通过 id 获取用户（带所属项目）
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByID 通过 id 获取用户
func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Sport").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
