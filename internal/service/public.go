package service

import (
	"context"
	"errors"

	"CarnivalLive/internal/model"
	"CarnivalLive/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// 公开列表的条数上限与默认值
const (
	matchListDefault        = 50
	matchListMax            = 100
	announcementListDefault = 20
	announcementListMax     = 50
)

// PublicService 面向公众的只读投影，无需登录
type PublicService struct {
	sports        repository.SportRepository
	matches       repository.MatchRepository
	announcements repository.AnnouncementRepository
	logger        *logrus.Logger
}

// NewPublicService 创建 PublicService
func NewPublicService(
	sports repository.SportRepository,
	matches repository.MatchRepository,
	announcements repository.AnnouncementRepository,
	logger *logrus.Logger,
) *PublicService {
	return &PublicService{
		sports:        sports,
		matches:       matches,
		announcements: announcements,
		logger:        logger,
	}
}

// ListSports 全部项目，名称升序
func (s *PublicService) ListSports(ctx context.Context) ([]*model.Sport, error) {
	return s.sports.ListAll(ctx)
}

// GetSport 通过 slug 获取项目
func (s *PublicService) GetSport(ctx context.Context, slug string) (*model.Sport, error) {
	sport, err := s.sports.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return sport, nil
}

// ListMatches 公开比赛列表。slug 解析不到不报错，按过滤不中处理直接返回空集
func (s *PublicService) ListMatches(ctx context.Context, sportSlug, status string, limit int) ([]*model.Match, error) {
	if limit <= 0 {
		limit = matchListDefault
	}
	if limit > matchListMax {
		limit = matchListMax
	}

	filter := repository.MatchFilter{Limit: limit}
	if sportSlug != "" {
		sport, err := s.sports.GetBySlug(ctx, sportSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []*model.Match{}, nil
			}
			return nil, err
		}
		filter.SportID = sport.ID
	}
	if status != "" {
		filter.Statuses = []string{status}
	}
	return s.matches.List(ctx, filter)
}

// GetMatch 通过 id 获取比赛
func (s *PublicService) GetMatch(ctx context.Context, id string) (*model.Match, error) {
	match, err := s.matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

// ListAnnouncements 公告列表，置顶优先
func (s *PublicService) ListAnnouncements(ctx context.Context, limit int) ([]*model.Announcement, error) {
	if limit <= 0 {
		limit = announcementListDefault
	}
	if limit > announcementListMax {
		limit = announcementListMax
	}
	return s.announcements.List(ctx, limit)
}
