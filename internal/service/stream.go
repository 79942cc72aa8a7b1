package service

import (
	"context"
	"errors"
	"time"

	"CarnivalLive/internal/model"
	"CarnivalLive/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// 推送间隔的允许区间（秒）。下限防止客户端把轮询压力打满，上限防止数据过期太久
const (
	LiveIntervalDefault  = 5
	LiveIntervalMin      = 2
	LiveIntervalMax      = 30
	MatchIntervalDefault = 3
	MatchIntervalMin     = 1
	MatchIntervalMax     = 15

	pinnedAnnouncementLimit = 3
)

// StreamService 推送引擎的数据侧：每个周期查一次库，拼出一帧快照。
// 连接与循环的生命周期由 handler 管，这里不持有任何跨连接状态
type StreamService struct {
	sports        repository.SportRepository
	matches       repository.MatchRepository
	announcements repository.AnnouncementRepository
	logger        *logrus.Logger
}

// NewStreamService 创建 StreamService
func NewStreamService(
	sports repository.SportRepository,
	matches repository.MatchRepository,
	announcements repository.AnnouncementRepository,
	logger *logrus.Logger,
) *StreamService {
	return &StreamService{
		sports:        sports,
		matches:       matches,
		announcements: announcements,
		logger:        logger,
	}
}

// LiveSnapshot 聚合流的一帧：进行中与未开始的比赛 + 置顶公告 + 状态计数
type LiveSnapshot struct {
	Matches       []*model.Match        `json:"matches"`
	Announcements []*model.Announcement `json:"announcements"`
	Timestamp     string                `json:"timestamp"`
	LiveCount     int                   `json:"live_count"`
	UpcomingCount int                   `json:"upcoming_count"`
}

// MatchSnapshot 单场流的一帧。Final 为 true 表示比赛已结束，这是最后一帧
type MatchSnapshot struct {
	Match     *model.Match `json:"match"`
	Timestamp string       `json:"timestamp"`
	Final     bool         `json:"final"`
}

// StreamError 推送流里的错误帧（event: error）
type StreamError struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// NewStreamError 把周期内的错误包成错误帧
func NewStreamError(err error) *StreamError {
	return &StreamError{
		Error:     err.Error(),
		Timestamp: streamTimestamp(),
	}
}

// ComposeLive 聚合流的单个周期：查比赛与置顶公告，统计状态。
// sportSlug 解析不到时不过滤（保持全量推送），不报错
func (s *StreamService) ComposeLive(ctx context.Context, sportSlug string) (*LiveSnapshot, error) {
	sportID := ""
	if sportSlug != "" {
		sport, err := s.sports.GetBySlug(ctx, sportSlug)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if sport != nil {
			sportID = sport.ID
		}
	}

	matches, err := s.matches.ListLiveBoard(ctx, sportID)
	if err != nil {
		return nil, err
	}
	announcements, err := s.announcements.ListPinned(ctx, pinnedAnnouncementLimit)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []*model.Match{}
	}
	if announcements == nil {
		announcements = []*model.Announcement{}
	}

	snapshot := &LiveSnapshot{
		Matches:       matches,
		Announcements: announcements,
		Timestamp:     streamTimestamp(),
	}
	for _, m := range matches {
		switch m.Status {
		case model.MatchLive:
			snapshot.LiveCount++
		case model.MatchUpcoming:
			snapshot.UpcomingCount++
		}
	}
	return snapshot, nil
}

// ComposeMatch 单场流的单个周期。比赛不存在返回 ErrMatchNotFound（流的终止条件）
func (s *StreamService) ComposeMatch(ctx context.Context, matchID string) (*MatchSnapshot, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &MatchSnapshot{
		Match:     match,
		Timestamp: streamTimestamp(),
		Final:     match.Status == model.MatchCompleted,
	}, nil
}

// ClampLiveInterval 聚合流间隔：缺省5秒，夹在[2,30]
func ClampLiveInterval(seconds int) time.Duration {
	if seconds <= 0 {
		seconds = LiveIntervalDefault
	}
	if seconds < LiveIntervalMin {
		seconds = LiveIntervalMin
	}
	if seconds > LiveIntervalMax {
		seconds = LiveIntervalMax
	}
	return time.Duration(seconds) * time.Second
}

// ClampMatchInterval 单场流间隔：缺省3秒，夹在[1,15]
func ClampMatchInterval(seconds int) time.Duration {
	if seconds <= 0 {
		seconds = MatchIntervalDefault
	}
	if seconds < MatchIntervalMin {
		seconds = MatchIntervalMin
	}
	if seconds > MatchIntervalMax {
		seconds = MatchIntervalMax
	}
	return time.Duration(seconds) * time.Second
}

func streamTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
