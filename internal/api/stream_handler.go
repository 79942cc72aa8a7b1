package api

import (
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"CarnivalLive/internal/service"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StreamHandler SSE 推送接口。每个连接一条独立的轮询循环：
// 查库 → 发一帧 → 睡一个间隔 → 重复，帧与帧之间严格串行。
// 循环的退出只有两种：客户端断开，或单场流到达终止状态
type StreamHandler struct {
	streamService *service.StreamService
	logger        *logrus.Logger
}

// NewStreamHandler 创建 StreamHandler
func NewStreamHandler(streamService *service.StreamService, logger *logrus.Logger) *StreamHandler {
	return &StreamHandler{
		streamService: streamService,
		logger:        logger,
	}
}

// LiveStream 聚合推送 GET /public/live-stream?sport_slug=&interval=
// 永不自行终止；周期内查库失败发一帧 error 事件后照常继续，下个周期自愈
func (h *StreamHandler) LiveStream(c *gin.Context) {
	sportSlug := c.Query("sport_slug")
	seconds, _ := strconv.Atoi(c.DefaultQuery("interval", strconv.Itoa(service.LiveIntervalDefault)))
	interval := service.ClampLiveInterval(seconds)

	setStreamHeaders(c)
	ctx := c.Request.Context()
	first := true

	c.Stream(func(w io.Writer) bool {
		if !first && !waitNextCycle(ctx, interval) {
			return false
		}
		first = false

		snapshot, err := h.streamService.ComposeLive(ctx, sportSlug)
		if err != nil {
			if ctx.Err() != nil {
				return false
			}
			h.logger.WithError(err).Warn("live stream cycle failed")
			return emit(w, sse.Event{Event: "error", Data: service.NewStreamError(err)})
		}
		return emit(w, sse.Event{Data: snapshot})
	})
}

// MatchStream 单场推送 GET /public/live-stream/match/:id?interval=
// 比赛不存在：发 error 帧后断开；比赛结束：发 final 帧后断开；
// 其他查库失败按瞬时故障处理，发 error 帧后继续
func (h *StreamHandler) MatchStream(c *gin.Context) {
	matchID := c.Param("id")
	seconds, _ := strconv.Atoi(c.DefaultQuery("interval", strconv.Itoa(service.MatchIntervalDefault)))
	interval := service.ClampMatchInterval(seconds)

	setStreamHeaders(c)
	ctx := c.Request.Context()
	first := true

	c.Stream(func(w io.Writer) bool {
		if !first && !waitNextCycle(ctx, interval) {
			return false
		}
		first = false

		snapshot, err := h.streamService.ComposeMatch(ctx, matchID)
		if err != nil {
			if errors.Is(err, service.ErrMatchNotFound) {
				emit(w, sse.Event{Event: "error", Data: service.NewStreamError(err)})
				return false
			}
			if ctx.Err() != nil {
				return false
			}
			h.logger.WithError(err).Warn("match stream cycle failed")
			return emit(w, sse.Event{Event: "error", Data: service.NewStreamError(err)})
		}
		if !emit(w, sse.Event{Data: snapshot}) {
			return false
		}
		return !snapshot.Final
	})
}

func setStreamHeaders(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx 下关闭缓冲，保证帧即时送达
}

// emit 写出一帧。写失败说明连接已不可用，返回 false 结束流
func emit(w io.Writer, event sse.Event) bool {
	return sse.Encode(w, event) == nil
}

// waitNextCycle 睡到下一个周期开始，期间客户端断开则返回 false
func waitNextCycle(ctx context.Context, interval time.Duration) bool {
	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
