package api

import (
	"errors"
	"net/http"

	"CarnivalLive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError 把业务层错误映射为 HTTP 状态码。
// 未识别的错误按 500 处理并记日志，detail 不外泄内部信息
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrSportNotFound),
		errors.Is(err, service.ErrMatchNotFound),
		errors.Is(err, service.ErrAnnouncementNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case service.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
	default:
		logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

// respondInvalidBody 请求体校验失败，对齐 422 语义
func respondInvalidBody(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
}
