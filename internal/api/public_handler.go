package api

import (
	"net/http"
	"strconv"

	"CarnivalLive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PublicHandler 无需登录的只读接口
type PublicHandler struct {
	publicService *service.PublicService
	logger        *logrus.Logger
}

// NewPublicHandler 创建 PublicHandler
func NewPublicHandler(publicService *service.PublicService, logger *logrus.Logger) *PublicHandler {
	return &PublicHandler{
		publicService: publicService,
		logger:        logger,
	}
}

// ListSports 项目列表 GET /public/sports
func (h *PublicHandler) ListSports(c *gin.Context) {
	sports, err := h.publicService.ListSports(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": sports})
}

// GetSport 项目详情 GET /public/sports/:slug
func (h *PublicHandler) GetSport(c *gin.Context) {
	sport, err := h.publicService.GetSport(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": sport})
}

// ListMatches 比赛列表 GET /public/matches?sport_slug=&status=&limit=
func (h *PublicHandler) ListMatches(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	matches, err := h.publicService.ListMatches(
		c.Request.Context(), c.Query("sport_slug"), c.Query("status"), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": matches})
}

// GetMatch 比赛详情 GET /public/matches/:id
func (h *PublicHandler) GetMatch(c *gin.Context) {
	match, err := h.publicService.GetMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": match})
}

// ListAnnouncements 公告列表 GET /public/announcements?limit=
func (h *PublicHandler) ListAnnouncements(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	anns, err := h.publicService.ListAnnouncements(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": anns})
}
