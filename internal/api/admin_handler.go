package api

import (
	"net/http"

	"CarnivalLive/internal/auth"
	"CarnivalLive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminHandler 后台管理接口。路由上已挂认证与角色中间件，
// 这里只取出 principal 交给业务层做归属判定
type AdminHandler struct {
	adminService *service.AdminService
	logger       *logrus.Logger
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminService *service.AdminService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// CreateMatch 新建比赛 POST /admin/matches
func (h *AdminHandler) CreateMatch(c *gin.Context) {
	var input service.CreateMatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondInvalidBody(c, err)
		return
	}
	match, err := h.adminService.CreateMatch(c.Request.Context(), auth.CurrentUser(c), &input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": match})
}

// ListMatches 后台比赛列表 GET /admin/matches?sport_id=&status=
func (h *AdminHandler) ListMatches(c *gin.Context) {
	matches, err := h.adminService.ListMatches(
		c.Request.Context(), auth.CurrentUser(c), c.Query("sport_id"), c.Query("status"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": matches})
}

// GetMatch 后台比赛详情 GET /admin/matches/:id
func (h *AdminHandler) GetMatch(c *gin.Context) {
	match, err := h.adminService.GetMatch(c.Request.Context(), auth.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": match})
}

// UpdateMatch 部分更新 PATCH /admin/matches/:id
func (h *AdminHandler) UpdateMatch(c *gin.Context) {
	var input service.UpdateMatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondInvalidBody(c, err)
		return
	}
	match, err := h.adminService.UpdateMatch(c.Request.Context(), auth.CurrentUser(c), c.Param("id"), &input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": match})
}

// DeleteMatch 删除比赛 DELETE /admin/matches/:id
func (h *AdminHandler) DeleteMatch(c *gin.Context) {
	if err := h.adminService.DeleteMatch(c.Request.Context(), auth.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Match deleted successfully"})
}

// CreateAnnouncement 新建公告 POST /admin/announcements（仅超级管理员）
func (h *AdminHandler) CreateAnnouncement(c *gin.Context) {
	var input service.CreateAnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondInvalidBody(c, err)
		return
	}
	ann, err := h.adminService.CreateAnnouncement(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": ann})
}

// UpdateAnnouncement 部分更新公告 PATCH /admin/announcements/:id（仅超级管理员）
func (h *AdminHandler) UpdateAnnouncement(c *gin.Context) {
	var input service.UpdateAnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondInvalidBody(c, err)
		return
	}
	ann, err := h.adminService.UpdateAnnouncement(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": ann})
}

// DeleteAnnouncement 删除公告 DELETE /admin/announcements/:id（仅超级管理员）
func (h *AdminHandler) DeleteAnnouncement(c *gin.Context) {
	if err := h.adminService.DeleteAnnouncement(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully"})
}
