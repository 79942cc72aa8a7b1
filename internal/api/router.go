package api

import (
	"net/http"

	"CarnivalLive/internal/auth"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册全部路由。main 与测试共用同一张路由表
func RegisterRoutes(
	r gin.IRouter,
	verifier *auth.Verifier,
	adminHandler *AdminHandler,
	publicHandler *PublicHandler,
	authHandler *AuthHandler,
	streamHandler *StreamHandler,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/auth", verifier.Middleware())
	{
		authGroup.GET("/me", authHandler.Me)
		authGroup.POST("/verify-token", authHandler.VerifyToken)
	}

	public := r.Group("/public")
	{
		public.GET("/sports", publicHandler.ListSports)
		public.GET("/sports/:slug", publicHandler.GetSport)
		public.GET("/matches", publicHandler.ListMatches)
		public.GET("/matches/:id", publicHandler.GetMatch)
		public.GET("/announcements", publicHandler.ListAnnouncements)
		public.GET("/live-stream", streamHandler.LiveStream)
		public.GET("/live-stream/match/:id", streamHandler.MatchStream)
	}

	admin := r.Group("/admin", verifier.Middleware(), auth.AdminOnly())
	{
		admin.POST("/matches", adminHandler.CreateMatch)
		admin.GET("/matches", adminHandler.ListMatches)
		admin.GET("/matches/:id", adminHandler.GetMatch)
		admin.PATCH("/matches/:id", adminHandler.UpdateMatch)
		admin.DELETE("/matches/:id", adminHandler.DeleteMatch)

		// 公告只有超级管理员能动
		admin.POST("/announcements", auth.SuperAdminOnly(), adminHandler.CreateAnnouncement)
		admin.PATCH("/announcements/:id", auth.SuperAdminOnly(), adminHandler.UpdateAnnouncement)
		admin.DELETE("/announcements/:id", auth.SuperAdminOnly(), adminHandler.DeleteAnnouncement)
	}
}
