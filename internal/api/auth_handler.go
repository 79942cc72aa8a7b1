package api

import (
	"net/http"

	"CarnivalLive/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler 身份回显接口，前端用来校验 token 并拿用户信息
type AuthHandler struct {
	logger *logrus.Logger
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{logger: logger}
}

// Me 当前用户信息 GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := auth.CurrentUser(c)
	data := gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
		"role":     user.Role,
		"sportId":  user.SportID,
	}
	if user.Sport != nil {
		data["sport"] = gin.H{
			"id":   user.Sport.ID,
			"name": user.Sport.Name,
			"slug": user.Sport.Slug,
		}
	}
	c.JSON(http.StatusOK, gin.H{"user": data})
}

// VerifyToken token 校验 POST /auth/verify-token（走到这里说明中间件已放行）
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	user := auth.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
