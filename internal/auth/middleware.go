package auth

import (
	"net/http"
	"strings"

	"CarnivalLive/internal/model"

	"github.com/gin-gonic/gin"
)

// gin context 中存放已认证用户的键
const principalKey = "auth.principal"

// BearerToken 从 Authorization 头提取 bearer token，没有则返回空串
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// Middleware 认证中间件：解析 token，把用户放进 context，失败返回 401
func (v *Verifier) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := v.Authenticate(c.Request.Context(), BearerToken(c))
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
			return
		}
		c.Set(principalKey, user)
		c.Next()
	}
}

// AdminOnly 角色中间件：要求任一管理角色，需在 Middleware 之后挂载
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Admin privileges required"})
			return
		}
		c.Next()
	}
}

// SuperAdminOnly 角色中间件：仅超级管理员
func SuperAdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != model.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Super admin privileges required"})
			return
		}
		c.Next()
	}
}

// CurrentUser 取出 Middleware 放入的已认证用户，未认证返回 nil
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(principalKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}
