package middleware

import (
	"net/http"

	"lab-website/internal/global/logger"
	"lab-website/internal/global/response"
	"lab-website/internal/global/session"

	"github.com/gin-gonic/gin"
)

// LoginPath 未登录时跳转的地址
const LoginPath = "/admin/login"

// Session 读取会话 Cookie，校验通过后放入上下文，失败时视为未登录
func Session(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := m.TokenFrom(c); token != "" {
			if sess, ok := m.Validate(c.Request.Context(), token); ok {
				session.Attach(c, sess)
			}
		}
		c.Next()
	}
}

// NoStore 后台页面不允许缓存
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}

// RequireAdmin 未登录时 303 跳转到登录页，请求不会进入后续校验。
// 错误记录在上下文中，由请求日志带出 error_code
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsAdmin(c) {
			c.Set(response.ErrorContextKey, response.ErrAuthRequired)
			logger.WithContext(logger.New("Auth"), c).Debug("未登录访问后台",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Admin 后台路由的完整中间件链：会话 -> 禁止缓存 -> 登录校验 -> CSRF
func Admin(m *session.Manager) []gin.HandlerFunc {
	return []gin.HandlerFunc{Session(m), NoStore(), RequireAdmin(), CSRF()}
}
