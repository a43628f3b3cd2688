package session

import (
	"lab-website/internal/global/sentry"
	"lab-website/internal/model"

	"github.com/gin-gonic/gin"
)

const contextKey = "session"

var defaultManager *Manager

// Init 设置全局会话管理器
func Init(m *Manager) {
	defaultManager = m
}

func Default() *Manager {
	return defaultManager
}

// Attach 把已校验的会话放入请求上下文
func Attach(c *gin.Context, sess *model.Session) {
	c.Set(contextKey, sess)
	if sess.AdminUserID != nil {
		c.Set(sentry.AdminIDKey, *sess.AdminUserID)
	}
}

// From 取出当前请求的会话，可能为 nil
func From(c *gin.Context) *model.Session {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*model.Session)
	return sess
}

// IsAdmin 当前请求是否为已登录管理员
func IsAdmin(c *gin.Context) bool {
	return From(c).Authenticated()
}
