package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetCookie 写入会话 Cookie：HttpOnly、SameSite=Lax，生产环境加 Secure
func (m *Manager) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, token, int(m.opts.TTL.Seconds()), "/", "", m.opts.Secure, true)
}

func (m *Manager) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, "", -1, "/", "", m.opts.Secure, true)
}

// TokenFrom 读取请求中的会话令牌，没有时返回空串
func (m *Manager) TokenFrom(c *gin.Context) string {
	token, err := c.Cookie(m.opts.CookieName)
	if err != nil {
		return ""
	}
	return token
}
