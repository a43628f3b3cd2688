package middleware

import (
	"net/http"

	"lab-website/internal/global/csrf"
	"lab-website/internal/global/logger"
	"lab-website/internal/global/response"
	"lab-website/internal/global/session"

	"github.com/gin-gonic/gin"
)

// CSRF 对所有修改类请求校验令牌，失败返回 403 且不做任何写操作
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		submitted := c.PostForm(csrf.FormField)
		if submitted == "" {
			submitted = c.GetHeader(csrf.HeaderName)
		}
		if err := csrf.Check(session.From(c), submitted); err != nil {
			logger.WithContext(logger.New("CSRF"), c).Warn("CSRF 校验失败",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
			response.Abort(c, err)
			return
		}
		c.Next()
	}
}
