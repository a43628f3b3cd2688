package middleware

import (
	"log/slog"
	"time"

	"lab-website/internal/global/response"

	sentrylib "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// Logger 记录请求日志，5xx 记为 Error，4xx 记为 Warn
func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"latency", time.Since(startTime).String(),
			"client_ip", c.ClientIP(),
		}
		if v, ok := c.Get(response.ErrorContextKey); ok {
			if e, ok := v.(*response.Error); ok {
				attrs = append(attrs, "error_code", e.Code, "error", e.Message)
			}
		}

		switch {
		case status >= 500:
			log.Error("HTTP Request", attrs...)
		case status >= 400:
			log.Warn("HTTP Request", attrs...)
		default:
			log.Info("HTTP Request", attrs...)
		}
	}
}

// SentryEnrichIP 中间件：将 client IP 注入到 Sentry Scope 中
// 放在 sentry.Middleware() 之后，所有后续的 Sentry 上报都会自动携带 IP
func SentryEnrichIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.ConfigureScope(func(scope *sentrylib.Scope) {
				clientIP := c.ClientIP()
				scope.SetUser(sentrylib.User{
					IPAddress: clientIP,
				})
				scope.SetTag("client_ip", clientIP)
				if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
					scope.SetTag("x_forwarded_for", forwardedFor)
				}
			})
		}
		c.Next()
	}
}
