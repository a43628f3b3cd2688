package response

import (
	"fmt"
	"net/http"

	"lab-website/internal/global/logger"
	"lab-website/internal/global/sentry"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
)

// ErrorPage 通用错误页模板
const ErrorPage = "error.html"

// Fail 渲染通用错误页，5xx 错误会记录日志并上报 Sentry
func Fail(c *gin.Context, err error) {
	e := From(err)
	c.Set(ErrorContextKey, e)
	status := e.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logger.WithContext(logger.Get(), c).Error("请求处理失败",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", e.Origin,
		)
		sentry.CaptureException(c, e)
	}
	c.HTML(status, ErrorPage, gin.H{
		"Status":  status,
		"Message": e.Message,
	})
}

// Abort 渲染错误页并中止后续处理
func Abort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}

// Redirect 以 303 跳转，POST 之后浏览器改用 GET
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// Recovery 捕获 panic 并转换为 500 错误页，需在 defer 中调用
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		var err error
		switch v := r.(type) {
		case error:
			err = pkgerrors.WithStack(v)
		default:
			err = pkgerrors.New(fmt.Sprint(v))
		}
		logger.Get().Error("panic recovered", "path", c.Request.URL.Path, "error", fmt.Sprintf("%+v", err))
		if c.Writer.Written() {
			c.Abort()
			return
		}
		Abort(c, ErrServerInternal.WithOrigin(err))
	}
}
