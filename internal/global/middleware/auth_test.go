package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"lab-website/internal/global/response"
	"lab-website/internal/global/session"
	"lab-website/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newRouter 在 RequireAdmin 之前挂上请求日志，并可选地注入会话
func newRouter(buf *bytes.Buffer, sess *model.Session) *gin.Engine {
	r := gin.New()
	r.Use(Logger(slog.New(slog.NewJSONHandler(buf, nil))))
	r.Use(func(c *gin.Context) {
		if sess != nil {
			session.Attach(c, sess)
		}
		c.Next()
	})
	r.GET("/admin/members", RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, "members")
	})
	return r
}

func TestRequireAdminRedirectsGuest(t *testing.T) {
	var buf bytes.Buffer
	r := newRouter(&buf, &model.Session{ID: "guest"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/members", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "members")
	assert.Contains(t, buf.String(), `"error_code":40101`)
	assert.Contains(t, buf.String(), response.ErrAuthRequired.Message)
}

func TestRequireAdminMarksAuthRequired(t *testing.T) {
	var seen any
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Next()
		seen, _ = c.Get(response.ErrorContextKey)
	})
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, "dashboard")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	e, ok := seen.(*response.Error)
	require.True(t, ok)
	assert.ErrorIs(t, e, response.ErrAuthRequired)
}

func TestRequireAdminPassesAdmin(t *testing.T) {
	var buf bytes.Buffer
	id := uint(1)
	r := newRouter(&buf, &model.Session{ID: "admin", AdminUserID: &id})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/members", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "members", w.Body.String())
	assert.NotContains(t, buf.String(), "error_code")
}
