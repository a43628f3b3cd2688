package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"lab-website/config"
	"lab-website/internal/global/database"
	"lab-website/internal/global/logger"
	"lab-website/internal/global/response"
	"lab-website/internal/global/session"
	"lab-website/internal/model"
	"lab-website/internal/module"
	"lab-website/test"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/publicsuffix"
	"gorm.io/gorm"
)

type site struct {
	url string
	db  *gorm.DB
}

// newSite 用内存数据库启动完整的服务
func newSite(t *testing.T) *site {
	t.Helper()
	cfg := test.Config(t)
	db := test.NewDB(t)
	database.DB = db
	log = logger.New("Server")

	session.Init(NewSessionManager(cfg))
	require.NoError(t, SeedAdmin(context.Background(), cfg.Admin))
	for _, m := range module.Modules {
		m.Init()
	}

	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(NewEngine(cfg))
	t.Cleanup(srv.Close)
	return &site{url: srv.URL, db: db}
}

// browser 带 Cookie 的客户端，自动跟随 303 跳转
func (s *site) browser(t *testing.T) *resty.Client {
	t.Helper()
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	require.NoError(t, err)
	return resty.New().SetBaseURL(s.url).SetCookieJar(jar)
}

func path(resp *resty.Response) string {
	return resp.RawResponse.Request.URL.Path
}

// csrf 打开页面并取出表单中的 CSRF 令牌
func csrf(t *testing.T, c *resty.Client, page string) string {
	t.Helper()
	resp, err := c.R().Get(page)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	token := test.CSRFToken(resp.String())
	require.NotEmpty(t, token)
	return token
}

func submitLogin(t *testing.T, c *resty.Client, password string) *resty.Response {
	t.Helper()
	token := csrf(t, c, "/admin/login")
	resp, err := c.R().SetFormData(map[string]string{
		"username":   "admin",
		"password":   password,
		"csrf_token": token,
	}).Post("/admin/login")
	require.NoError(t, err)
	return resp
}

func (s *site) login(t *testing.T) *resty.Client {
	t.Helper()
	c := s.browser(t)
	resp := submitLogin(t, c, "correct-horse")
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Equal(t, "/admin", path(resp))
	return c
}

func (s *site) count(t *testing.T, v any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(v).Count(&n).Error)
	return n
}

func TestLoginScenario(t *testing.T) {
	s := newSite(t)
	c := s.browser(t)

	resp, err := c.R().Get("/admin")
	require.NoError(t, err)
	assert.Equal(t, "/admin/login", path(resp))

	resp = submitLogin(t, c, "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Contains(t, resp.String(), "Invalid username or password")

	var admins int64
	require.NoError(t, s.db.Model(&model.Session{}).Where("admin_user_id IS NOT NULL").Count(&admins).Error)
	assert.Zero(t, admins)

	resp, err = c.R().Get("/admin")
	require.NoError(t, err)
	assert.Equal(t, "/admin/login", path(resp))

	resp = submitLogin(t, c, "correct-horse")
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "/admin", path(resp))
	assert.Contains(t, resp.String(), "<h1>Dashboard</h1>")

	// 登出后回到登录页
	token := test.CSRFToken(resp.String())
	resp, err = c.R().SetFormData(map[string]string{"csrf_token": token}).Post("/admin/logout")
	require.NoError(t, err)
	assert.Equal(t, "/admin/login", path(resp))
	resp, err = c.R().Get("/admin")
	require.NoError(t, err)
	assert.Equal(t, "/admin/login", path(resp))
}

func TestProjectScenario(t *testing.T) {
	s := newSite(t)
	c := s.login(t)
	token := csrf(t, c, "/admin/projects")

	form := map[string]string{
		"csrf_token":  token,
		"title":       "X",
		"slug":        "x-proj",
		"summary":     "Summary of X",
		"description": "Details",
		"status":      "ongoing",
		"start_date":  "2025-01-01",
	}
	older := map[string]string{}
	for k, v := range form {
		older[k] = v
	}
	older["title"], older["slug"] = "Older", "older"

	resp, err := c.R().SetFormData(older).Post("/admin/projects")
	require.NoError(t, err)
	require.Equal(t, "/admin/projects", path(resp))
	resp, err = c.R().SetFormData(form).Post("/admin/projects")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = c.R().Get("/projects")
	require.NoError(t, err)
	body := resp.String()
	assert.Less(t, strings.Index(body, "/projects/x-proj"), strings.Index(body, "/projects/older"))

	resp, err = c.R().SetFormData(form).Post("/admin/projects")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	assert.Contains(t, resp.String(), "This slug is already in use")
	assert.Equal(t, int64(2), s.count(t, &model.Project{}))
}

func TestAdminRequiresSession(t *testing.T) {
	s := newSite(t)
	c := s.browser(t)

	for _, p := range []string{"/admin/members", "/admin/projects", "/admin/publications/export", "/admin/posts/1/edit"} {
		resp, err := c.R().Get(p)
		require.NoError(t, err)
		assert.Equal(t, "/admin/login", path(resp), p)
	}

	resp, err := c.R().SetFormData(map[string]string{"title": "T", "slug": "t", "content": "c"}).Post("/admin/posts")
	require.NoError(t, err)
	assert.Equal(t, "/admin/login", path(resp))
	assert.Zero(t, s.count(t, &model.Post{}))
}

func TestAdminPostRequiresCSRF(t *testing.T) {
	s := newSite(t)
	c := s.login(t)

	form := map[string]string{"name": "Kim", "role": "phd", "email": "kim@lab.example"}
	resp, err := c.R().SetFormData(form).Post("/admin/members")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())

	form["csrf_token"] = "not-the-token"
	resp, err = c.R().SetFormData(form).Post("/admin/members")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
	assert.Zero(t, s.count(t, &model.Member{}))

	form["csrf_token"] = csrf(t, c, "/admin/members")
	resp, err = c.R().SetFormData(form).Post("/admin/members")
	require.NoError(t, err)
	assert.Equal(t, "/admin/members", path(resp))
	assert.Equal(t, int64(1), s.count(t, &model.Member{}))
}

func TestDeleteProjectKeepsPublications(t *testing.T) {
	s := newSite(t)
	c := s.login(t)

	p := &model.Project{Title: "Vision", Slug: "vision", Summary: "s", Description: "d", Status: model.StatusOngoing}
	require.NoError(t, s.db.Create(p).Error)
	token := csrf(t, c, "/admin/publications")

	resp, err := c.R().SetFormData(map[string]string{
		"csrf_token":         token,
		"title":              "Seeing things",
		"authors":            "Kim, Lee",
		"venue":              "CVPR",
		"year":               "2024",
		"related_project_id": strconv.FormatUint(uint64(p.ID), 10),
	}).Post("/admin/publications")
	require.NoError(t, err)
	require.Equal(t, "/admin/publications", path(resp))

	resp, err = c.R().Get("/projects/vision")
	require.NoError(t, err)
	assert.Contains(t, resp.String(), "Seeing things")

	resp, err = c.R().SetFormData(map[string]string{"csrf_token": token}).Post(fmt.Sprintf("/admin/projects/%d/delete", p.ID))
	require.NoError(t, err)
	assert.Equal(t, "/admin/projects", path(resp))

	var pub model.Publication
	require.NoError(t, s.db.First(&pub).Error)
	assert.Nil(t, pub.RelatedProjectID)

	resp, err = c.R().Get("/publications")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.String(), "Seeing things")
	assert.NotContains(t, resp.String(), "project-link")

	resp, err = c.R().Get("/projects/vision")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestPublicationExport(t *testing.T) {
	s := newSite(t)
	c := s.login(t)
	require.NoError(t, s.db.Create(&model.Publication{Title: "Paper", Authors: "Kim", Venue: "ICML", Year: 2023}).Error)

	resp, err := c.R().Get("/admin/publications/export")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "publications-")
	// xlsx 是 zip 格式
	assert.True(t, strings.HasPrefix(resp.String(), "PK"))
}

func TestPublicPagesAndNotFound(t *testing.T) {
	s := newSite(t)
	c := s.browser(t)

	for _, p := range []string{"/", "/members", "/projects", "/publications", "/posts", "/contact", "/ping"} {
		resp, err := c.R().Get(p)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode(), p)
	}

	resp, err := c.R().Get("/no/such/page")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Contains(t, resp.String(), "Not found")
}

func TestAdminSeedAndCreate(t *testing.T) {
	newSite(t)
	cfg := config.Get()
	ctx := context.Background()

	// serve 重复初始化不报错
	require.NoError(t, SeedAdmin(ctx, cfg.Admin))

	err := CreateAdmin(ctx, cfg.Admin)
	require.Error(t, err)
	assert.ErrorIs(t, err, response.ErrBusinessRule)
	assert.NotEmpty(t, response.From(err).Fields["username"])

	require.NoError(t, CreateAdmin(ctx, config.Admin{Username: "editor", Password: "pw-editor"}))
	var n int64
	require.NoError(t, database.DB.Model(&model.AdminUser{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}
