package public

import (
	"context"
	"net/http"
	"testing"
	"time"

	"lab-website/internal/global/database"
	"lab-website/internal/global/logger"
	"lab-website/internal/global/render"
	"lab-website/internal/global/session"
	"lab-website/internal/model"
	"lab-website/internal/repository"
	"lab-website/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	cfg := test.Config(t)
	db := test.NewDB(t)
	database.DB = db
	session.Init(session.NewManager(repository.NewSessionRepo(db), session.Options{Secret: []byte(cfg.Secret)}, logger.New("Session")))
	(&ModulePublic{}).Init()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NoError(t, render.Load(r))
	(&ModulePublic{}).InitRouter(&r.RouterGroup)
	return r, db
}

func ptr[T any](v T) *T { return &v }

// at 固定创建时间，保证排序可预期
func at(day int) time.Time {
	return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
}

func project(t *testing.T, db *gorm.DB, slug string, status model.ProjectStatus, day int) *model.Project {
	t.Helper()
	p := &model.Project{
		Model:       model.Model{CreatedAt: at(day), UpdatedAt: at(day)},
		Title:       "Project " + slug,
		Slug:        slug,
		Summary:     "Summary " + slug,
		Description: "Line one\nLine two",
		Status:      status,
		StartDate:   at(1),
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func publication(t *testing.T, db *gorm.DB, title string, year int, projectID *uint) *model.Publication {
	t.Helper()
	p := &model.Publication{Title: title, Authors: "Kim", Venue: "Conf", Year: year, RelatedProjectID: projectID}
	require.NoError(t, db.Create(p).Error)
	return p
}

func post(t *testing.T, db *gorm.DB, slug string, published bool, day int) *model.Post {
	t.Helper()
	p := &model.Post{
		Model:       model.Model{CreatedAt: at(day), UpdatedAt: at(day)},
		Title:       "Post " + slug,
		Slug:        slug,
		Content:     "body of " + slug,
		IsPublished: published,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestParseHeroImages(t *testing.T) {
	content := "\n  /static/images/hero.jpg \r\nhttps://cdn.example.com/a.jpg\nHTTP://x/b.jpg\n/static/img/a.png\n/images/b.png\nstatic/c.png\nd.png\n   \n"
	assert.Equal(t, []string{
		"/static/images/hero/hero.jpg",
		"/static/img/a.png",
		"/static/images/b.png",
		"/static/c.png",
		"/static/d.png",
	}, ParseHeroImages(content))

	assert.Empty(t, ParseHeroImages(""))
	assert.Empty(t, ParseHeroImages("https://only.example.com/x.jpg"))
}

func TestHome(t *testing.T) {
	r, db := setup(t)
	for i, slug := range []string{"p1", "p2", "p3", "p4"} {
		project(t, db, slug, model.StatusOngoing, i+1)
	}
	for i := 0; i < 6; i++ {
		publication(t, db, "Paper "+string(rune('A'+i)), 2015+i, nil)
	}
	post(t, db, "n1", true, 1)
	post(t, db, "n2", true, 2)
	post(t, db, "draft", false, 3)
	post(t, db, "n3", true, 4)
	post(t, db, "n4", true, 5)
	require.NoError(t, db.Create(&model.Post{Title: "Hero", Slug: model.HeroPostSlug, Content: "a.jpg\n/static/images/hero.jpg"}).Error)

	d, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/static/a.jpg", "/static/images/hero/hero.jpg"}, d.HeroImages)

	slugs := func(ps []model.Project) (s []string) {
		for _, p := range ps {
			s = append(s, p.Slug)
		}
		return
	}
	assert.Equal(t, []string{"p4", "p3", "p2"}, slugs(d.Projects))

	require.Len(t, d.Publications, 5)
	assert.Equal(t, 2020, d.Publications[0].Year)
	assert.Equal(t, 2016, d.Publications[4].Year)

	var posts []string
	for _, p := range d.Posts {
		posts = append(posts, p.Slug)
	}
	assert.Equal(t, []string{"n4", "n3", "n2"}, posts)

	w := test.Get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `src="/static/a.jpg"`)
	assert.NotContains(t, w.Body.String(), "Post draft")
}

func TestHomeWithoutHeroPost(t *testing.T) {
	setup(t)
	urls, err := svc.HeroImages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestMemberGroups(t *testing.T) {
	r, db := setup(t)
	members := []model.Member{
		{Name: "Choi", Role: model.RolePhD, Email: "choi@lab.example", DisplayOrder: 100},
		{Name: "Ahn", Role: model.RolePhD, Email: "ahn@lab.example", DisplayOrder: 100},
		{Name: "Yoon", Role: model.RolePhD, Email: "yoon@lab.example", DisplayOrder: 1},
		{Name: "Park", Role: model.RoleProfessor, Email: "park@lab.example", DisplayOrder: 100, NameEn: ptr("Prof. Park")},
	}
	require.NoError(t, db.Create(&members).Error)

	groups, err := svc.MemberGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, model.RoleProfessor, groups[0].Role)
	assert.Equal(t, model.RolePhD, groups[1].Role)

	var names []string
	for _, m := range groups[1].Members {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Yoon", "Ahn", "Choi"}, names)

	w := test.Get(r, "/members?lang=en")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Prof. Park")
	assert.Contains(t, w.Body.String(), "Ph.D. Students")
	assert.NotContains(t, w.Body.String(), "Researchers")
}

func TestProjectsStatusFilter(t *testing.T) {
	r, db := setup(t)
	project(t, db, "live", model.StatusOngoing, 1)
	project(t, db, "done", model.StatusCompleted, 2)

	projects, status, err := svc.Projects(context.Background(), model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, status)
	require.Len(t, projects, 1)
	assert.Equal(t, "done", projects[0].Slug)

	// 未知状态不过滤
	projects, status, err = svc.Projects(context.Background(), "archived")
	require.NoError(t, err)
	assert.Empty(t, status)
	assert.Len(t, projects, 2)

	w := test.Get(r, "/projects?status=ongoing")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Project live")
	assert.NotContains(t, w.Body.String(), "Project done")
}

func TestProjectDetail(t *testing.T) {
	r, db := setup(t)
	p := project(t, db, "vision", model.StatusOngoing, 1)
	other := project(t, db, "audio", model.StatusOngoing, 2)
	publication(t, db, "Old paper", 2019, &p.ID)
	publication(t, db, "New paper", 2023, &p.ID)
	publication(t, db, "Unrelated paper", 2024, &other.ID)

	_, pubs, err := svc.Project(context.Background(), "vision")
	require.NoError(t, err)
	require.Len(t, pubs, 2)
	assert.Equal(t, "New paper", pubs[0].Title)

	w := test.Get(r, "/projects/vision")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Old paper")
	assert.NotContains(t, body, "Unrelated paper")
	assert.Contains(t, body, "<p>Line two</p>")

	w = test.Get(r, "/projects/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicationsYearFilter(t *testing.T) {
	r, db := setup(t)
	publication(t, db, "First", 2021, nil)
	publication(t, db, "Second", 2021, nil)
	publication(t, db, "Third", 2019, nil)

	pubs, years, err := svc.Publications(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{2021, 2019}, years)
	require.Len(t, pubs, 3)
	// 同一年内 id 倒序
	assert.Equal(t, "Second", pubs[0].Title)
	assert.Equal(t, "First", pubs[1].Title)

	w := test.Get(r, "/publications?year=2019")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Third")
	assert.NotContains(t, w.Body.String(), "Second")

	// 无法解析的年份忽略
	w = test.Get(r, "/publications?year=abc")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Second")
}

func TestPosts(t *testing.T) {
	r, db := setup(t)
	post(t, db, "older", true, 1)
	post(t, db, "newer", true, 2)
	post(t, db, "draft", false, 3)
	require.NoError(t, db.Create(&model.Post{Title: "Hero", Slug: model.HeroPostSlug, Content: "a.jpg", IsPublished: true}).Error)

	posts, err := svc.Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Slug)

	w := test.Get(r, "/posts/older")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "body of older")

	for _, slug := range []string{"draft", model.HeroPostSlug, "missing"} {
		w = test.Get(r, "/posts/"+slug)
		assert.Equal(t, http.StatusNotFound, w.Code, slug)
	}
}

func TestContact(t *testing.T) {
	r, _ := setup(t)
	w := test.Get(r, "/contact")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mailto:lab@example.com")
	assert.Contains(t, w.Body.String(), "Room 101")
}
