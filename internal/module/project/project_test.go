package project

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"lab-website/internal/global/database"
	"lab-website/internal/global/render"
	"lab-website/internal/global/response"
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
	test.Config(t)
	db := test.NewDB(t)
	database.DB = db
	(&ModuleProject{}).Init()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NoError(t, render.Load(r))
	register(r.Group(listPath), handler)
	return r, db
}

func projectForm(title, slug string) url.Values {
	return url.Values{
		"title":       {title},
		"slug":        {slug},
		"summary":     {"summary"},
		"description": {"description"},
		"status":      {"ongoing"},
		"start_date":  {"2025-01-01"},
	}
}

func count(t *testing.T, db *gorm.DB) int64 {
	n, err := repository.NewProjectRepo(db).Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestCreateProjectAndDuplicateSlug(t *testing.T) {
	r, db := setup(t)

	w := test.PostForm(r, listPath, projectForm("X", "x-proj"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, listPath, w.Header().Get("Location"))

	var p model.Project
	require.NoError(t, db.First(&p).Error)
	assert.Equal(t, "x-proj", p.Slug)
	assert.Equal(t, model.StatusOngoing, p.Status)
	assert.True(t, p.StartDate.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, p.EndDate)

	w = test.PostForm(r, listPath, projectForm("Y", "x-proj"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), slugTaken)
	assert.EqualValues(t, 1, count(t, db))
}

func TestEndDateBeforeStartDate(t *testing.T) {
	r, db := setup(t)

	form := projectForm("X", "x-proj")
	form.Set("end_date", "2024-12-31")
	w := test.PostForm(r, listPath, form)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "End date cannot be earlier than the start date")
	assert.Zero(t, count(t, db))

	form.Set("end_date", "2025-01-01")
	require.Equal(t, http.StatusSeeOther, test.PostForm(r, listPath, form).Code)
}

func TestProjectValidation(t *testing.T) {
	r, _ := setup(t)

	form := projectForm("", "bad slug")
	form.Set("status", "paused")
	form.Set("start_date", "01/02/2025")
	w := test.PostForm(r, listPath, form)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "This field is required")
	assert.Contains(t, body, "Only letters, digits, hyphens and underscores are allowed")
	assert.Contains(t, body, "Unknown value")
	assert.Contains(t, body, "Must be a date in YYYY-MM-DD format")
}

func TestEnglishFallback(t *testing.T) {
	r, db := setup(t)

	form := projectForm("", "en-only")
	form.Set("title_en", "English title")
	require.Equal(t, http.StatusSeeOther, test.PostForm(r, listPath, form).Code)

	var p model.Project
	require.NoError(t, db.First(&p).Error)
	assert.Equal(t, "English title", p.Title)
}

func TestUpdateProject(t *testing.T) {
	r, db := setup(t)
	require.Equal(t, http.StatusSeeOther, test.PostForm(r, listPath, projectForm("X", "x-proj")).Code)
	require.Equal(t, http.StatusSeeOther, test.PostForm(r, listPath, projectForm("Y", "y-proj")).Code)

	var x model.Project
	require.NoError(t, db.Where("slug = ?", "x-proj").First(&x).Error)
	path := listPath + "/" + strconv.Itoa(int(x.ID))

	w := test.Get(r, path+"/edit")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="2025-01-01"`)

	form := projectForm("X2", "x-proj")
	form.Set("status", "completed")
	form.Set("end_date", "2025-06-30")
	require.Equal(t, http.StatusSeeOther, test.PostForm(r, path+"/update", form).Code)
	require.NoError(t, db.First(&x, x.ID).Error)
	assert.Equal(t, "X2", x.Title)
	assert.Equal(t, model.StatusCompleted, x.Status)
	require.NotNil(t, x.EndDate)

	w = test.PostForm(r, path+"/update", projectForm("X", "y-proj"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), slugTaken)

	assert.Equal(t, http.StatusNotFound, test.PostForm(r, listPath+"/999/update", projectForm("Z", "z")).Code)
}

func TestDeleteProjectKeepsPublications(t *testing.T) {
	r, db := setup(t)
	require.Equal(t, http.StatusSeeOther, test.PostForm(r, listPath, projectForm("X", "x-proj")).Code)

	var p model.Project
	require.NoError(t, db.First(&p).Error)
	pub := model.Publication{Title: "Paper", Authors: "Kim", Venue: "Conf", Year: 2025, RelatedProjectID: &p.ID}
	require.NoError(t, db.Create(&pub).Error)

	w := test.PostForm(r, listPath+"/"+strconv.Itoa(int(p.ID))+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Zero(t, count(t, db))

	require.NoError(t, db.First(&pub, pub.ID).Error)
	assert.Nil(t, pub.RelatedProjectID)

	assert.Equal(t, http.StatusNotFound, test.PostForm(r, listPath+"/"+strconv.Itoa(int(p.ID))+"/delete", nil).Code)
}

type racyStore struct {
	*repository.ProjectRepo
}

func (racyStore) IDBy(context.Context, string, any) (uint, error) {
	return 0, repository.ErrNotFound
}

func TestDuplicateSlugCaughtByStorage(t *testing.T) {
	setup(t)
	svc := NewService(racyStore{repository.NewProjectRepo(database.DB)})
	ctx := context.Background()
	in := func() *Input {
		return &Input{
			Title: "X", Slug: "x-proj", Summary: "s", Description: "d",
			Status: model.StatusOngoing, StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	_, err := svc.Create(ctx, in())
	require.NoError(t, err)
	_, err = svc.Create(ctx, in())
	var e *response.Error
	require.ErrorAs(t, err, &e)
	assert.ErrorIs(t, err, response.ErrBusinessRule)
	assert.Equal(t, slugTaken, e.Fields["slug"])
}
