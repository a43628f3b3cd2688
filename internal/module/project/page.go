package project

import (
	"lab-website/internal/global/crud"
	"lab-website/internal/global/render"
	"lab-website/internal/global/response"
	"lab-website/internal/model"
	"lab-website/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type pages struct {
	repo *repository.ProjectRepo
}

func newHandler(db *gorm.DB) *crud.Handler[Input] {
	repo := repository.NewProjectRepo(db)
	p := &pages{repo: repo}
	return &crud.Handler[Input]{
		Name:        "project",
		ListPath:    listPath,
		ParseCreate: parse,
		ParseUpdate: parse,
		Service:     NewService(repo),
		RenderList:  p.list,
		RenderEdit:  p.edit,
		Log:         log,
	}
}

func (p *pages) list(c *gin.Context, status int, fs *crud.FormState) {
	projects, err := p.repo.List(c.Request.Context(), nil)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if fs == nil {
		fs = &crud.FormState{}
	}
	if fs.Values == nil {
		fs.Values = map[string]string{"status": string(model.StatusOngoing)}
	}
	render.Page(c, status, "admin_projects.html", gin.H{
		"Items":    projects,
		"Statuses": model.ProjectStatuses,
		"Form":     fs,
	})
}

func (p *pages) edit(c *gin.Context, status int, id uint, fs *crud.FormState) {
	project, err := p.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, crud.StoreError(err, "", ""))
		return
	}
	if fs == nil {
		fs = &crud.FormState{Values: values(project)}
	}
	render.Page(c, status, "admin_project_edit.html", gin.H{
		"ID":       id,
		"Statuses": model.ProjectStatuses,
		"Form":     fs,
	})
}
