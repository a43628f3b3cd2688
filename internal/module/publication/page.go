package publication

import (
	"strconv"
	"time"

	"lab-website/internal/global/crud"
	"lab-website/internal/global/render"
	"lab-website/internal/global/response"
	"lab-website/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type pages struct {
	repo     *repository.PublicationRepo
	projects *repository.ProjectRepo
}

var exporter *pages

func newHandler(db *gorm.DB) *crud.Handler[Input] {
	repo := repository.NewPublicationRepo(db)
	projects := repository.NewProjectRepo(db)
	p := &pages{repo: repo, projects: projects}
	exporter = p
	return &crud.Handler[Input]{
		Name:        "publication",
		ListPath:    listPath,
		ParseCreate: parse,
		ParseUpdate: parse,
		Service:     NewService(repo, projects),
		RenderList:  p.list,
		RenderEdit:  p.edit,
		Log:         log,
	}
}

func (p *pages) list(c *gin.Context, status int, fs *crud.FormState) {
	ctx := c.Request.Context()
	pubs, err := p.repo.List(ctx, nil)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	projects, err := p.projects.List(ctx, nil)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if fs == nil {
		fs = &crud.FormState{}
	}
	if fs.Values == nil {
		fs.Values = map[string]string{"year": strconv.Itoa(time.Now().UTC().Year())}
	}
	render.Page(c, status, "admin_publications.html", gin.H{
		"Items":    pubs,
		"Projects": projects,
		"Form":     fs,
	})
}

func (p *pages) edit(c *gin.Context, status int, id uint, fs *crud.FormState) {
	ctx := c.Request.Context()
	pub, err := p.repo.FindByID(ctx, id)
	if err != nil {
		response.Fail(c, crud.StoreError(err, "", ""))
		return
	}
	projects, err := p.projects.List(ctx, nil)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if fs == nil {
		fs = &crud.FormState{Values: values(pub)}
	}
	render.Page(c, status, "admin_publication_edit.html", gin.H{
		"ID":       id,
		"Projects": projects,
		"Form":     fs,
	})
}
