package member

import (
	"strconv"

	"lab-website/internal/global/crud"
	"lab-website/internal/global/pictureBed"
	"lab-website/internal/global/render"
	"lab-website/internal/global/response"
	"lab-website/internal/model"
	"lab-website/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type pages struct {
	repo *repository.MemberRepo
}

func newHandler(db *gorm.DB, photos pictureBed.Store) *crud.Handler[Input] {
	repo := repository.NewMemberRepo(db)
	p := &pages{repo: repo}
	return &crud.Handler[Input]{
		Name:        "member",
		ListPath:    listPath,
		ParseCreate: parse,
		ParseUpdate: parse,
		Service:     NewService(repo, photos),
		RenderList:  p.list,
		RenderEdit:  p.edit,
		Log:         log,
	}
}

func (p *pages) list(c *gin.Context, status int, fs *crud.FormState) {
	members, err := p.repo.List(c.Request.Context())
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if fs == nil {
		fs = &crud.FormState{}
	}
	if fs.Values == nil {
		fs.Values = map[string]string{
			"role":          string(model.RoleProfessor),
			"display_order": strconv.Itoa(DefaultDisplayOrder),
		}
	}
	render.Page(c, status, "admin_members.html", gin.H{
		"Items": members,
		"Roles": model.MemberRoles,
		"Form":  fs,
	})
}

func (p *pages) edit(c *gin.Context, status int, id uint, fs *crud.FormState) {
	m, err := p.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, crud.StoreError(err, "", ""))
		return
	}
	if fs == nil {
		fs = &crud.FormState{Values: values(m)}
	}
	render.Page(c, status, "admin_member_edit.html", gin.H{
		"ID":    id,
		"Roles": model.MemberRoles,
		"Form":  fs,
	})
}
