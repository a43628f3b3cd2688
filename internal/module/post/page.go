package post

import (
	"errors"

	"lab-website/internal/global/crud"
	"lab-website/internal/global/render"
	"lab-website/internal/global/response"
	"lab-website/internal/model"
	"lab-website/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type pages struct {
	repo *repository.PostRepo
}

func newHandler(db *gorm.DB) *crud.Handler[Input] {
	repo := repository.NewPostRepo(db)
	p := &pages{repo: repo}
	return &crud.Handler[Input]{
		Name:        "post",
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
	ctx := c.Request.Context()
	posts, err := p.repo.List(ctx)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	// 首页轮播图文章不在列表中，单独给出编辑入口
	hero, err := p.repo.FindBySlug(ctx, model.HeroPostSlug)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if fs == nil {
		fs = &crud.FormState{}
	}
	if fs.Values == nil {
		fs.Values = map[string]string{"is_published": "true"}
	}
	render.Page(c, status, "admin_posts.html", gin.H{
		"Items":    posts,
		"Hero":     hero,
		"HeroSlug": model.HeroPostSlug,
		"Form":     fs,
	})
}

func (p *pages) edit(c *gin.Context, status int, id uint, fs *crud.FormState) {
	post, err := p.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, crud.StoreError(err, "", ""))
		return
	}
	if fs == nil {
		fs = &crud.FormState{Values: values(post)}
	}
	render.Page(c, status, "admin_post_edit.html", gin.H{
		"ID":     id,
		"System": post.IsSystem(),
		"Form":   fs,
	})
}
