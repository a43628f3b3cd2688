package post

import (
	"strconv"

	"lab-website/internal/global/form"
	"lab-website/internal/model"

	"github.com/gin-gonic/gin"
)

type Input struct {
	Title       string `form:"title" binding:"required,max=200"`
	Slug        string `form:"slug" binding:"required,max=150,slug"`
	Content     string `form:"content" binding:"required,max=12000"`
	IsPublished bool   `form:"is_published,default=true"`
}

func parse(c *gin.Context) (*Input, error) {
	in := &Input{}
	return in, form.Bind(c, in)
}

func (in *Input) apply(p *model.Post) {
	p.Title = in.Title
	p.Slug = in.Slug
	p.Content = in.Content
	p.IsPublished = in.IsPublished
}

func values(p *model.Post) map[string]string {
	return map[string]string{
		"title":        p.Title,
		"slug":         p.Slug,
		"content":      p.Content,
		"is_published": strconv.FormatBool(p.IsPublished),
	}
}
