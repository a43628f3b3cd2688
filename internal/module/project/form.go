package project

import (
	"time"

	"lab-website/internal/global/form"
	"lab-website/internal/model"

	"github.com/gin-gonic/gin"
)

type Input struct {
	Title         string              `form:"title" binding:"required,max=200"`
	TitleEn       *string             `form:"title_en" binding:"omitempty,max=200"`
	Slug          string              `form:"slug" binding:"required,max=150,slug"`
	Summary       string              `form:"summary" binding:"required,max=300"`
	SummaryEn     *string             `form:"summary_en" binding:"omitempty,max=300"`
	Description   string              `form:"description" binding:"required,max=8000"`
	DescriptionEn *string             `form:"description_en" binding:"omitempty,max=8000"`
	Status        model.ProjectStatus `form:"status" binding:"required,enum"`
	StartDate     time.Time           `form:"start_date" time_format:"2006-01-02" time_utc:"1" binding:"required"`
	EndDate       *time.Time          `form:"end_date" time_format:"2006-01-02" time_utc:"1"`
}

func parse(c *gin.Context) (*Input, error) {
	in := &Input{}
	err := form.Bind(c, in,
		form.WithFallback("title", "title_en"),
		form.WithFallback("summary", "summary_en"),
		form.WithFallback("description", "description_en"),
	)

	// 起止日期都有效时再比较
	if in.EndDate != nil && !in.StartDate.IsZero() && in.EndDate.Before(in.StartDate) {
		err = form.AddField(err, "end_date", "End date cannot be earlier than the start date")
	}
	return in, err
}

func (in *Input) apply(p *model.Project) {
	p.Title = in.Title
	p.TitleEn = in.TitleEn
	p.Slug = in.Slug
	p.Summary = in.Summary
	p.SummaryEn = in.SummaryEn
	p.Description = in.Description
	p.DescriptionEn = in.DescriptionEn
	p.Status = in.Status
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
}

func values(p *model.Project) map[string]string {
	end := ""
	if p.EndDate != nil {
		end = p.EndDate.Format(form.DateLayout)
	}
	return map[string]string{
		"title":          p.Title,
		"title_en":       form.Deref(p.TitleEn),
		"slug":           p.Slug,
		"summary":        p.Summary,
		"summary_en":     form.Deref(p.SummaryEn),
		"description":    p.Description,
		"description_en": form.Deref(p.DescriptionEn),
		"status":         string(p.Status),
		"start_date":     p.StartDate.Format(form.DateLayout),
		"end_date":       end,
	}
}
