package publication

import (
	"strconv"

	"lab-website/internal/global/form"
	"lab-website/internal/model"

	"github.com/gin-gonic/gin"
)

type Input struct {
	Title            string  `form:"title" binding:"required,max=300"`
	TitleEn          *string `form:"title_en" binding:"omitempty,max=300"`
	Authors          string  `form:"authors" binding:"required,max=500"`
	AuthorsEn        *string `form:"authors_en" binding:"omitempty,max=500"`
	Venue            string  `form:"venue" binding:"required,max=255"`
	VenueEn          *string `form:"venue_en" binding:"omitempty,max=255"`
	Year             int     `form:"year" binding:"required,gte=1900,lte=3000"`
	Link             *string `form:"link" binding:"omitempty,max=500,link"`
	RelatedProjectID *uint   `form:"related_project_id" binding:"omitempty,gt=0"`
}

func parse(c *gin.Context) (*Input, error) {
	in := &Input{}
	err := form.Bind(c, in,
		form.WithFallback("title", "title_en"),
		form.WithFallback("authors", "authors_en"),
		form.WithFallback("venue", "venue_en"),
	)
	return in, err
}

func (in *Input) apply(p *model.Publication) {
	p.Title = in.Title
	p.TitleEn = in.TitleEn
	p.Authors = in.Authors
	p.AuthorsEn = in.AuthorsEn
	p.Venue = in.Venue
	p.VenueEn = in.VenueEn
	p.Year = in.Year
	p.Link = in.Link
	p.RelatedProjectID = in.RelatedProjectID
}

func values(p *model.Publication) map[string]string {
	related := ""
	if p.RelatedProjectID != nil {
		related = strconv.FormatUint(uint64(*p.RelatedProjectID), 10)
	}
	return map[string]string{
		"title":              p.Title,
		"title_en":           form.Deref(p.TitleEn),
		"authors":            p.Authors,
		"authors_en":         form.Deref(p.AuthorsEn),
		"venue":              p.Venue,
		"venue_en":           form.Deref(p.VenueEn),
		"year":               strconv.Itoa(p.Year),
		"link":               form.Deref(p.Link),
		"related_project_id": related,
	}
}
