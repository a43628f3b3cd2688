package model

// HeroPostSlug 首页轮播图系统文章，内容为按行分隔的图片地址
const HeroPostSlug = "system-home-hero-image"

type Post struct {
	Model
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug"`
	Content     string `gorm:"type:text;not null" json:"content"`
	IsPublished bool   `gorm:"not null;index" json:"is_published"`
}

func (p *Post) IsSystem() bool {
	return p.Slug == HeroPostSlug
}
