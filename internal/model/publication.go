package model

import "time"

// Publication 只有创建时间，没有更新时间
type Publication struct {
	ID               uint      `gorm:"primaryKey" json:"id" excel:"ID"`
	Title            string    `gorm:"type:varchar(300);not null" json:"title" excel:"Title"`
	TitleEn          *string   `gorm:"type:varchar(300)" json:"title_en" excel:"Title (EN)"`
	Authors          string    `gorm:"type:varchar(500);not null" json:"authors" excel:"Authors"`
	AuthorsEn        *string   `gorm:"type:varchar(500)" json:"authors_en" excel:"Authors (EN)"`
	Venue            string    `gorm:"type:varchar(255);not null" json:"venue" excel:"Venue"`
	VenueEn          *string   `gorm:"type:varchar(255)" json:"venue_en" excel:"Venue (EN)"`
	Year             int       `gorm:"not null;index" json:"year" excel:"Year"`
	Link             *string   `gorm:"type:varchar(500)" json:"link" excel:"Link"`
	RelatedProjectID *uint     `gorm:"index" json:"related_project_id" excel:"Project ID"`
	RelatedProject   *Project  `gorm:"foreignKey:RelatedProjectID;constraint:OnDelete:SET NULL" json:"related_project,omitempty" excel:"-"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at" excel:"Created At"`
}

func (p *Publication) DisplayTitle(lang string) string {
	return Localized(lang, p.Title, p.TitleEn)
}

func (p *Publication) DisplayAuthors(lang string) string {
	return Localized(lang, p.Authors, p.AuthorsEn)
}

func (p *Publication) DisplayVenue(lang string) string {
	return Localized(lang, p.Venue, p.VenueEn)
}
