package model

import "time"

type Project struct {
	Model
	Title         string        `gorm:"type:varchar(200);not null" json:"title"`
	TitleEn       *string       `gorm:"type:varchar(200)" json:"title_en"`
	Slug          string        `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug"`
	Summary       string        `gorm:"type:varchar(300);not null" json:"summary"`
	SummaryEn     *string       `gorm:"type:varchar(300)" json:"summary_en"`
	Description   string        `gorm:"type:text;not null" json:"description"`
	DescriptionEn *string       `gorm:"type:text" json:"description_en"`
	Status        ProjectStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	StartDate     time.Time     `gorm:"type:date;not null" json:"start_date"`
	EndDate       *time.Time    `gorm:"type:date" json:"end_date"`
	// 关联论文，删除项目时置空
	Publications []Publication `gorm:"foreignKey:RelatedProjectID;constraint:OnDelete:SET NULL" json:"publications,omitempty"`
}

func (p *Project) DisplayTitle(lang string) string {
	return Localized(lang, p.Title, p.TitleEn)
}

func (p *Project) DisplaySummary(lang string) string {
	return Localized(lang, p.Summary, p.SummaryEn)
}

func (p *Project) DisplayDescription(lang string) string {
	return Localized(lang, p.Description, p.DescriptionEn)
}
