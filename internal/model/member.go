package model

type Member struct {
	Model
	Name         string     `gorm:"type:varchar(100);not null" json:"name"`
	NameEn       *string    `gorm:"type:varchar(100)" json:"name_en"`
	Role         MemberRole `gorm:"type:varchar(20);not null;index" json:"role"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PhotoURL     *string    `gorm:"type:varchar(500)" json:"photo_url"`
	Bio          *string    `gorm:"type:varchar(2000)" json:"bio"`
	BioEn        *string    `gorm:"type:varchar(2000)" json:"bio_en"`
	DisplayOrder int        `gorm:"not null;index" json:"display_order"` // 越小越靠前，表单缺省时为 100
}

func (m *Member) DisplayName(lang string) string {
	return Localized(lang, m.Name, m.NameEn)
}

func (m *Member) DisplayBio(lang string) string {
	if m.Bio == nil {
		return Localized(lang, "", m.BioEn)
	}
	return Localized(lang, *m.Bio, m.BioEn)
}
