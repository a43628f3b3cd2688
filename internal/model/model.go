package model

import (
	"time"
)

// Model 公共字段，删除为物理删除，不带 DeletedAt
type Model struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// Localized 选择英文字段，英文为空时回退到主字段
func Localized(lang, primary string, en *string) string {
	if lang == "en" && en != nil && *en != "" {
		return *en
	}
	return primary
}

// All 需要自动迁移的模型列表
func All() []any {
	return []any{
		&AdminUser{},
		&Member{},
		&Project{},
		&Publication{},
		&Post{},
		&Session{},
	}
}
