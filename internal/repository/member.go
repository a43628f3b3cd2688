package repository

import (
	"context"

	"lab-website/internal/model"

	"gorm.io/gorm"
)

type MemberRepo struct {
	table[model.Member]
}

func NewMemberRepo(db *gorm.DB) *MemberRepo {
	return &MemberRepo{table[model.Member]{db: db}}
}

// List 按 display_order、姓名、id 升序，保证顺序稳定
func (r *MemberRepo) List(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Order("display_order ASC").
		Order("name ASC").
		Order("id ASC").
		Find(&members).Error
	return members, translate(err, "list members")
}
