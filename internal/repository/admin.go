package repository

import (
	"context"

	"lab-website/internal/model"

	"gorm.io/gorm"
)

// AdminRepo 管理员凭据存储
type AdminRepo struct {
	table[model.AdminUser]
}

func NewAdminRepo(db *gorm.DB) *AdminRepo {
	return &AdminRepo{table[model.AdminUser]{db: db}}
}

func (r *AdminRepo) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	var admin model.AdminUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		return nil, translate(err, "find admin by username")
	}
	return &admin, nil
}
