package repository

import (
	"context"

	"lab-website/internal/model"

	"gorm.io/gorm"
)

type PublicationRepo struct {
	table[model.Publication]
}

func NewPublicationRepo(db *gorm.DB) *PublicationRepo {
	return &PublicationRepo{table[model.Publication]{db: db}}
}

// List 按年份倒序、id 倒序，year 为空时返回全部
func (r *PublicationRepo) List(ctx context.Context, year *int) ([]model.Publication, error) {
	query := r.db.WithContext(ctx).Preload("RelatedProject")
	if year != nil {
		query = query.Where("year = ?", *year)
	}
	var pubs []model.Publication
	err := query.Order("year DESC").Order("id DESC").Find(&pubs).Error
	return pubs, translate(err, "list publications")
}

func (r *PublicationRepo) Latest(ctx context.Context, limit int) ([]model.Publication, error) {
	var pubs []model.Publication
	err := r.db.WithContext(ctx).
		Order("year DESC").
		Order("id DESC").
		Limit(limit).
		Find(&pubs).Error
	return pubs, translate(err, "latest publications")
}

func (r *PublicationRepo) ListByProject(ctx context.Context, projectID uint) ([]model.Publication, error) {
	var pubs []model.Publication
	err := r.db.WithContext(ctx).
		Where("related_project_id = ?", projectID).
		Order("year DESC").
		Order("id DESC").
		Find(&pubs).Error
	return pubs, translate(err, "list publications by project")
}

// Years 返回出现过的年份，倒序
func (r *PublicationRepo) Years(ctx context.Context) ([]int, error) {
	var years []int
	err := r.db.WithContext(ctx).
		Model(&model.Publication{}).
		Distinct("year").
		Order("year DESC").
		Pluck("year", &years).Error
	return years, translate(err, "list publication years")
}
