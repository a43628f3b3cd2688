package repository

import (
	"context"

	"lab-website/internal/model"

	"gorm.io/gorm"
)

type ProjectRepo struct {
	table[model.Project]
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{table[model.Project]{db: db}}
}

func (r *ProjectRepo) FindBySlug(ctx context.Context, slug string) (*model.Project, error) {
	var p model.Project
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, translate(err, "find project by slug")
	}
	return &p, nil
}

// List 按创建时间倒序，status 为空时不过滤
func (r *ProjectRepo) List(ctx context.Context, status *model.ProjectStatus) ([]model.Project, error) {
	query := r.db.WithContext(ctx).Model(&model.Project{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var projects []model.Project
	err := query.Order("created_at DESC").Order("id DESC").Find(&projects).Error
	return projects, translate(err, "list projects")
}

func (r *ProjectRepo) Latest(ctx context.Context, limit int) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, translate(err, "latest projects")
}

// Delete 物理删除项目，关联论文的 related_project_id 在同一事务内置空
func (r *ProjectRepo) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[model.Project](tx, id); err != nil {
			return err
		}
		err := tx.Model(&model.Publication{}).
			Where("related_project_id = ?", id).
			Update("related_project_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, id).Error
	})
	return translate(err, "delete project")
}
