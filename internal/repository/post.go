package repository

import (
	"context"

	"lab-website/internal/model"

	"gorm.io/gorm"
)

type PostRepo struct {
	table[model.Post]
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{table[model.Post]{db: db}}
}

func (r *PostRepo) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, translate(err, "find post by slug")
	}
	return &p, nil
}

// List 后台列表，不含首页轮播图系统文章
func (r *PostRepo) List(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Where("slug <> ?", model.HeroPostSlug).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	return posts, translate(err, "list posts")
}

// ListPublished 前台列表，limit <= 0 时不限制条数
func (r *PostRepo) ListPublished(ctx context.Context, limit int) ([]model.Post, error) {
	query := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Where("slug <> ?", model.HeroPostSlug).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var posts []model.Post
	err := query.Find(&posts).Error
	return posts, translate(err, "list published posts")
}

func (r *PostRepo) FindPublishedBySlug(ctx context.Context, slug string) (*model.Post, error) {
	if slug == model.HeroPostSlug {
		return nil, ErrNotFound
	}
	var p model.Post
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&p).Error
	if err != nil {
		return nil, translate(err, "find published post")
	}
	return &p, nil
}

// Count 不含首页轮播图文章
func (r *PostRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("slug <> ?", model.HeroPostSlug).
		Count(&n).Error
	return n, translate(err, "count posts")
}
