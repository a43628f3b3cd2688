package post

import (
	"context"

	"lab-website/internal/global/crud"
	"lab-website/internal/global/response"
	"lab-website/internal/model"
)

const slugTaken = "This slug is already in use"

type store interface {
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	IDBy(ctx context.Context, column string, value any) (uint, error)
	Create(ctx context.Context, p *model.Post) error
	Update(ctx context.Context, id uint, p *model.Post) error
	Delete(ctx context.Context, id uint) error
}

type Service struct {
	repo store
}

func NewService(repo store) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in *Input) (uint, error) {
	if err := s.checkSlug(ctx, in.Slug, 0); err != nil {
		return 0, err
	}
	p := &model.Post{}
	in.apply(p)
	if err := s.repo.Create(ctx, p); err != nil {
		return 0, crud.StoreError(err, "slug", slugTaken)
	}
	return p.ID, nil
}

func (s *Service) Update(ctx context.Context, id uint, in *Input) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return crud.StoreError(err, "", "")
	}
	if err := s.checkSlug(ctx, in.Slug, id); err != nil {
		return err
	}
	p := &model.Post{}
	in.apply(p)
	return crud.StoreError(s.repo.Update(ctx, id, p), "slug", slugTaken)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return crud.StoreError(s.repo.Delete(ctx, id), "", "")
}

func (s *Service) checkSlug(ctx context.Context, slug string, self uint) error {
	found, err := s.repo.IDBy(ctx, "slug", slug)
	taken, err := crud.Taken(found, err, self)
	if err != nil {
		return err
	}
	if taken {
		return response.ErrBusinessRule.WithField("slug", slugTaken)
	}
	return nil
}
