package publication

import (
	"context"
	"errors"

	"lab-website/internal/global/crud"
	"lab-website/internal/global/response"
	"lab-website/internal/model"
	"lab-website/internal/repository"
)

const projectMissing = "The selected project does not exist"

type store interface {
	FindByID(ctx context.Context, id uint) (*model.Publication, error)
	Create(ctx context.Context, p *model.Publication) error
	Update(ctx context.Context, id uint, p *model.Publication) error
	Delete(ctx context.Context, id uint) error
}

type projectFinder interface {
	FindByID(ctx context.Context, id uint) (*model.Project, error)
}

type Service struct {
	repo     store
	projects projectFinder
}

func NewService(repo store, projects projectFinder) *Service {
	return &Service{repo: repo, projects: projects}
}

func (s *Service) Create(ctx context.Context, in *Input) (uint, error) {
	if err := s.checkProject(ctx, in.RelatedProjectID); err != nil {
		return 0, err
	}
	p := &model.Publication{}
	in.apply(p)
	if err := s.repo.Create(ctx, p); err != nil {
		return 0, crud.StoreError(err, "related_project_id", projectMissing)
	}
	return p.ID, nil
}

func (s *Service) Update(ctx context.Context, id uint, in *Input) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return crud.StoreError(err, "", "")
	}
	if err := s.checkProject(ctx, in.RelatedProjectID); err != nil {
		return err
	}
	p := &model.Publication{}
	in.apply(p)
	return crud.StoreError(s.repo.Update(ctx, id, p), "related_project_id", projectMissing)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return crud.StoreError(s.repo.Delete(ctx, id), "", "")
}

// checkProject 关联项目必须存在，外键约束兜底
func (s *Service) checkProject(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	_, err := s.projects.FindByID(ctx, *id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return response.ErrBusinessRule.WithField("related_project_id", projectMissing)
	case err != nil:
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}
