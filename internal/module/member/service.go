package member

import (
	"context"

	"lab-website/internal/global/crud"
	"lab-website/internal/global/logger"
	"lab-website/internal/global/pictureBed"
	"lab-website/internal/global/response"
	"lab-website/internal/model"
)

const emailTaken = "This email is already in use"

type store interface {
	FindByID(ctx context.Context, id uint) (*model.Member, error)
	IDBy(ctx context.Context, column string, value any) (uint, error)
	Create(ctx context.Context, m *model.Member) error
	Update(ctx context.Context, id uint, m *model.Member) error
	Delete(ctx context.Context, id uint) error
}

// Service 成员写操作：邮箱唯一性预检、头像上传、落库
type Service struct {
	repo   store
	photos pictureBed.Store
}

func NewService(repo store, photos pictureBed.Store) *Service {
	return &Service{repo: repo, photos: photos}
}

func (s *Service) Create(ctx context.Context, in *Input) (uint, error) {
	if err := s.checkEmail(ctx, in.Email, 0); err != nil {
		return 0, err
	}
	if err := s.upload(ctx, in); err != nil {
		return 0, err
	}
	m := &model.Member{}
	in.apply(m)
	if err := s.repo.Create(ctx, m); err != nil {
		s.discard(ctx, in)
		return 0, crud.StoreError(err, "email", emailTaken)
	}
	return m.ID, nil
}

func (s *Service) Update(ctx context.Context, id uint, in *Input) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return crud.StoreError(err, "", "")
	}
	if err := s.checkEmail(ctx, in.Email, id); err != nil {
		return err
	}
	if err := s.upload(ctx, in); err != nil {
		return err
	}
	m := &model.Member{}
	in.apply(m)
	if err := s.repo.Update(ctx, id, m); err != nil {
		s.discard(ctx, in)
		return crud.StoreError(err, "email", emailTaken)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return crud.StoreError(s.repo.Delete(ctx, id), "", "")
}

func (s *Service) checkEmail(ctx context.Context, email string, self uint) error {
	found, err := s.repo.IDBy(ctx, "email", email)
	taken, err := crud.Taken(found, err, self)
	if err != nil {
		return err
	}
	if taken {
		return response.ErrBusinessRule.WithField("email", emailTaken)
	}
	return nil
}

// upload 校验全部通过后才写入图片存储
func (s *Service) upload(ctx context.Context, in *Input) error {
	if in.Photo == nil || s.photos == nil {
		return nil
	}
	url, err := s.photos.Save(ctx, in.Photo)
	if err != nil {
		return response.ErrStorage.WithOrigin(err)
	}
	in.PhotoURL = &url
	return nil
}

// discard 落库失败时删除本次上传的图片
func (s *Service) discard(ctx context.Context, in *Input) {
	if in.Photo == nil || in.PhotoURL == nil || s.photos == nil {
		return
	}
	if err := s.photos.Delete(context.WithoutCancel(ctx), *in.PhotoURL); err != nil {
		logger.New("Member").Warn("删除未使用的头像失败", "url", *in.PhotoURL, "error", err)
	}
}
