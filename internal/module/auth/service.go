package auth

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"lab-website/internal/global/response"
	"lab-website/internal/model"
	"lab-website/internal/repository"
	"lab-website/tools"

	"gorm.io/gorm"
)

// usernameTaken 用户名冲突时显示在 username 字段旁
const usernameTaken = "Username already exists"

type adminStore interface {
	FindByID(ctx context.Context, id uint) (*model.AdminUser, error)
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	Create(ctx context.Context, admin *model.AdminUser) error
}

// Service 管理员凭据校验与初始化
type Service struct {
	admins       adminStore
	members      *repository.MemberRepo
	projects     *repository.ProjectRepo
	publications *repository.PublicationRepo
	posts        *repository.PostRepo
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		admins:       repository.NewAdminRepo(db),
		members:      repository.NewMemberRepo(db),
		projects:     repository.NewProjectRepo(db),
		publications: repository.NewPublicationRepo(db),
		posts:        repository.NewPostRepo(db),
	}
}

// Authenticate 用户不存在与密码错误返回同一个错误
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.AdminUser, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, response.ErrInvalidPassword
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if !tools.PasswordCompare(password, admin.PasswordHash) {
		return nil, response.ErrInvalidPassword
	}
	return admin, nil
}

func (s *Service) FindAdmin(ctx context.Context, id uint) (*model.AdminUser, error) {
	return s.admins.FindByID(ctx, id)
}

// CreateAdmin 创建管理员，用户名已存在时在预检或落库阶段返回 ErrBusinessRule
func (s *Service) CreateAdmin(ctx context.Context, username, password string) error {
	if n := utf8.RuneCountInString(username); n < 4 || n > 50 {
		return fmt.Errorf("管理员用户名长度必须在 4 到 50 之间: %q", username)
	}
	if password == "" {
		return errors.New("管理员密码不能为空")
	}

	_, err := s.admins.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return response.ErrBusinessRule.WithField("username", usernameTaken)
	case !errors.Is(err, repository.ErrNotFound):
		return response.ErrDatabase.WithOrigin(err)
	}

	hash, err := tools.PasswordEncrypt(password)
	if err != nil {
		return response.ErrServerInternal.WithOrigin(err)
	}
	err = s.admins.Create(ctx, &model.AdminUser{Username: username, PasswordHash: hash})
	switch {
	case errors.Is(err, repository.ErrDuplicateEntry):
		// 预检之后另一个实例已写入
		return response.ErrBusinessRule.WithField("username", usernameTaken)
	case err != nil:
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}

// EnsureAdmin 用户名不存在时创建管理员，已存在时不做修改，用于启动时的初始化
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	err := s.CreateAdmin(ctx, username, password)
	if errors.Is(err, response.ErrBusinessRule) {
		return false, nil
	}
	return err == nil, err
}

// Counts 后台首页的统计
type Counts struct {
	Members      int64
	Projects     int64
	Publications int64
	Posts        int64
}

func (s *Service) Counts(ctx context.Context) (*Counts, error) {
	var (
		c   Counts
		err error
	)
	if c.Members, err = s.members.Count(ctx); err != nil {
		return nil, err
	}
	if c.Projects, err = s.projects.Count(ctx); err != nil {
		return nil, err
	}
	if c.Publications, err = s.publications.Count(ctx); err != nil {
		return nil, err
	}
	if c.Posts, err = s.posts.Count(ctx); err != nil {
		return nil, err
	}
	return &c, nil
}
