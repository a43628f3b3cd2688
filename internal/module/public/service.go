package public

import (
	"context"
	"errors"
	"strings"

	"lab-website/config"
	"lab-website/internal/model"
	"lab-website/internal/repository"

	"gorm.io/gorm"
)

// 首页各栏目的条数
const (
	homeProjects     = 3
	homePublications = 5
	homePosts        = 3
)

// Service 前台只读查询
type Service struct {
	members      *repository.MemberRepo
	projects     *repository.ProjectRepo
	publications *repository.PublicationRepo
	posts        *repository.PostRepo
	contact      config.Contact
}

func NewService(db *gorm.DB, contact config.Contact) *Service {
	return &Service{
		members:      repository.NewMemberRepo(db),
		projects:     repository.NewProjectRepo(db),
		publications: repository.NewPublicationRepo(db),
		posts:        repository.NewPostRepo(db),
		contact:      contact,
	}
}

type HomeData struct {
	HeroImages   []string
	Projects     []model.Project
	Publications []model.Publication
	Posts        []model.Post
}

func (s *Service) Home(ctx context.Context) (*HomeData, error) {
	var (
		d   HomeData
		err error
	)
	if d.Projects, err = s.projects.Latest(ctx, homeProjects); err != nil {
		return nil, err
	}
	if d.Publications, err = s.publications.Latest(ctx, homePublications); err != nil {
		return nil, err
	}
	if d.Posts, err = s.posts.ListPublished(ctx, homePosts); err != nil {
		return nil, err
	}
	if d.HeroImages, err = s.HeroImages(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}

// HeroImages 读取首页轮播图系统文章，没有该文章时返回空列表
func (s *Service) HeroImages(ctx context.Context) ([]string, error) {
	hero, err := s.posts.FindBySlug(ctx, model.HeroPostSlug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseHeroImages(hero.Content), nil
}

// MemberGroup 同一角色的成员
type MemberGroup struct {
	Role    model.MemberRole
	Label   string
	Members []model.Member
}

var roleLabels = map[model.MemberRole]string{
	model.RoleProfessor:  "Professor",
	model.RoleResearcher: "Researchers",
	model.RolePhD:        "Ph.D. Students",
	model.RoleMaster:     "Master's Students",
	model.RoleUndergrad:  "Undergraduate Students",
}

// MemberGroups 按角色枚举顺序分组，组内保持仓储层的排序，空组不返回
func (s *Service) MemberGroups(ctx context.Context) ([]MemberGroup, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, err
	}
	byRole := make(map[model.MemberRole][]model.Member, len(model.MemberRoles))
	for _, m := range members {
		byRole[m.Role] = append(byRole[m.Role], m)
	}
	groups := make([]MemberGroup, 0, len(model.MemberRoles))
	for _, role := range model.MemberRoles {
		if len(byRole[role]) == 0 {
			continue
		}
		groups = append(groups, MemberGroup{Role: role, Label: roleLabels[role], Members: byRole[role]})
	}
	return groups, nil
}

// Projects status 不是合法取值时不过滤
func (s *Service) Projects(ctx context.Context, status model.ProjectStatus) ([]model.Project, model.ProjectStatus, error) {
	if !status.Valid() {
		projects, err := s.projects.List(ctx, nil)
		return projects, "", err
	}
	projects, err := s.projects.List(ctx, &status)
	return projects, status, err
}

func (s *Service) Project(ctx context.Context, slug string) (*model.Project, []model.Publication, error) {
	p, err := s.projects.FindBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	pubs, err := s.publications.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}
	return p, pubs, nil
}

func (s *Service) Publications(ctx context.Context, year *int) ([]model.Publication, []int, error) {
	pubs, err := s.publications.List(ctx, year)
	if err != nil {
		return nil, nil, err
	}
	years, err := s.publications.Years(ctx)
	if err != nil {
		return nil, nil, err
	}
	return pubs, years, nil
}

func (s *Service) Posts(ctx context.Context) ([]model.Post, error) {
	return s.posts.ListPublished(ctx, 0)
}

func (s *Service) Post(ctx context.Context, slug string) (*model.Post, error) {
	return s.posts.FindPublishedBySlug(ctx, slug)
}

func (s *Service) Contact() config.Contact {
	return s.contact
}

const (
	legacyHeroURL  = "/static/images/hero.jpg"
	defaultHeroURL = "/static/images/hero/hero.jpg"
)

// ParseHeroImages 每行一个地址，规范化后丢弃空行和外部链接
func ParseHeroImages(content string) []string {
	var urls []string
	for _, line := range strings.Split(content, "\n") {
		if u, ok := normalizeHeroURL(line); ok {
			urls = append(urls, u)
		}
	}
	return urls
}

// normalizeHeroURL 轮播图只允许站内静态资源，统一为 /static/ 开头
func normalizeHeroURL(raw string) (string, bool) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", false
	}
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return "", false
	}
	switch {
	case u == legacyHeroURL:
		return defaultHeroURL, true
	case strings.HasPrefix(u, "/static/"):
		return u, true
	case strings.HasPrefix(u, "/"):
		return "/static" + u, true
	case strings.HasPrefix(u, "static/"):
		return "/" + u, true
	default:
		return "/static/" + u, true
	}
}
