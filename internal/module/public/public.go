package public

import (
	"errors"
	"net/http"
	"strconv"

	"lab-website/internal/global/render"
	"lab-website/internal/global/response"
	"lab-website/internal/model"
	"lab-website/internal/repository"

	"github.com/gin-gonic/gin"
)

// fail 仓储层的 ErrNotFound 渲染为 404，其余按数据库错误处理
func fail(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		response.Fail(c, response.ErrNotFound)
		return
	}
	response.Fail(c, response.ErrDatabase.WithOrigin(err))
}

func Home(c *gin.Context) {
	d, err := svc.Home(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	render.Page(c, http.StatusOK, "home.html", gin.H{
		"HeroImages":   d.HeroImages,
		"Projects":     d.Projects,
		"Publications": d.Publications,
		"Posts":        d.Posts,
	})
}

func Members(c *gin.Context) {
	groups, err := svc.MemberGroups(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	render.Page(c, http.StatusOK, "members.html", gin.H{
		"Title":  "Members",
		"Groups": groups,
	})
}

func Projects(c *gin.Context) {
	projects, status, err := svc.Projects(c.Request.Context(), model.ProjectStatus(c.Query("status")))
	if err != nil {
		fail(c, err)
		return
	}
	render.Page(c, http.StatusOK, "projects.html", gin.H{
		"Title":    "Projects",
		"Statuses": model.ProjectStatuses,
		"Status":   status,
		"Projects": projects,
	})
}

func ProjectDetail(c *gin.Context) {
	project, pubs, err := svc.Project(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	render.Page(c, http.StatusOK, "project_detail.html", gin.H{
		"Title":        project.DisplayTitle(render.Lang(c)),
		"Project":      project,
		"Publications": pubs,
	})
}

// Publications year 无法解析时忽略过滤条件
func Publications(c *gin.Context) {
	var year *int
	if raw := c.Query("year"); raw != "" {
		if y, err := strconv.Atoi(raw); err == nil {
			year = &y
		} else {
			log.Debug("忽略无法解析的年份", "year", raw)
		}
	}
	pubs, years, err := svc.Publications(c.Request.Context(), year)
	if err != nil {
		fail(c, err)
		return
	}
	selected := 0
	if year != nil {
		selected = *year
	}
	render.Page(c, http.StatusOK, "publications.html", gin.H{
		"Title":        "Publications",
		"Publications": pubs,
		"Years":        years,
		"Year":         selected,
	})
}

func Posts(c *gin.Context) {
	posts, err := svc.Posts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	render.Page(c, http.StatusOK, "posts.html", gin.H{
		"Title": "News",
		"Posts": posts,
	})
}

func PostDetail(c *gin.Context) {
	post, err := svc.Post(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	render.Page(c, http.StatusOK, "post_detail.html", gin.H{
		"Title": post.Title,
		"Post":  post,
	})
}

func Contact(c *gin.Context) {
	render.Page(c, http.StatusOK, "contact.html", gin.H{
		"Title":   "Contact",
		"Contact": svc.Contact(),
	})
}
