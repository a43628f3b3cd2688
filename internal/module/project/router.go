package project

import (
	"lab-website/internal/global/crud"
	"lab-website/internal/global/middleware"
	"lab-website/internal/global/session"

	"github.com/gin-gonic/gin"
)

const listPath = "/admin/projects"

func (p *ModuleProject) InitRouter(r *gin.RouterGroup) {
	register(r.Group(listPath, middleware.Admin(session.Default())...), handler)
}

func register(g *gin.RouterGroup, h *crud.Handler[Input]) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id/edit", h.Edit)
	g.POST("/:id/update", h.Update)
	g.POST("/:id/delete", h.Delete)
}
