package public

import (
	"lab-website/internal/global/middleware"
	"lab-website/internal/global/session"

	"github.com/gin-gonic/gin"
)

func (m *ModulePublic) InitRouter(r *gin.RouterGroup) {
	register(r.Group("", middleware.Session(session.Default())))
}

func register(g *gin.RouterGroup) {
	g.GET("/", Home)
	g.GET("/members", Members)
	g.GET("/projects", Projects)
	g.GET("/projects/:slug", ProjectDetail)
	g.GET("/publications", Publications)
	g.GET("/posts", Posts)
	g.GET("/posts/:slug", PostDetail)
	g.GET("/contact", Contact)
}
