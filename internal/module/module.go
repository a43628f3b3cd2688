package module

import (
	"lab-website/internal/module/auth"
	"lab-website/internal/module/member"
	"lab-website/internal/module/ping"
	"lab-website/internal/module/post"
	"lab-website/internal/module/project"
	"lab-website/internal/module/public"
	"lab-website/internal/module/publication"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&ping.ModulePing{},
		&auth.ModuleAuth{},
		&member.ModuleMember{},
		&project.ModuleProject{},
		&publication.ModulePublication{},
		&post.ModulePost{},
		&public.ModulePublic{},
	})
}
