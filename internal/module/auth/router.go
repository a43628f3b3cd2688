package auth

import (
	"lab-website/internal/global/middleware"
	"lab-website/internal/global/session"

	"github.com/gin-gonic/gin"
)

// DashboardPath 登录成功后的落地页
const DashboardPath = "/admin"

// InitRouter 挂载登录、登出与后台首页
func (a *ModuleAuth) InitRouter(r *gin.RouterGroup) {
	register(r, manager)
}

func register(r gin.IRouter, m *session.Manager) {
	admin := r.Group(DashboardPath)

	admin.GET("/login", middleware.Session(m), middleware.NoStore(), LoginPage)
	admin.POST("/login", middleware.Session(m), middleware.NoStore(), middleware.CSRF(), Login)
	admin.POST("/logout", middleware.Session(m), middleware.NoStore(), middleware.CSRF(), Logout)
	admin.GET("", append(middleware.Admin(m), Dashboard)...)
}
