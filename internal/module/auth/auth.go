package auth

import (
	"net/http"

	"lab-website/internal/global/form"
	"lab-website/internal/global/logger"
	"lab-website/internal/global/middleware"
	"lab-website/internal/global/render"
	"lab-website/internal/global/response"
	"lab-website/internal/global/session"

	"github.com/gin-gonic/gin"
)

const loginPage = "admin_login.html"

// loginInput 登录表单，用户名去掉首尾空白，密码原样比较
type loginInput struct {
	Username string `form:"username" binding:"required,min=4,max=50"`
	Password string `form:"password" binding:"required,max=128"`
}

func parseLogin(c *gin.Context) (*loginInput, error) {
	in := &loginInput{}
	return in, form.Bind(c, in)
}

func renderLogin(c *gin.Context, status int, username string, fields map[string]string, message string) {
	if fields == nil {
		fields = map[string]string{}
	}
	render.Page(c, status, loginPage, gin.H{
		"Title":    "Login",
		"Username": username,
		"Fields":   fields,
		"Error":    message,
	})
}

// LoginPage 已登录时直接进入后台；没有会话时创建访客会话，使登录表单带上 CSRF 令牌
func LoginPage(c *gin.Context) {
	if session.IsAdmin(c) {
		response.Redirect(c, DashboardPath)
		return
	}
	if session.From(c) == nil {
		sess, token, err := manager.Create(c.Request.Context(), nil)
		if err != nil {
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		manager.SetCookie(c, token)
		session.Attach(c, sess)
	}
	renderLogin(c, http.StatusOK, "", nil, "")
}

// Login 校验凭据，成功后废弃旧会话并签发新的管理员会话
func Login(c *gin.Context) {
	ctx := c.Request.Context()
	in, err := parseLogin(c)
	if err != nil {
		e := response.From(err)
		renderLogin(c, e.HTTPStatus(), in.Username, e.Fields, e.Message)
		return
	}

	admin, err := svc.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		if !response.Recoverable(err) {
			response.Fail(c, err)
			return
		}
		logger.WithContext(log, c).Warn("登录失败", "username", in.Username)
		e := response.From(err)
		renderLogin(c, e.HTTPStatus(), in.Username, nil, e.Message)
		return
	}

	if token := manager.TokenFrom(c); token != "" {
		if err := manager.Destroy(ctx, token); err != nil {
			logger.WithContext(log, c).Warn("删除旧会话失败", "error", err)
		}
	}
	_, token, err := manager.Create(ctx, &admin.ID)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	manager.SetCookie(c, token)

	logger.WithContext(log, c).Info("管理员登录成功", "admin_id", admin.ID, "username", admin.Username)
	response.Redirect(c, DashboardPath)
}

// Logout 删除会话行，之后同一令牌不再有效
func Logout(c *gin.Context) {
	if token := manager.TokenFrom(c); token != "" {
		if err := manager.Destroy(c.Request.Context(), token); err != nil {
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
	}
	manager.ClearCookie(c)
	response.Redirect(c, middleware.LoginPath)
}

func Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	counts, err := svc.Counts(ctx)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	username := ""
	if id := session.From(c).AdminUserID; id != nil {
		if admin, err := svc.FindAdmin(ctx, *id); err == nil {
			username = admin.Username
		}
	}
	render.Page(c, http.StatusOK, "admin_dashboard.html", gin.H{
		"Title":    "Dashboard",
		"Counts":   counts,
		"Username": username,
	})
}
