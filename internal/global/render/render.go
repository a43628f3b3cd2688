// Package render 加载内嵌的 HTML 模板并为每个页面注入公共数据
package render

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"lab-website/internal/global/csrf"
	"lab-website/internal/global/form"
	"lab-website/internal/global/session"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// LangEnglish 通过 ?lang=en 切换英文字段
const LangEnglish = "en"

var funcs = template.FuncMap{
	"date": func(v any) string {
		switch t := v.(type) {
		case time.Time:
			if t.IsZero() {
				return ""
			}
			return t.Format(form.DateLayout)
		case *time.Time:
			if t == nil || t.IsZero() {
				return ""
			}
			return t.Format(form.DateLayout)
		}
		return ""
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"lines": func(s string) []string {
		return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	},
	"checked": func(v string) bool {
		switch strings.ToLower(v) {
		case "true", "on", "1", "yes":
			return true
		}
		return false
	},
}

// Templates 解析全部内嵌模板
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// Load 将模板挂到 gin 引擎
func Load(r *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	return nil
}

// Lang 当前请求的语言，默认为空串表示主语言
func Lang(c *gin.Context) string {
	if strings.EqualFold(c.Query("lang"), LangEnglish) {
		return LangEnglish
	}
	return ""
}

// Page 渲染页面，附加 CSRF 令牌、语言与登录状态
func Page(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CSRFToken"] = csrf.Token(session.From(c))
	data["Path"] = c.Request.URL.Path
	data["Lang"] = Lang(c)
	data["IsAdmin"] = session.IsAdmin(c)
	c.HTML(status, name, data)
}
