// Package crud 后台实体增删改的通用请求处理：解析 -> 业务校验与写入 -> 跳转或回显表单
// 会话与 CSRF 校验在中间件中完成，这里只处理已通过校验的请求
package crud

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"lab-website/internal/global/logger"
	"lab-website/internal/global/response"

	"github.com/gin-gonic/gin"
)

// Service 业务规则检查与仓储写入
type Service[In any] interface {
	Create(ctx context.Context, in *In) (uint, error)
	Update(ctx context.Context, id uint, in *In) error
	Delete(ctx context.Context, id uint) error
}

// FormState 表单回显所需的数据
type FormState struct {
	Values  map[string]string
	Errors  map[string]string
	Message string
}

// Error 返回字段错误，模板中使用
func (f *FormState) Error(field string) string {
	if f == nil {
		return ""
	}
	return f.Errors[field]
}

// Value 返回字段值，模板中使用
func (f *FormState) Value(field string) string {
	if f == nil {
		return ""
	}
	return f.Values[field]
}

// Handler 某个实体的后台写操作处理器
type Handler[In any] struct {
	Name     string
	ListPath string

	ParseCreate func(c *gin.Context) (*In, error)
	ParseUpdate func(c *gin.Context) (*In, error)
	Service     Service[In]

	// RenderList 渲染列表页（含新建表单），form 为 nil 时为空表单
	RenderList func(c *gin.Context, status int, form *FormState)
	// RenderEdit 渲染编辑页，form 为 nil 时使用数据库中的值
	RenderEdit func(c *gin.Context, status int, id uint, form *FormState)

	Log *slog.Logger
}

func (h *Handler[In]) List(c *gin.Context) {
	h.RenderList(c, 200, nil)
}

func (h *Handler[In]) Edit(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		response.Fail(c, response.ErrNotFound)
		return
	}
	h.RenderEdit(c, 200, id, nil)
}

func (h *Handler[In]) Create(c *gin.Context) {
	in, err := h.ParseCreate(c)
	if err != nil {
		h.fail(c, err, func(status int, fs *FormState) { h.RenderList(c, status, fs) })
		return
	}
	id, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, func(status int, fs *FormState) { h.RenderList(c, status, fs) })
		return
	}
	logger.WithContext(h.Log, c).Info("创建成功", "entity", h.Name, "id", id)
	response.Redirect(c, h.ListPath)
}

func (h *Handler[In]) Update(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		response.Fail(c, response.ErrNotFound)
		return
	}
	in, err := h.ParseUpdate(c)
	if err != nil {
		h.fail(c, err, func(status int, fs *FormState) { h.RenderEdit(c, status, id, fs) })
		return
	}
	if err := h.Service.Update(c.Request.Context(), id, in); err != nil {
		h.fail(c, err, func(status int, fs *FormState) { h.RenderEdit(c, status, id, fs) })
		return
	}
	logger.WithContext(h.Log, c).Info("更新成功", "entity", h.Name, "id", id)
	response.Redirect(c, h.ListPath)
}

func (h *Handler[In]) Delete(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		response.Fail(c, response.ErrNotFound)
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, func(status int, fs *FormState) {
			fs.Values = nil
			h.RenderList(c, status, fs)
		})
		return
	}
	logger.WithContext(h.Log, c).Info("删除成功", "entity", h.Name, "id", id)
	response.Redirect(c, h.ListPath)
}

// fail 可恢复的错误回显表单，目标不存在返回 404 页，其余为 500
func (h *Handler[In]) fail(c *gin.Context, err error, rerender func(status int, fs *FormState)) {
	if errors.Is(err, response.ErrNotFound) || !response.Recoverable(err) {
		response.Fail(c, err)
		return
	}
	e := response.From(err)
	logger.WithContext(h.Log, c).Warn("表单校验未通过", "entity", h.Name, "code", e.Code, "fields", e.Fields)
	rerender(e.HTTPStatus(), &FormState{
		Values:  Values(c),
		Errors:  e.Fields,
		Message: e.Message,
	})
}

// ParseID 解析路径中的正整数 id
func ParseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Values 已提交表单的第一个值，用于回显
func Values(c *gin.Context) map[string]string {
	_ = c.PostForm("")
	out := make(map[string]string, len(c.Request.PostForm))
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
