// Package form 把后台表单绑定到输入结构体，并收集字段级错误
package form

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"time"

	"lab-website/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// DateLayout 日期输入框格式，与 time_format 标签一致
const DateLayout = "2006-01-02"

// rawFields 原样保留的字段
var rawFields = map[string]bool{"password": true}

// Option 绑定前对规整后的表单值做调整
type Option func(values map[string][]string)

// WithFallback 主字段留空时使用英文字段的值
func WithFallback(primary, en string) Option {
	return func(values map[string][]string) {
		if _, ok := values[primary]; ok {
			return
		}
		if vs, ok := values[en]; ok {
			values[primary] = append([]string(nil), vs...)
		}
	}
}

// Bind 去掉首尾空白并丢弃空值后交给 gin 绑定与校验。
// 空白字段等同于未提交：指针字段保持 nil，带 default 的字段取默认值
func Bind(c *gin.Context, in any, opts ...Option) error {
	engine()
	normalize(c, opts)

	err := c.ShouldBind(in)
	if err == nil {
		return nil
	}
	errs := Errors{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		collect(verrs, errs)
		return errs.Err()
	}

	// 类型转换失败时 gin 停在第一个出错的字段，这里逐个字段找出无法转换的值，
	// 其余字段重新绑定后继续校验，保证一次提交能看到全部错误
	rest := make(map[string][]string, len(c.Request.Form))
	for name, vs := range c.Request.Form {
		if convertible(in, name, vs) {
			rest[name] = vs
		} else {
			errs.Add(name, conversionMessage(in, name))
		}
	}
	if len(errs) == 0 {
		return response.ErrValidation.WithOrigin(err)
	}
	reflect.ValueOf(in).Elem().SetZero()
	if err := binding.MapFormWithTag(in, rest, "form"); err != nil {
		return response.ErrValidation.WithOrigin(err)
	}
	Struct(in, errs)
	return errs.Err()
}

// normalize 规整 Form、PostForm 与 multipart 的值，三者分别被不同的 binding 读取
func normalize(c *gin.Context, opts []Option) {
	_ = c.PostForm("")
	req := c.Request
	sources := []map[string][]string{req.Form, req.PostForm}
	if req.MultipartForm != nil {
		sources = append(sources, req.MultipartForm.Value)
	}
	for _, values := range sources {
		if values == nil {
			continue
		}
		clean(values)
		for _, opt := range opts {
			opt(values)
		}
	}
}

func clean(values map[string][]string) {
	for name, vs := range values {
		if rawFields[name] {
			continue
		}
		kept := make([]string, 0, len(vs))
		for _, v := range vs {
			if v = strings.TrimSpace(v); v != "" {
				kept = append(kept, v)
			}
		}
		if len(kept) == 0 {
			delete(values, name)
			continue
		}
		values[name] = kept
	}
}

// convertible 单独映射一个字段，判断它的值能否转换为目标类型
func convertible(in any, name string, vs []string) bool {
	trial := reflect.New(reflect.TypeOf(in).Elem()).Interface()
	return binding.MapFormWithTag(trial, url.Values{name: vs}, "form") == nil
}

func conversionMessage(in any, name string) string {
	f, ok := fieldByForm(reflect.TypeOf(in).Elem(), name)
	if !ok {
		return "Invalid value"
	}
	t := f.Type
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == reflect.TypeOf(time.Time{}) {
		return "Must be a date in YYYY-MM-DD format"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "Must be a whole number"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "Must be a positive whole number"
	case reflect.Bool:
		return "Must be true or false"
	default:
		return "Invalid value"
	}
}

func fieldByForm(t reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if formName(f) == name {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

func formName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
	if name == "" {
		return f.Name
	}
	return name
}

// AddField 在绑定结果上追加一个字段错误，err 不是校验错误时原样返回
func AddField(err error, field, msg string) error {
	if err == nil {
		return response.ErrValidation.WithField(field, msg)
	}
	var e *response.Error
	if errors.As(err, &e) && errors.Is(e, response.ErrValidation) {
		return e.WithField(field, msg)
	}
	return err
}

// Deref 回显可选字段，nil 为空串
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Errors 字段名到错误信息，同一字段只保留第一条
type Errors map[string]string

func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Err 没有错误时返回 nil
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return response.ErrValidation.WithFields(e)
}
