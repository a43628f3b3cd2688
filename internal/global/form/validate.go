package form

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Enum 封闭取值的类型实现该接口即可使用 enum 标签
type Enum interface {
	Valid() bool
}

var engineOnce sync.Once

// engine 返回 gin 绑定使用的校验器，首次调用时注册自定义标签，错误中的字段名取 form 标签
func engine() *validator.Validate {
	v := binding.Validator.Engine().(*validator.Validate)
	engineOnce.Do(func() {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if name := formName(f); name != "-" {
				return name
			}
			return f.Name
		})
		_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
			e, ok := fl.Field().Interface().(Enum)
			return ok && e.Valid()
		})
		_ = v.RegisterValidation("link", func(fl validator.FieldLevel) bool {
			return ValidLink(fl.Field().String())
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return ValidSlug(fl.Field().String())
		})
	})
	return v
}

// Struct 按 binding 标签校验已填充的结构体，错误写入 errs，已有错误的字段不覆盖
func Struct(v any, errs Errors) {
	engine()
	err := binding.Validator.ValidateStruct(v)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("_", err.Error())
		return
	}
	collect(verrs, errs)
}

func collect(verrs validator.ValidationErrors, errs Errors) {
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be %s or greater", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be %s or less", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "email":
		return "Must be a valid email address"
	case "enum":
		return "Unknown value"
	case "link":
		return "Must be an http(s) URL or a root-relative path"
	case "slug":
		return "Only letters, digits, hyphens and underscores are allowed"
	default:
		return "Invalid value"
	}
}

// ValidLink http(s) 绝对地址需带主机名，否则必须是以单个 / 开头的站内路径
func ValidLink(s string) bool {
	if s == "" {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "" {
		return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	}
	return strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//")
}

// ValidSlug slug 直接出现在 URL 路径中，只允许字母、数字、- 和 _
func ValidSlug(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
