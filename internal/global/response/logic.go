package response

import (
	"errors"
	"fmt"
	"maps"

	pkgerrors "github.com/pkg/errors"
)

// ErrorContextKey 是用于在 gin.Context 中存储错误对象的键
const ErrorContextKey = "error"

// Error 自定义错误类型，支持错误码、消息、字段级错误、原始错误链和堆栈跟踪
// 错误码前三位即 HTTP 状态码，例如 40001 -> 400
type Error struct {
	Code    int32             `json:"code"`
	Message string            `json:"msg"`
	Origin  string            `json:"origin"`
	Fields  map[string]string `json:"fields,omitempty"`
	// cause 保存原始错误，用于 Unwrap() 方法和 Sentry 堆栈提取
	cause error
	// stack 保存堆栈信息，用于 Sentry 堆栈提取
	stack pkgerrors.StackTrace
}

func newError(code int32, msg string) *Error {
	return &Error{
		Code:    code,
		Message: msg,
	}
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("code:%d, msg:%s, fields:%v", e.Code, e.Message, e.Fields)
	}
	return fmt.Sprintf("code:%d, msg:%s", e.Code, e.Message)
}

// GetCode 返回错误码，实现 sentry.CodedError 接口
func (e *Error) GetCode() int32 {
	return e.Code
}

// HTTPStatus 由错误码推出 HTTP 状态码
func (e *Error) HTTPStatus() int {
	return int(e.Code / 100)
}

// Unwrap 返回原始错误，支持 errors.Unwrap() 和 Sentry 错误链提取
func (e *Error) Unwrap() error {
	return e.cause
}

// StackTrace 返回堆栈跟踪，支持 Sentry 堆栈提取
// 实现 pkg/errors 的 stackTracer 接口
func (e *Error) StackTrace() pkgerrors.StackTrace {
	if e.stack != nil {
		return e.stack
	}
	if e.cause != nil {
		type stackTracer interface {
			StackTrace() pkgerrors.StackTrace
		}
		if st, ok := e.cause.(stackTracer); ok {
			return st.StackTrace()
		}
	}
	return nil
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *Error) clone() *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Origin:  e.Origin,
		Fields:  maps.Clone(e.Fields),
		cause:   e.cause,
		stack:   e.stack,
	}
}

// WithOrigin 保留原始错误链，以便日志和 Sentry 能够提取堆栈信息
func (e *Error) WithOrigin(err error) *Error {
	if err == nil {
		return e
	}

	// 确保错误带有堆栈信息
	wrappedErr := ensureStack(err)

	newErr := e.clone()
	newErr.Origin = fmt.Sprintf("%+v", wrappedErr)
	newErr.cause = wrappedErr
	newErr.stack = nil

	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
	if st, ok := wrappedErr.(stackTracer); ok {
		newErr.stack = st.StackTrace()
	}

	return newErr
}

// WithField 附加一个字段级错误，表单重新渲染时显示在对应输入框旁
func (e *Error) WithField(field, msg string) *Error {
	newErr := e.clone()
	if newErr.Fields == nil {
		newErr.Fields = make(map[string]string)
	}
	if _, exists := newErr.Fields[field]; !exists {
		newErr.Fields[field] = msg
	}
	return newErr
}

// WithFields 批量附加字段级错误
func (e *Error) WithFields(fields map[string]string) *Error {
	newErr := e.clone()
	if newErr.Fields == nil {
		newErr.Fields = make(map[string]string, len(fields))
	}
	for k, v := range fields {
		if _, exists := newErr.Fields[k]; !exists {
			newErr.Fields[k] = v
		}
	}
	return newErr
}

// Recoverable 判断错误能否在请求边界内以表单提示的形式恢复
// 只有未预期的服务端错误会返回 false
func Recoverable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.HTTPStatus() < 500
}

// From 将任意错误转换为 *Error，非 *Error 视为服务端内部错误
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrServerInternal.WithOrigin(err)
}

// ensureStack 确保错误带有堆栈信息
func ensureStack(err error) error {
	if err == nil {
		return nil
	}
	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
	if _, ok := err.(stackTracer); ok {
		return err
	}
	return pkgerrors.WithStack(err)
}
