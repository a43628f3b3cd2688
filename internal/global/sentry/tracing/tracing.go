// Package tracing 提供 Sentry 性能追踪的集成
// 包含 GORM 与 Redis 会话存储的追踪实现
package tracing

import (
	"context"

	"lab-website/config"

	"github.com/getsentry/sentry-go"
)

// IsEnabled 检查 Sentry 追踪是否已启用
func IsEnabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// StartSpan 在 context 中当前 span 下创建子 span，没有父 span 时返回 nil
// 调用方需判空后 Finish
func StartSpan(ctx context.Context, operation, description string) *sentry.Span {
	parent := sentry.SpanFromContext(ctx)
	if parent == nil {
		return nil
	}
	span := parent.StartChild(operation)
	span.Description = description
	return span
}

// Finish 结束 span 并记录错误状态，span 为 nil 时什么都不做
func Finish(span *sentry.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}
