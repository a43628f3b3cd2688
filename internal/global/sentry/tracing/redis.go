package tracing

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
)

// RedisSentryHook 实现 redis.Hook 接口，用于追踪会话存储的 Redis 操作
type RedisSentryHook struct {
	// slowThreshold 慢操作阈值，仅记录执行时间超过此值的操作
	// 设为 0 表示记录所有操作
	slowThreshold time.Duration
}

// NewRedisSentryHook 创建 Redis Sentry 追踪 hook
func NewRedisSentryHook(slowThreshold time.Duration) *RedisSentryHook {
	return &RedisSentryHook{
		slowThreshold: slowThreshold,
	}
}

func (h *RedisSentryHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

// ProcessHook 追踪单个 Redis 命令
func (h *RedisSentryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		span := StartSpan(ctx, "db.redis", strings.ToUpper(cmd.Name()))
		if span != nil {
			span.SetData("db.system", "redis")
			span.SetData("db.operation", cmd.Name())
			ctx = span.Context()
		}

		err := next(ctx, cmd)
		if errors.Is(err, redis.Nil) {
			// 键不存在属于正常结果
			h.finish(span, start, nil)
		} else {
			h.finish(span, start, err)
		}
		return err
	}
}

// ProcessPipelineHook 追踪 Pipeline 操作
func (h *RedisSentryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		span := StartSpan(ctx, "db.redis.pipeline", pipelineDescription(cmds))
		if span != nil {
			span.SetData("db.system", "redis")
			span.SetData("redis.pipeline_length", len(cmds))
			ctx = span.Context()
		}

		err := next(ctx, cmds)
		h.finish(span, start, err)
		return err
	}
}

func (h *RedisSentryHook) finish(span *sentry.Span, start time.Time, err error) {
	if span == nil {
		return
	}
	if h.slowThreshold > 0 && time.Since(start) < h.slowThreshold {
		// 未超过阈值，不发送此 span
		span.Sampled = sentry.SampledFalse
	}
	Finish(span, err)
}

// pipelineDescription 只列出前三个命令名，避免描述过长
func pipelineDescription(cmds []redis.Cmder) string {
	const maxShow = 3
	if len(cmds) == 0 {
		return "PIPELINE (empty)"
	}
	names := make([]string, 0, maxShow)
	for i, cmd := range cmds {
		if i >= maxShow {
			break
		}
		names = append(names, strings.ToUpper(cmd.Name()))
	}
	desc := "PIPELINE: " + strings.Join(names, ", ")
	if len(cmds) > maxShow {
		desc += "..."
	}
	return desc
}
