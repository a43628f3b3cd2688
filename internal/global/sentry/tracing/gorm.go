package tracing

import (
	"time"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
)

const (
	gormSpanKey    = "sentry:span"
	gormStartKey   = "sentry:start"
	callbackPrefix = "sentry_tracing"
)

// GormTracingPlugin 实现 GORM Plugin 接口，用于追踪仓储层的数据库操作
type GormTracingPlugin struct {
	// system 数据库类型，取自 dialector 名称（mysql、sqlite）
	system string
	// slowThreshold 慢查询阈值，设为 0 表示记录所有查询
	slowThreshold time.Duration
}

func NewGormTracingPlugin(slowThreshold time.Duration) *GormTracingPlugin {
	return &GormTracingPlugin{slowThreshold: slowThreshold}
}

func (p *GormTracingPlugin) Name() string {
	return "SentryTracingPlugin"
}

// Initialize 为每类操作注册前后回调
func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	p.system = db.Dialector.Name()

	cb := db.Callback()
	processors := []struct {
		name      string
		operation string
		register  func(before bool, name string, fn func(*gorm.DB)) error
	}{
		{"create", "db.sql.create", func(before bool, name string, fn func(*gorm.DB)) error {
			if before {
				return cb.Create().Before("gorm:create").Register(name, fn)
			}
			return cb.Create().After("gorm:create").Register(name, fn)
		}},
		{"query", "db.sql.query", func(before bool, name string, fn func(*gorm.DB)) error {
			if before {
				return cb.Query().Before("gorm:query").Register(name, fn)
			}
			return cb.Query().After("gorm:query").Register(name, fn)
		}},
		{"update", "db.sql.update", func(before bool, name string, fn func(*gorm.DB)) error {
			if before {
				return cb.Update().Before("gorm:update").Register(name, fn)
			}
			return cb.Update().After("gorm:update").Register(name, fn)
		}},
		{"delete", "db.sql.delete", func(before bool, name string, fn func(*gorm.DB)) error {
			if before {
				return cb.Delete().Before("gorm:delete").Register(name, fn)
			}
			return cb.Delete().After("gorm:delete").Register(name, fn)
		}},
		{"row", "db.sql.row", func(before bool, name string, fn func(*gorm.DB)) error {
			if before {
				return cb.Row().Before("gorm:row").Register(name, fn)
			}
			return cb.Row().After("gorm:row").Register(name, fn)
		}},
		{"raw", "db.sql.raw", func(before bool, name string, fn func(*gorm.DB)) error {
			if before {
				return cb.Raw().Before("gorm:raw").Register(name, fn)
			}
			return cb.Raw().After("gorm:raw").Register(name, fn)
		}},
	}

	for _, proc := range processors {
		if err := proc.register(true, callbackPrefix+":before_"+proc.name, p.before(proc.operation)); err != nil {
			return err
		}
		if err := proc.register(false, callbackPrefix+":after_"+proc.name, p.after); err != nil {
			return err
		}
	}
	return nil
}

func (p *GormTracingPlugin) before(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Statement == nil || db.Statement.Context == nil {
			return
		}
		db.InstanceSet(gormStartKey, time.Now())

		// 表名作为描述，不记录完整 SQL
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		span := StartSpan(db.Statement.Context, operation, table)
		if span == nil {
			return
		}
		span.SetData("db.system", p.system)
		db.InstanceSet(gormSpanKey, span)
		db.Statement.Context = span.Context()
	}
}

func (p *GormTracingPlugin) after(db *gorm.DB) {
	if db.Statement == nil {
		return
	}
	startVal, ok := db.InstanceGet(gormStartKey)
	if !ok {
		return
	}
	spanVal, ok := db.InstanceGet(gormSpanKey)
	if !ok {
		return
	}
	span, ok := spanVal.(*sentry.Span)
	if !ok || span == nil {
		return
	}

	if start, ok := startVal.(time.Time); ok && p.slowThreshold > 0 && time.Since(start) < p.slowThreshold {
		span.Sampled = sentry.SampledFalse
	}
	span.SetData("db.rows_affected", db.RowsAffected)
	Finish(span, db.Error)
}
