package database

import (
	"fmt"
	"strings"
	"time"

	"lab-website/config"
	"lab-website/internal/global/sentry/tracing"
	"lab-website/internal/model"
	"lab-website/tools"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

func Init() {
	cfg := config.Get()
	db, err := Open(Dialector(cfg.Database), cfg.Mode)
	tools.PanicOnErr(err)

	if tracing.IsEnabled() {
		threshold := time.Duration(cfg.Sentry.Tracing.DBSlowThresholdMs) * time.Millisecond
		tools.PanicOnErr(db.Use(tracing.NewGormTracingPlugin(threshold)))
	}
	DB = db

	tools.PanicOnErr(Migrate(DB))
}

// Dialector 根据配置选择 mysql 或 sqlite 驱动
func Dialector(c config.Database) gorm.Dialector {
	switch strings.ToLower(c.Driver) {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.Username,
			c.Password,
			c.Host,
			c.Port,
			c.DBName,
		)
		return mysql.Open(dsn)
	default:
		return sqlite.Open(SQLiteDSN(c.Path))
	}
}

// SQLiteDSN 为 sqlite 打开外键约束，否则 ON DELETE SET NULL 不生效
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Open 打开数据库连接，时间统一使用 UTC，驱动错误翻译为 gorm 错误
func Open(dialector gorm.Dialector, mode config.Mode) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true}, // 还是单数表名好
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		TranslateError: true,
	}

	switch mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}

	return gorm.Open(dialector, gormConfig)
}

// Migrate 自动迁移全部模型
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}
