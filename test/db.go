package test

import (
	"fmt"
	"strings"
	"testing"

	"lab-website/config"
	"lab-website/internal/global/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB 为每个测试创建独立的内存 SQLite 库并完成迁移
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_", "&", "_").Replace(t.Name())
	dsn := database.SQLiteDSN(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))

	db, err := database.Open(sqlite.Open(dsn), config.ModeRelease)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库只存在于连接上，限制为单连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// Config 返回测试用配置并设为全局配置
func Config(t *testing.T) *config.Config {
	t.Helper()
	c := config.Default()
	c.Secret = "test-secret"
	c.Admin.Username = "admin"
	c.Admin.Password = "correct-horse"
	c.Storage.Home = t.TempDir()
	c.Contact.Email = "lab@example.com"
	c.Contact.Address = "Room 101"
	prev := config.Get()
	config.Set(c)
	t.Cleanup(func() { config.Set(prev) })
	return c
}
