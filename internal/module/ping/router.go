package ping

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Version 构建时可通过 -ldflags 覆盖
var Version = "1.0.0"

func (p *ModulePing) InitRouter(r *gin.RouterGroup) {
	r.GET("/ping", Ping)
}

// Ping 存活检查，数据库不可达时返回 503
func Ping(c *gin.Context) {
	result := gin.H{
		"message":  "pong",
		"version":  Version,
		"database": "ok",
	}
	if err := pingDB(c.Request.Context()); err != nil {
		log.Warn("数据库不可达", "error", err)
		result["database"] = "unavailable"
		c.JSON(http.StatusServiceUnavailable, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func pingDB(ctx context.Context) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
