package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lab-website/config"
	"lab-website/internal/global/database"
	"lab-website/internal/global/logger"
	"lab-website/internal/global/middleware"
	internalOtel "lab-website/internal/global/otel"
	"lab-website/internal/global/render"
	"lab-website/internal/global/response"
	"lab-website/internal/global/scheduler"
	"lab-website/internal/global/sentry"
	"lab-website/internal/global/session"
	"lab-website/internal/module"
	"lab-website/internal/module/auth"
	"lab-website/internal/repository"
	"lab-website/tools"

	"github.com/gin-gonic/gin"
)

// StaticDir 样式表、默认轮播图与本地上传目录的根
const StaticDir = "static"

var log *slog.Logger

// Init 读取配置并初始化数据库、会话与各模块
func Init() {
	config.Init()
	log = logger.New("Server")
	cfg := config.Get()

	if err := sentry.Init(); err != nil {
		log.Error("Sentry 初始化失败", "error", err)
	}

	database.Init()
	session.Init(NewSessionManager(cfg))

	if cfg.OTel.Enable {
		log.Info("OTel Enabled")
		tools.PanicOnErr(internalOtel.Init())
	}

	tools.PanicOnErr(SeedAdmin(context.Background(), cfg.Admin))

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

// NewSessionManager 按配置选择 redis 或数据库作为会话存储
func NewSessionManager(cfg *config.Config) *session.Manager {
	var store session.Store
	switch strings.ToLower(cfg.Session.Store) {
	case "redis":
		tools.PanicOnErr(database.InitRedis())
		store = session.NewRedisStore(database.RDB)
	default:
		store = repository.NewSessionRepo(database.DB)
	}
	return session.NewManager(store, session.Options{
		Secret:     []byte(cfg.Secret),
		TTL:        cfg.Session.TTL,
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.IsRelease(),
	}, logger.New("Session"))
}

// CreateAdmin 创建管理员，用户名已存在时返回错误
func CreateAdmin(ctx context.Context, admin config.Admin) error {
	if err := auth.NewService(database.DB).CreateAdmin(ctx, admin.Username, admin.Password); err != nil {
		return err
	}
	logger.New("Server").Info("已创建管理员", "username", admin.Username)
	return nil
}

// SeedAdmin 确保初始管理员存在，已存在时不修改密码
func SeedAdmin(ctx context.Context, admin config.Admin) error {
	if admin.Username == "" || admin.Password == "" {
		logger.New("Server").Warn("未配置初始管理员，跳过创建")
		return nil
	}
	created, err := auth.NewService(database.DB).EnsureAdmin(ctx, admin.Username, admin.Password)
	if err != nil {
		return err
	}
	if created {
		logger.New("Server").Info("已创建初始管理员", "username", admin.Username)
	}
	return nil
}

// NewEngine 组装中间件、模板、静态文件与各模块路由
func NewEngine(cfg *config.Config) *gin.Engine {
	r := gin.New()

	switch cfg.Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(sentry.Middleware(), middleware.SentryEnrichIP())
	r.Use(middleware.Recovery())
	if cfg.OTel.Enable {
		r.Use(middleware.Trace())
	}

	tools.PanicOnErr(render.Load(r))
	r.Static("/static", StaticDir)
	// 上传目录不在 static 下时单独挂载
	if !strings.EqualFold(cfg.Storage.Driver, "s3") &&
		strings.HasPrefix(cfg.Storage.BaseURL, "/") &&
		!strings.HasPrefix(cfg.Storage.BaseURL, "/static/") {
		r.Static(cfg.Storage.BaseURL, cfg.Storage.Home)
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/"))
	}
	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, response.ErrNotFound)
	})
	return r
}

// Run 启动 HTTP 服务与定时任务，收到 SIGINT/SIGTERM 后优雅退出
func Run() {
	cfg := config.Get()
	gin.SetMode(string(cfg.Mode))
	r := NewEngine(cfg)

	jobs, err := scheduler.NewManager()
	tools.PanicOnErr(err)
	tools.PanicOnErr(jobs.Register(scheduler.SessionCleanup(session.Default(), cfg.Session.CleanupInterval)))
	jobs.Start()

	srv := &http.Server{
		Addr:              cfg.Host + ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("服务启动失败", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("关闭 HTTP 服务失败", "error", err)
	}
	jobs.Stop()
	if cfg.OTel.Enable {
		// 确保程序退出时关闭 TracerProvider
		if err := internalOtel.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown TracerProvider", "error", err)
		}
	}
	sentry.Flush(2 * time.Second)
}

// Migrate 只执行建表迁移
func Migrate() {
	config.Init()
	log = logger.New("Server")
	database.Init()
	log.Info("数据库迁移完成")
}
