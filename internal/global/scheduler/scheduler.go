package scheduler

import (
	"context"
	"log/slog"
	"time"

	"lab-website/internal/global/logger"

	"github.com/go-co-op/gocron/v2"
)

// Job 周期任务，ctx 在单次执行超时或调度器关闭时取消
type Job struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	Run      func(ctx context.Context) error
}

// Manager 后台任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	log       *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewManager() (*Manager, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		scheduler: s,
		log:       logger.New("Scheduler"),
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Register 注册任务，上一次未结束时顺延本次执行
func (m *Manager) Register(job Job) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(job.Interval),
		gocron.NewTask(m.wrap(job)),
		gocron.WithName(job.Name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		m.log.Error("注册任务失败", "job", job.Name, "error", err)
		return err
	}
	m.log.Info("注册任务", "job", job.Name, "interval", job.Interval.String())
	return nil
}

func (m *Manager) wrap(job Job) func() {
	return func() {
		ctx := m.ctx
		if job.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, job.Timeout)
			defer cancel()
		}
		start := time.Now()
		if err := job.Run(ctx); err != nil {
			m.log.Error("任务执行失败", "job", job.Name, "error", err)
			return
		}
		m.log.Debug("任务执行完成", "job", job.Name, "latency", time.Since(start).String())
	}
}

func (m *Manager) Start() {
	m.scheduler.Start()
	m.log.Info("Scheduler started")
}

// Stop 取消正在执行的任务并等待其退出
func (m *Manager) Stop() {
	m.cancel()
	if err := m.scheduler.Shutdown(); err != nil {
		m.log.Error("关闭调度器失败", "error", err)
	}
	m.log.Info("Scheduler stopped")
}
