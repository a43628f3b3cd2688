package scheduler

import (
	"context"
	"time"

	"lab-website/internal/global/logger"
)

// Cleaner 由 session.Manager 实现
type Cleaner interface {
	Cleanup(ctx context.Context) (int64, error)
}

// SessionCleanup 定期删除过期会话行
func SessionCleanup(c Cleaner, interval time.Duration) Job {
	log := logger.New("Scheduler")
	return Job{
		Name:     "session-cleanup",
		Interval: interval,
		Timeout:  time.Minute,
		Run: func(ctx context.Context) error {
			n, err := c.Cleanup(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				log.Info("清理过期会话", "count", n)
			}
			return nil
		},
	}
}
