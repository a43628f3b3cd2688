package session

import (
	"context"
	"time"

	"lab-website/internal/model"
)

// Store 会话持久化，Find 在会话不存在时返回 repository.ErrNotFound
type Store interface {
	Save(ctx context.Context, s *model.Session) error
	Find(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
