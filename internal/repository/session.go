package repository

import (
	"context"
	"time"

	"lab-website/internal/model"

	"gorm.io/gorm"
)

// SessionRepo 数据库会话存储
type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Save(ctx context.Context, s *model.Session) error {
	return translate(r.db.WithContext(ctx).Create(s).Error, "save session")
}

func (r *SessionRepo) Find(ctx context.Context, id string) (*model.Session, error) {
	var s model.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate(err, "find session")
	}
	return &s, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Session{}).Error, "delete session")
}

// DeleteExpired 清理已过期的会话，返回删除条数
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.Session{})
	return result.RowsAffected, translate(result.Error, "delete expired sessions")
}
