package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lab-website/internal/global/csrf"
	"lab-website/internal/global/jwt"
	"lab-website/internal/model"
	"lab-website/internal/repository"

	"github.com/google/uuid"
)

type Options struct {
	Secret     []byte
	TTL        time.Duration
	CookieName string
	Secure     bool // release 模式下为 true
}

// Manager 签发、校验与销毁会话。令牌只是会话行的签名引用，会话行才是权威
type Manager struct {
	store Store
	opts  Options
	log   *slog.Logger
	now   func() time.Time
}

func NewManager(store Store, opts Options, log *slog.Logger) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "lab_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 8 * time.Hour
	}
	return &Manager{
		store: store,
		opts:  opts,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (m *Manager) TTL() time.Duration {
	return m.opts.TTL
}

// Create 创建会话行并签发令牌，adminID 为 nil 时为访客会话
func (m *Manager) Create(ctx context.Context, adminID *uint) (*model.Session, string, error) {
	token, err := csrf.NewToken()
	if err != nil {
		return nil, "", err
	}
	now := m.now()
	sess := &model.Session{
		ID:          uuid.NewString(),
		AdminUserID: adminID,
		CSRFToken:   token,
		ExpiresAt:   now.Add(m.opts.TTL),
		CreatedAt:   now,
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, "", err
	}
	signed, err := jwt.CreateToken(m.opts.Secret, sess.ID, adminID, now, sess.ExpiresAt)
	if err != nil {
		return nil, "", err
	}
	return sess, signed, nil
}

// Validate 任何失败都视为未登录，不向上返回错误
func (m *Manager) Validate(ctx context.Context, token string) (*model.Session, bool) {
	if token == "" {
		return nil, false
	}
	claims, ok := jwt.ParseToken(m.opts.Secret, token)
	if !ok {
		return nil, false
	}
	adminID, ok := claims.AdminID()
	if !ok {
		return nil, false
	}
	sess, err := m.store.Find(ctx, claims.Id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			m.log.Warn("读取会话失败", "session_id", claims.Id, "error", err)
		}
		return nil, false
	}
	if sess.Expired(m.now()) {
		_ = m.store.Delete(ctx, sess.ID)
		return nil, false
	}
	if !sameAdmin(sess.AdminUserID, adminID) {
		m.log.Warn("会话与令牌中的管理员不一致", "session_id", sess.ID)
		return nil, false
	}
	return sess, true
}

// Destroy 删除令牌对应的会话行，之后即使签名仍有效也无法通过校验
func (m *Manager) Destroy(ctx context.Context, token string) error {
	claims, ok := jwt.ParseToken(m.opts.Secret, token)
	if !ok {
		return nil
	}
	return m.store.Delete(ctx, claims.Id)
}

// Cleanup 清理过期会话，由定时任务调用
func (m *Manager) Cleanup(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx, m.now())
}

func sameAdmin(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
