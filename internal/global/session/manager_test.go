package session

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"lab-website/internal/global/jwt"
	"lab-website/internal/model"
	"lab-website/internal/repository"
	"lab-website/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) (*Manager, *repository.SessionRepo) {
	t.Helper()
	store := repository.NewSessionRepo(test.NewDB(t))
	m := NewManager(store, Options{Secret: []byte("secret"), TTL: time.Hour}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return m, store
}

func TestCreateAndValidate(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	adminID := uint(1)

	sess, token, err := m.Create(ctx, &adminID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, sess.CSRFToken)

	got, ok := m.Validate(ctx, token)
	require.True(t, ok)
	assert.Equal(t, sess.ID, got.ID)
	assert.True(t, got.Authenticated())
	assert.Equal(t, sess.CSRFToken, got.CSRFToken)
}

func TestGuestSession(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	_, token, err := m.Create(ctx, nil)
	require.NoError(t, err)

	got, ok := m.Validate(ctx, token)
	require.True(t, ok)
	assert.False(t, got.Authenticated())
}

func TestDestroyInvalidatesSignedToken(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	adminID := uint(1)

	_, token, err := m.Create(ctx, &adminID)
	require.NoError(t, err)
	require.NoError(t, m.Destroy(ctx, token))

	_, ok := m.Validate(ctx, token)
	assert.False(t, ok)
}

func TestValidateFailsClosed(t *testing.T) {
	m, store := newManager(t)
	ctx := context.Background()

	_, ok := m.Validate(ctx, "")
	assert.False(t, ok)

	_, ok = m.Validate(ctx, "garbage")
	assert.False(t, ok)

	// 签名正确但会话行不存在
	now := time.Now()
	orphan, err := jwt.CreateToken([]byte("secret"), "missing", nil, now, now.Add(time.Hour))
	require.NoError(t, err)
	_, ok = m.Validate(ctx, orphan)
	assert.False(t, ok)

	// 令牌中的管理员与会话行不一致
	adminID := uint(1)
	sess, _, err := m.Create(ctx, &adminID)
	require.NoError(t, err)
	other := uint(2)
	forged, err := jwt.CreateToken([]byte("secret"), sess.ID, &other, now, now.Add(time.Hour))
	require.NoError(t, err)
	_, ok = m.Validate(ctx, forged)
	assert.False(t, ok)

	// 会话行已过期
	expired := &model.Session{ID: "expired", CSRFToken: "x", ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, store.Save(ctx, expired))
	token, err := jwt.CreateToken([]byte("secret"), "expired", nil, now, now.Add(time.Hour))
	require.NoError(t, err)
	_, ok = m.Validate(ctx, token)
	assert.False(t, ok)
	_, err = store.Find(ctx, "expired")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCleanup(t *testing.T) {
	m, store := newManager(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Save(ctx, &model.Session{ID: "old", CSRFToken: "x", ExpiresAt: now.Add(-time.Minute), CreatedAt: now}))
	_, _, err := m.Create(ctx, nil)
	require.NoError(t, err)

	n, err := m.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCSRFTokenRotatesPerSession(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	a, _, err := m.Create(ctx, nil)
	require.NoError(t, err)
	b, _, err := m.Create(ctx, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.CSRFToken, b.CSRFToken)
	assert.NotEqual(t, a.ID, b.ID)
}
