package csrf

import (
	"testing"

	"lab-website/internal/global/response"
	"lab-website/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenUnique(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
}

func TestCheck(t *testing.T) {
	sess := &model.Session{ID: "s", CSRFToken: "expected-token"}

	assert.NoError(t, Check(sess, "expected-token"))
	// 同一令牌可重复提交
	assert.NoError(t, Check(sess, "expected-token"))

	assert.ErrorIs(t, Check(sess, "other"), response.ErrCSRFRejected)
	assert.ErrorIs(t, Check(sess, ""), response.ErrCSRFRejected)
	assert.ErrorIs(t, Check(nil, "expected-token"), response.ErrCSRFRejected)
	assert.ErrorIs(t, Check(&model.Session{}, ""), response.ErrCSRFRejected)
}

func TestToken(t *testing.T) {
	assert.Empty(t, Token(nil))
	assert.Equal(t, "abc", Token(&model.Session{CSRFToken: "abc"}))
}
