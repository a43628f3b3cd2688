package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"lab-website/internal/global/response"
	"lab-website/internal/model"
)

const (
	// FormField 表单隐藏字段名
	FormField = "csrf_token"
	// HeaderName 也接受请求头提交
	HeaderName = "X-CSRF-Token"
)

// NewToken 生成 32 字节随机令牌，随会话一起创建并保存在服务端
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Token 返回会话绑定的令牌，无会话时为空
func Token(sess *model.Session) string {
	if sess == nil {
		return ""
	}
	return sess.CSRFToken
}

// Check 校验提交的令牌与会话令牌是否一致，令牌不随提交失效
func Check(sess *model.Session, submitted string) error {
	expected := Token(sess)
	if expected == "" || submitted == "" {
		return response.ErrCSRFRejected
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(submitted)) != 1 {
		return response.ErrCSRFRejected
	}
	return nil
}
