package jwt

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims 会话令牌载荷，Id 为服务端会话 ID，Subject 为管理员 ID（访客为空）
type Claims struct {
	jwt.StandardClaims
}

// AdminID 解析 Subject 中的管理员 ID，访客会话返回 nil
func (c *Claims) AdminID() (*uint, bool) {
	if c.Subject == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, false
	}
	v := uint(id)
	return &v, true
}

// CreateToken 使用 HS256 签发令牌
func CreateToken(secret []byte, sessionID string, adminID *uint, issuedAt, expiresAt time.Time) (string, error) {
	claims := Claims{jwt.StandardClaims{
		Id:        sessionID,
		IssuedAt:  issuedAt.Unix(),
		ExpiresAt: expiresAt.Unix(),
	}}
	if adminID != nil {
		claims.Subject = strconv.FormatUint(uint64(*adminID), 10)
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken 校验签名、算法与过期时间，任一失败都返回 false
func ParseToken(secret []byte, token string) (*Claims, bool) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid || claims.Id == "" {
		return nil, false
	}
	return claims, true
}
