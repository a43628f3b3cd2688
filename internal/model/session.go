package model

import "time"

// Session 服务端会话记录，AdminUserID 为空表示访客会话（仅用于登录表单的 CSRF 令牌）
type Session struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	AdminUserID *uint     `gorm:"index" json:"admin_user_id"`
	CSRFToken   string    `gorm:"type:varchar(64);not null" json:"csrf_token"`
	ExpiresAt   time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Session) TableName() string {
	return "admin_session"
}

func (s *Session) Authenticated() bool {
	return s != nil && s.AdminUserID != nil
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
