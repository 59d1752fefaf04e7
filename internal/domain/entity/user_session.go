// Package entity 定义领域实体
package entity

import "time"

// UserSession 用户会话计数器
// 每次交互按 upsert 语义整体覆盖；script_count 每次成功生成 +1
type UserSession struct {
	UserID       string    `json:"user_id" gorm:"type:varchar(64);primaryKey"`
	Username     string    `json:"username,omitempty" gorm:"type:varchar(128)"`
	ScriptCount  int64     `json:"script_count" gorm:"not null;default:0"`
	LastActivity time.Time `json:"last_activity" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}

// NewUserSession 创建新的用户会话
func NewUserSession(userID, username string) *UserSession {
	return &UserSession{
		UserID:       userID,
		Username:     username,
		LastActivity: time.Now(),
	}
}
