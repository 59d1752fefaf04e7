package dto

import (
	"time"

	"shorts-script-api/internal/domain/entity"
)

// GenerateScriptRequest 脚本生成请求
type GenerateScriptRequest struct {
	UserID   string `json:"user_id" binding:"required,max=64"`
	Username string `json:"username" binding:"max=128"`
	Topic    string `json:"topic" binding:"max=256"`
}

// ScriptResponse 脚本响应
type ScriptResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Topic          string    `json:"topic"`
	Content        string    `json:"content"`
	WordCount      int       `json:"word_count"`
	CredentialUsed string    `json:"credential_used"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToScriptResponse 实体转响应
func ToScriptResponse(s *entity.GeneratedScript) *ScriptResponse {
	return &ScriptResponse{
		ID:             s.ID,
		UserID:         s.UserID,
		Topic:          s.Topic,
		Content:        s.Content,
		WordCount:      s.WordCount,
		CredentialUsed: s.CredentialUsed,
		CreatedAt:      s.CreatedAt,
	}
}

// ToScriptResponses 实体列表转响应列表
func ToScriptResponses(scripts []*entity.GeneratedScript) []*ScriptResponse {
	out := make([]*ScriptResponse, 0, len(scripts))
	for _, s := range scripts {
		out = append(out, ToScriptResponse(s))
	}
	return out
}

// SessionResponse 用户会话响应
type SessionResponse struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username,omitempty"`
	ScriptCount  int64     `json:"script_count"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToSessionResponse 实体转响应
func ToSessionResponse(s *entity.UserSession) *SessionResponse {
	return &SessionResponse{
		UserID:       s.UserID,
		Username:     s.Username,
		ScriptCount:  s.ScriptCount,
		LastActivity: s.LastActivity,
		CreatedAt:    s.CreatedAt,
	}
}
