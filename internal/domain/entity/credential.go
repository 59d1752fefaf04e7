// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"
)

// CredentialKind 凭证提供方标签
type CredentialKind string

const (
	CredentialKindGemini CredentialKind = "gemini"
	CredentialKindPexels CredentialKind = "pexels"
)

// Credential 上游访问凭证
// 同一 kind 下 value 唯一；usage_count 单调递增，选中即记账
type Credential struct {
	ID         string         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Value      string         `json:"value" gorm:"type:varchar(256);uniqueIndex:idx_credentials_kind_value;not null"`
	Kind       CredentialKind `json:"kind" gorm:"type:varchar(32);uniqueIndex:idx_credentials_kind_value;not null;default:'gemini'"`
	Active     bool           `json:"active" gorm:"not null;default:true"`
	UsageCount int64          `json:"usage_count" gorm:"not null;default:0"`
	LastUsed   *time.Time     `json:"last_used,omitempty"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

func (Credential) TableName() string {
	return "credentials"
}

// Masked 返回脱敏后的凭证值，用于日志和响应
func (c *Credential) Masked() string {
	if len(c.Value) <= 10 {
		return c.Value
	}
	return c.Value[:10] + "..."
}

// ValidateCredentialValue 校验凭证格式
func ValidateCredentialValue(value string, kind CredentialKind) bool {
	value = strings.TrimSpace(value)
	switch kind {
	case CredentialKindGemini:
		return strings.HasPrefix(value, "AIza") && len(value) > 30
	case CredentialKindPexels:
		return len(value) >= 32
	default:
		return len(value) > 10
	}
}
