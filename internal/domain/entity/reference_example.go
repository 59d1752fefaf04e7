// Package entity 定义领域实体
package entity

import (
	"time"
	"unicode/utf8"
)

// MinExampleLength 参考范例的最小长度（按 rune 计）
const MinExampleLength = 50

// ReferenceExample 风格参考范例，用于 few-shot 提示
// 入库后只读；提示词构建时取最近添加的有限条
type ReferenceExample struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AddedBy   string    `json:"added_by" gorm:"type:varchar(64);not null"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (ReferenceExample) TableName() string {
	return "reference_examples"
}

// ValidateExampleContent 校验范例长度是否达标
func ValidateExampleContent(content string) bool {
	return utf8.RuneCountInString(content) >= MinExampleLength
}
