// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"
)

// GeneratedScript 一次成功生成的脚本产物，写入后不再变更
type GeneratedScript struct {
	ID             string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         string    `json:"user_id" gorm:"type:varchar(64);index;not null"`
	Topic          string    `json:"topic" gorm:"type:varchar(256)"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	WordCount      int       `json:"word_count" gorm:"not null;default:0"`
	CredentialUsed string    `json:"credential_used" gorm:"type:varchar(256)"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (GeneratedScript) TableName() string {
	return "generated_scripts"
}

// CountWords 统计词数（按空白分词，中英混排按空格分隔的 token 计）
func CountWords(text string) int {
	return len(strings.Fields(text))
}
