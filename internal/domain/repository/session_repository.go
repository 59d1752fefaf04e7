// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"shorts-script-api/internal/domain/entity"
)

// SessionRepository 用户会话仓储接口
type SessionRepository interface {
	// Upsert 覆盖写入用户会话（存在即整体替换并刷新 last_activity）
	Upsert(ctx context.Context, session *entity.UserSession) error
	// GetByUserID 按用户 ID 获取会话；不存在时返回 nil
	GetByUserID(ctx context.Context, userID string) (*entity.UserSession, error)
	// IncrementScriptCount 将用户的 script_count 原子 +1 并刷新 last_activity
	IncrementScriptCount(ctx context.Context, userID string) error
}
