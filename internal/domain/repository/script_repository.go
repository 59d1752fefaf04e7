// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"shorts-script-api/internal/domain/entity"
)

// ScriptRepository 生成脚本仓储接口
type ScriptRepository interface {
	// Create 保存一次成功生成的脚本
	Create(ctx context.Context, script *entity.GeneratedScript) error
	// GetByID 按 ID 获取脚本；不存在时返回 nil
	GetByID(ctx context.Context, id string) (*entity.GeneratedScript, error)
	// ListByUser 按用户分页列出脚本，按创建时间倒序
	ListByUser(ctx context.Context, userID string, pagination Pagination) (*PagedResult[*entity.GeneratedScript], error)
}
