// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"shorts-script-api/internal/domain/entity"
)

// ExampleRepository 参考范例仓储接口（只增不改）
type ExampleRepository interface {
	// Create 录入范例；长度校验由调用方完成
	Create(ctx context.Context, example *entity.ReferenceExample) error
	// ListActive 返回全部活跃范例，按创建时间升序
	ListActive(ctx context.Context) ([]*entity.ReferenceExample, error)
	// ListRecent 返回最近添加的 limit 条活跃范例，按创建时间升序返回
	ListRecent(ctx context.Context, limit int) ([]*entity.ReferenceExample, error)
}
