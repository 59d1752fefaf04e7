// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"shorts-script-api/internal/domain/entity"
)

// ExampleRepository 参考范例仓储实现
type ExampleRepository struct {
	client *Client
}

// NewExampleRepository 创建参考范例仓储
func NewExampleRepository(client *Client) *ExampleRepository {
	return &ExampleRepository{client: client}
}

// Create 录入范例
func (r *ExampleRepository) Create(ctx context.Context, example *entity.ReferenceExample) error {
	ctx, span := tracer.Start(ctx, "postgres.ExampleRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(example).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create reference example: %w", err)
	}
	return nil
}

// ListActive 返回全部活跃范例，按创建时间升序
func (r *ExampleRepository) ListActive(ctx context.Context) ([]*entity.ReferenceExample, error) {
	ctx, span := tracer.Start(ctx, "postgres.ExampleRepository.ListActive")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var examples []*entity.ReferenceExample
	if err := db.Where("active = ?", true).
		Order("created_at ASC").
		Find(&examples).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list reference examples: %w", err)
	}
	return examples, nil
}

// ListRecent 返回最近添加的 limit 条活跃范例
// 先按时间倒序截取，再反转为时间正序，便于提示词按录入顺序拼接
func (r *ExampleRepository) ListRecent(ctx context.Context, limit int) ([]*entity.ReferenceExample, error) {
	ctx, span := tracer.Start(ctx, "postgres.ExampleRepository.ListRecent")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var examples []*entity.ReferenceExample
	if err := db.Where("active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&examples).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list recent examples: %w", err)
	}

	for i, j := 0, len(examples)-1; i < j; i, j = i+1, j-1 {
		examples[i], examples[j] = examples[j], examples[i]
	}
	return examples, nil
}
