// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shorts-script-api/internal/domain/entity"
	"shorts-script-api/internal/domain/repository"
)

// ScriptRepository 生成脚本仓储实现
type ScriptRepository struct {
	client *Client
}

// NewScriptRepository 创建脚本仓储
func NewScriptRepository(client *Client) *ScriptRepository {
	return &ScriptRepository{client: client}
}

// Create 保存脚本
func (r *ScriptRepository) Create(ctx context.Context, script *entity.GeneratedScript) error {
	ctx, span := tracer.Start(ctx, "postgres.ScriptRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(script).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create script: %w", err)
	}
	return nil
}

// GetByID 按 ID 获取脚本
func (r *ScriptRepository) GetByID(ctx context.Context, id string) (*entity.GeneratedScript, error) {
	ctx, span := tracer.Start(ctx, "postgres.ScriptRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var script entity.GeneratedScript
	if err := db.First(&script, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get script: %w", err)
	}
	return &script, nil
}

// ListByUser 按用户分页列出脚本
func (r *ScriptRepository) ListByUser(ctx context.Context, userID string, pagination repository.Pagination) (*repository.PagedResult[*entity.GeneratedScript], error) {
	ctx, span := tracer.Start(ctx, "postgres.ScriptRepository.ListByUser")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.GeneratedScript{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count scripts: %w", err)
	}

	var scripts []*entity.GeneratedScript
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&scripts).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}

	return repository.NewPagedResult(scripts, total, pagination), nil
}
