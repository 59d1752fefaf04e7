// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "shorts-script-api/pkg/errors"

	"shorts-script-api/internal/domain/entity"
)

// CredentialRepository 凭证仓储实现
type CredentialRepository struct {
	client *Client
}

// NewCredentialRepository 创建凭证仓储
func NewCredentialRepository(client *Client) *CredentialRepository {
	return &CredentialRepository{client: client}
}

// Create 添加凭证
func (r *CredentialRepository) Create(ctx context.Context, cred *entity.Credential) error {
	ctx, span := tracer.Start(ctx, "postgres.CredentialRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(cred).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrCredentialExists
		}
		span.RecordError(err)
		return fmt.Errorf("failed to create credential: %w", err)
	}
	return nil
}

// Delete 按 value 物理删除凭证
func (r *CredentialRepository) Delete(ctx context.Context, value string) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.CredentialRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	result := db.Where("value = ?", value).Delete(&entity.Credential{})
	if result.Error != nil {
		span.RecordError(result.Error)
		return false, fmt.Errorf("failed to delete credential: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// List 返回指定 kind 的全部凭证
func (r *CredentialRepository) List(ctx context.Context, kind entity.CredentialKind) ([]*entity.Credential, error) {
	ctx, span := tracer.Start(ctx, "postgres.CredentialRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var creds []*entity.Credential
	if err := db.Where("kind = ?", kind).
		Order("created_at ASC").
		Find(&creds).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	return creds, nil
}

// ListActive 返回活跃凭证，usage_count 升序，同值按创建顺序
func (r *CredentialRepository) ListActive(ctx context.Context, kind entity.CredentialKind) ([]*entity.Credential, error) {
	ctx, span := tracer.Start(ctx, "postgres.CredentialRepository.ListActive")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var creds []*entity.Credential
	if err := db.Where("kind = ? AND active = ?", kind, true).
		Order("usage_count ASC, created_at ASC").
		Find(&creds).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list active credentials: %w", err)
	}
	return creds, nil
}

// CountActive 返回活跃凭证数
func (r *CredentialRepository) CountActive(ctx context.Context, kind entity.CredentialKind) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.CredentialRepository.CountActive")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var count int64
	if err := db.Model(&entity.Credential{}).
		Where("kind = ? AND active = ?", kind, true).
		Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count active credentials: %w", err)
	}
	return count, nil
}

// IncrementUsage 原子递增使用计数并刷新 last_used
func (r *CredentialRepository) IncrementUsage(ctx context.Context, value string) error {
	ctx, span := tracer.Start(ctx, "postgres.CredentialRepository.IncrementUsage")
	defer span.End()

	db := getDB(ctx, r.client.db)
	now := time.Now()
	if err := db.Model(&entity.Credential{}).
		Where("value = ?", value).
		Updates(map[string]interface{}{
			"usage_count": gorm.Expr("usage_count + 1"),
			"last_used":   now,
		}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to increment credential usage: %w", err)
	}
	return nil
}
