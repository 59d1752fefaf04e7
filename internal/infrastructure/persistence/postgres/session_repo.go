// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shorts-script-api/internal/domain/entity"
)

// SessionRepository 用户会话仓储实现
type SessionRepository struct {
	client *Client
}

// NewSessionRepository 创建用户会话仓储
func NewSessionRepository(client *Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Upsert 覆盖写入会话，已存在时更新 username 与 last_activity
func (r *SessionRepository) Upsert(ctx context.Context, session *entity.UserSession) error {
	ctx, span := tracer.Start(ctx, "postgres.SessionRepository.Upsert")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "last_activity"}),
	}).Create(session).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}

// GetByUserID 按用户 ID 获取会话
func (r *SessionRepository) GetByUserID(ctx context.Context, userID string) (*entity.UserSession, error) {
	ctx, span := tracer.Start(ctx, "postgres.SessionRepository.GetByUserID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var session entity.UserSession
	if err := db.First(&session, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// IncrementScriptCount 原子递增脚本计数并刷新活跃时间
func (r *SessionRepository) IncrementScriptCount(ctx context.Context, userID string) error {
	ctx, span := tracer.Start(ctx, "postgres.SessionRepository.IncrementScriptCount")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.UserSession{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"script_count":  gorm.Expr("script_count + 1"),
			"last_activity": time.Now(),
		}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to increment script count: %w", err)
	}
	return nil
}
