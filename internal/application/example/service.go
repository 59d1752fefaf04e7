// Package example 提供参考范例的录入与查询
package example

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"shorts-script-api/internal/domain/entity"
	"shorts-script-api/internal/domain/repository"
	apperrors "shorts-script-api/pkg/errors"
	"shorts-script-api/pkg/logger"
)

// Service 参考范例服务
type Service struct {
	repo repository.ExampleRepository
}

// NewService 创建范例服务
func NewService(repo repository.ExampleRepository) *Service {
	return &Service{repo: repo}
}

// Add 录入范例；内容不足最小长度时拒绝
func (s *Service) Add(ctx context.Context, content, addedBy string) (*entity.ReferenceExample, error) {
	content = strings.TrimSpace(content)
	if !entity.ValidateExampleContent(content) {
		return nil, apperrors.New(apperrors.CodeExampleTooShort, "example content is too short")
	}

	ex := &entity.ReferenceExample{
		ID:      uuid.New().String(),
		Content: content,
		AddedBy: addedBy,
		Active:  true,
	}
	if err := s.repo.Create(ctx, ex); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to store example")
	}

	logger.Info(ctx, "reference example added", "example_id", ex.ID, "added_by", addedBy)
	return ex, nil
}

// List 返回全部活跃范例
func (s *Service) List(ctx context.Context) ([]*entity.ReferenceExample, error) {
	examples, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list examples")
	}
	return examples, nil
}
