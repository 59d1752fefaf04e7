package credential

import (
	"context"
	"strings"

	"shorts-script-api/internal/domain/entity"
	"shorts-script-api/internal/domain/repository"
	apperrors "shorts-script-api/pkg/errors"
	"shorts-script-api/pkg/logger"
)

// ClientEvictor 凭证移除后的客户端缓存回收钩子
type ClientEvictor interface {
	Evict(value string)
}

// Service 凭证管理服务（管理端接口使用）
type Service struct {
	repo    repository.CredentialRepository
	evictor ClientEvictor
}

// NewService 创建凭证管理服务
func NewService(repo repository.CredentialRepository, evictor ClientEvictor) *Service {
	return &Service{
		repo:    repo,
		evictor: evictor,
	}
}

// Add 添加新凭证
func (s *Service) Add(ctx context.Context, value string, kind entity.CredentialKind) (*entity.Credential, error) {
	ctx, span := tracer.Start(ctx, "credential.Service.Add")
	defer span.End()

	value = strings.TrimSpace(value)
	if !entity.ValidateCredentialValue(value, kind) {
		return nil, apperrors.New(apperrors.CodeCredentialInvalid, "credential value has invalid format")
	}

	cred := &entity.Credential{
		Value:  value,
		Kind:   kind,
		Active: true,
	}
	if err := s.repo.Create(ctx, cred); err != nil {
		span.RecordError(err)
		return nil, err
	}

	logger.Info(ctx, "credential added", "credential", cred.Masked(), "kind", kind)
	return cred, nil
}

// Remove 按 value 删除凭证并回收其客户端缓存
func (s *Service) Remove(ctx context.Context, value string) error {
	ctx, span := tracer.Start(ctx, "credential.Service.Remove")
	defer span.End()

	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(value))
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !deleted {
		return apperrors.New(apperrors.CodeNotFound, "credential not found")
	}

	if s.evictor != nil {
		s.evictor.Evict(value)
	}

	logger.Info(ctx, "credential removed")
	return nil
}

// List 返回指定 kind 的全部凭证
func (s *Service) List(ctx context.Context, kind entity.CredentialKind) ([]*entity.Credential, error) {
	return s.repo.List(ctx, kind)
}
