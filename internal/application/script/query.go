package script

import (
	"context"

	"shorts-script-api/internal/domain/entity"
	"shorts-script-api/internal/domain/repository"
	apperrors "shorts-script-api/pkg/errors"
)

// QueryService 脚本与会话的读取服务
type QueryService struct {
	scripts  repository.ScriptRepository
	sessions repository.SessionRepository
}

// NewQueryService 创建读取服务
func NewQueryService(scripts repository.ScriptRepository, sessions repository.SessionRepository) *QueryService {
	return &QueryService{
		scripts:  scripts,
		sessions: sessions,
	}
}

// GetScript 按 ID 获取脚本
func (s *QueryService) GetScript(ctx context.Context, id string) (*entity.GeneratedScript, error) {
	script, err := s.scripts.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load script")
	}
	if script == nil {
		return nil, apperrors.ErrScriptNotFound
	}
	return script, nil
}

// ListScripts 分页列出用户的脚本
func (s *QueryService) ListScripts(ctx context.Context, userID string, pagination repository.Pagination) (*repository.PagedResult[*entity.GeneratedScript], error) {
	result, err := s.scripts.ListByUser(ctx, userID, pagination)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list scripts")
	}
	return result, nil
}

// GetSession 获取用户会话统计
func (s *QueryService) GetSession(ctx context.Context, userID string) (*entity.UserSession, error) {
	session, err := s.sessions.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load session")
	}
	if session == nil {
		return nil, apperrors.New(apperrors.CodeSessionNotFound, "session not found")
	}
	return session, nil
}
