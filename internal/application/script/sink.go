package script

import (
	"context"

	"github.com/google/uuid"

	"shorts-script-api/internal/domain/entity"
	"shorts-script-api/internal/domain/repository"
	apperrors "shorts-script-api/pkg/errors"
)

// Sink 脚本落库器
// 脚本记录与会话计数在同一事务内写入，任一失败则整体失败
type Sink struct {
	tx       repository.Transactor
	scripts  repository.ScriptRepository
	sessions repository.SessionRepository
}

// NewSink 创建落库器
func NewSink(tx repository.Transactor, scripts repository.ScriptRepository, sessions repository.SessionRepository) *Sink {
	return &Sink{
		tx:       tx,
		scripts:  scripts,
		sessions: sessions,
	}
}

// Record 持久化一次成功生成：写入脚本记录并递增用户会话计数
func (s *Sink) Record(ctx context.Context, userID, username, topic, content, credentialUsed string) (*entity.GeneratedScript, error) {
	script := &entity.GeneratedScript{
		ID:             uuid.New().String(),
		UserID:         userID,
		Topic:          topic,
		Content:        content,
		WordCount:      entity.CountWords(content),
		CredentialUsed: credentialUsed,
	}

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.sessions.Upsert(txCtx, entity.NewUserSession(userID, username)); err != nil {
			return err
		}
		if err := s.scripts.Create(txCtx, script); err != nil {
			return err
		}
		return s.sessions.IncrementScriptCount(txCtx, userID)
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodePersistenceError, "failed to record generated script")
	}

	return script, nil
}
