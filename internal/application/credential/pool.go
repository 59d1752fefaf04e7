// Package credential 提供凭证池与凭证管理服务
package credential

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shorts-script-api/internal/domain/entity"
	"shorts-script-api/internal/domain/repository"
	apperrors "shorts-script-api/pkg/errors"
	"shorts-script-api/pkg/logger"
	"shorts-script-api/pkg/metrics"
)

var tracer = otel.Tracer("credential")

// Pool 凭证轮转池
//
// 每轮开始时按 usage_count 升序（同值按入库顺序）查询一次活跃列表作为快照，
// 游标在快照内逐个推进；走完一轮后重新查询。轮内不感知新增或删除，
// 不追求严格的 LRU 公平。Select 整体串行化在一把互斥锁后面，
// 避免并发请求读到同一快照位置而重复选取。
type Pool struct {
	repo     repository.CredentialRepository
	kind     entity.CredentialKind
	mu       sync.Mutex
	snapshot []*entity.Credential
	cursor   int
}

// NewPool 创建凭证池
func NewPool(repo repository.CredentialRepository, kind entity.CredentialKind) *Pool {
	return &Pool{
		repo: repo,
		kind: kind,
	}
}

// Select 选取下一个凭证并立即记账
// 记账先于交付：即使随后的上游调用失败，本次尝试也计入用量。
// 活跃集为空时返回 ErrNoCredentials。
func (p *Pool) Select(ctx context.Context) (*entity.Credential, error) {
	ctx, span := tracer.Start(ctx, "credential.Pool.Select",
		trace.WithAttributes(attribute.String("credential.kind", string(p.kind))))
	defer span.End()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cursor >= len(p.snapshot) {
		creds, err := p.repo.ListActive(ctx, p.kind)
		if err != nil {
			span.RecordError(err)
			metrics.CredentialSelectionsTotal.WithLabelValues(string(p.kind), "error").Inc()
			return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list active credentials")
		}
		if len(creds) == 0 {
			metrics.CredentialSelectionsTotal.WithLabelValues(string(p.kind), "empty").Inc()
			return nil, apperrors.ErrNoCredentials
		}
		p.snapshot = creds
		p.cursor = 0
	}

	cred := p.snapshot[p.cursor]
	p.cursor++

	if err := p.repo.IncrementUsage(ctx, cred.Value); err != nil {
		span.RecordError(err)
		metrics.CredentialSelectionsTotal.WithLabelValues(string(p.kind), "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to charge credential usage")
	}
	cred.UsageCount++

	metrics.CredentialSelectionsTotal.WithLabelValues(string(p.kind), "ok").Inc()
	span.SetAttributes(attribute.String("credential.masked", cred.Masked()))
	logger.Debug(ctx, "credential selected",
		"credential", cred.Masked(),
		"usage_count", cred.UsageCount,
	)
	return cred, nil
}

// ActiveCount 返回活跃凭证数，用于为失败切换设定重试上限
func (p *Pool) ActiveCount(ctx context.Context) (int, error) {
	count, err := p.repo.CountActive(ctx, p.kind)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to count active credentials")
	}
	return int(count), nil
}

// Kind 返回池管理的凭证提供方标签
func (p *Pool) Kind() entity.CredentialKind {
	return p.kind
}
