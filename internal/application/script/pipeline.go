package script

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shorts-script-api/internal/application/credential"
	"shorts-script-api/internal/config"
	"shorts-script-api/internal/domain/entity"
	"shorts-script-api/internal/domain/repository"
	apperrors "shorts-script-api/pkg/errors"
	"shorts-script-api/pkg/logger"
	"shorts-script-api/pkg/metrics"
)

var tracer = otel.Tracer("script")

// defaultTopicLabel 未指定主题时的展示标签
const defaultTopicLabel = "Random Science Topic"

// Upstream 上游生成调用
type Upstream interface {
	Generate(ctx context.Context, cred *entity.Credential, prompt string) (string, error)
}

// Notifier 完成事件的下游通知（素材预取等），失败只记日志
type Notifier interface {
	ScriptCompleted(ctx context.Context, script *entity.GeneratedScript)
}

// GenerateRequest 一次生成请求
type GenerateRequest struct {
	UserID   string
	Username string
	Topic    string
}

// Pipeline 脚本生成流水线
//
// 状态推进：选取凭证 → 上游调用（瞬时错误换凭证重试，上限为请求开始时的
// 活跃凭证数）→ 分句 → 按序带间隔推送 → 落库 → 完成。
// 每次请求恰好产生一个 complete 或一个 error 终止事件；
// 调用方取消 ctx 时流直接停止，不再产生事件。
type Pipeline struct {
	pool     *credential.Pool
	builder  *PromptBuilder
	upstream Upstream
	sink     *Sink
	examples repository.ExampleRepository
	notifier Notifier

	unitDelay   time.Duration
	maxExamples int
}

// NewPipeline 创建生成流水线
func NewPipeline(
	pool *credential.Pool,
	builder *PromptBuilder,
	upstream Upstream,
	sink *Sink,
	examples repository.ExampleRepository,
	notifier Notifier,
	cfg *config.GenerationConfig,
) *Pipeline {
	unitDelay := cfg.UnitDelay
	if unitDelay <= 0 {
		unitDelay = 1500 * time.Millisecond
	}
	maxExamples := cfg.MaxExamples
	if maxExamples <= 0 {
		maxExamples = 5
	}
	return &Pipeline{
		pool:        pool,
		builder:     builder,
		upstream:    upstream,
		sink:        sink,
		examples:    examples,
		notifier:    notifier,
		unitDelay:   unitDelay,
		maxExamples: maxExamples,
	}
}

// Run 执行一次生成，返回事件通道；通道在请求结束后关闭
func (p *Pipeline) Run(ctx context.Context, req *GenerateRequest) <-chan Event {
	out := make(chan Event, 8)
	go p.run(ctx, req, out)
	return out
}

func (p *Pipeline) run(ctx context.Context, req *GenerateRequest, out chan<- Event) {
	defer close(out)

	ctx, span := tracer.Start(ctx, "script.Pipeline.Run",
		trace.WithAttributes(attribute.String("user_id", req.UserID)))
	defer span.End()

	start := time.Now()

	emit := func(ev Event) bool {
		select {
		case out <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	fail := func(appErr *apperrors.AppError) {
		span.RecordError(appErr)
		metrics.ScriptGenerationTotal.WithLabelValues("error").Inc()
		logger.Error(ctx, "script generation failed", appErr, "code", appErr.Code)
		emit(errorEvent(string(appErr.Code), appErr.Message))
	}

	// 参考范例加载失败不终止请求，降级为无范例提示词
	examples, err := p.examples.ListRecent(ctx, p.maxExamples)
	if err != nil {
		logger.Warn(ctx, "failed to load reference examples, continuing without", "error", err.Error())
		examples = nil
	}
	prompt := p.builder.Build(req.Topic, examples)

	text, cred, appErr := p.generateWithFailover(ctx, prompt)
	if appErr != nil {
		fail(appErr)
		return
	}

	units := SplitUnits(text)
	wordCount := entity.CountWords(text)
	topicLabel := strings.TrimSpace(req.Topic)
	if topicLabel == "" {
		topicLabel = defaultTopicLabel
	}

	span.SetAttributes(
		attribute.Int("script.word_count", wordCount),
		attribute.Int("script.unit_count", len(units)),
	)

	if !emit(metadataEvent(topicLabel, wordCount, len(units))) {
		return
	}

	for i, unit := range units {
		if !emit(unitEvent(unit, i, i == len(units)-1)) {
			return
		}
		if i < len(units)-1 {
			select {
			case <-time.After(p.unitDelay):
			case <-ctx.Done():
				return
			}
		}
	}

	// 文本已完整生成，落库不再受客户端断开影响
	persistCtx := context.WithoutCancel(ctx)
	warning := ""
	script, err := p.sink.Record(persistCtx, req.UserID, req.Username, topicLabel, text, cred.Masked())
	if err != nil {
		warning = "script was generated but could not be saved"
		logger.Error(ctx, "failed to persist generated script", err)
	}

	metrics.ScriptGenerationTotal.WithLabelValues("success").Inc()
	metrics.ScriptGenerationDuration.Observe(time.Since(start).Seconds())
	metrics.ScriptWordCount.Observe(float64(wordCount))

	scriptID := ""
	if script != nil {
		scriptID = script.ID
	}
	emit(completeEvent(scriptID, text, cred.Masked(), warning))

	if p.notifier != nil && script != nil {
		p.notifier.ScriptCompleted(persistCtx, script)
	}
}

// generateWithFailover 选取凭证并调用上游，瞬时错误换下一个凭证重试
// 重试上限取请求开始时的活跃凭证数；全部被限流时按无可用凭证处理
func (p *Pipeline) generateWithFailover(ctx context.Context, prompt string) (string, *entity.Credential, *apperrors.AppError) {
	attempts, err := p.pool.ActiveCount(ctx)
	if err != nil {
		return "", nil, apperrors.AsAppError(err)
	}
	if attempts == 0 {
		return "", nil, apperrors.ErrNoCredentials
	}

	var lastTransient *apperrors.AppError
	for attempt := 0; attempt < attempts; attempt++ {
		cred, err := p.pool.Select(ctx)
		if err != nil {
			return "", nil, apperrors.AsAppError(err)
		}

		text, err := p.upstream.Generate(ctx, cred, prompt)
		if err == nil {
			return text, cred, nil
		}

		appErr := apperrors.AsAppError(err)
		if appErr.Code == apperrors.CodeUpstreamTransient {
			lastTransient = appErr
			metrics.CredentialFailoversTotal.Inc()
			logger.Warn(ctx, "transient upstream error, failing over to next credential",
				"credential", cred.Masked(),
				"attempt", attempt+1,
				"max_attempts", attempts,
			)
			continue
		}
		return "", nil, appErr
	}

	// 所有凭证在本轮内均被限流，视作配额耗尽
	return "", nil, apperrors.Wrap(lastTransient, apperrors.CodeNoCredentials,
		"all credentials are currently rate limited")
}
