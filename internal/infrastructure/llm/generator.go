package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shorts-script-api/internal/config"
	"shorts-script-api/internal/domain/entity"
	apperrors "shorts-script-api/pkg/errors"
	"shorts-script-api/pkg/metrics"
)

var tracer = otel.Tracer("llm")

// Generator 调用上游模型生成完整脚本文本
type Generator struct {
	factory *Factory
	config  *config.GenerationConfig
}

// NewGenerator 创建上游生成器
func NewGenerator(factory *Factory, cfg *config.Config) *Generator {
	return &Generator{
		factory: factory,
		config:  &cfg.Generation,
	}
}

// Generate 用指定凭证发起一次生成调用，返回完整文本
// 错误分类：限流/配额类返回 CodeUpstreamTransient，超时返回 CodeUpstreamTimeout，
// 其余上游错误返回 CodeUpstreamFatal
func (g *Generator) Generate(ctx context.Context, cred *entity.Credential, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "llm.Generate",
		trace.WithAttributes(
			attribute.String("credential", cred.Masked()),
			attribute.String("model", g.config.Model),
		))
	defer span.End()

	chatModel, err := g.factory.Get(ctx, cred)
	if err != nil {
		span.RecordError(err)
		return "", apperrors.Wrap(err, apperrors.CodeUpstreamFatal, "failed to build upstream client")
	}

	callCtx, cancel := context.WithTimeout(ctx, g.config.UpstreamTimeout)
	defer cancel()

	start := time.Now()
	outMsg, err := chatModel.Generate(callCtx, []*schema.Message{
		schema.UserMessage(prompt),
	})
	metrics.UpstreamCallDuration.WithLabelValues(string(cred.Kind)).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		appErr := classifyUpstreamError(err)
		metrics.UpstreamCallTotal.WithLabelValues(string(cred.Kind), string(appErr.Code)).Inc()
		return "", appErr
	}

	content := strings.TrimSpace(outMsg.Content)
	if content == "" {
		metrics.UpstreamCallTotal.WithLabelValues(string(cred.Kind), string(apperrors.CodeEmptyResponse)).Inc()
		return "", apperrors.ErrEmptyResponse
	}

	metrics.UpstreamCallTotal.WithLabelValues(string(cred.Kind), "ok").Inc()
	span.SetAttributes(attribute.Int("response.length", len(content)))
	return content, nil
}

// transientMarkers 上游限流/配额类错误的文本特征
// Gemini 的 OpenAI 兼容端点可能返回 RESOURCE_EXHAUSTED 或裸 429
var transientMarkers = []string{"rate limit", "quota", "resource exhausted", "429"}

// classifyUpstreamError 按错误文本判别可重试与否
// 命中 transientMarkers 的视为瞬时错误，换凭证重试
func classifyUpstreamError(err error) *apperrors.AppError {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(err, apperrors.CodeUpstreamTimeout, "upstream generation call timed out")
	}

	// RESOURCE_EXHAUSTED 等 gRPC 状态名统一归一化为空格分隔
	msg := strings.ReplaceAll(strings.ToLower(err.Error()), "_", " ")
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return apperrors.Wrap(err, apperrors.CodeUpstreamTransient, "upstream rate limited")
		}
	}

	return apperrors.Wrap(err, apperrors.CodeUpstreamFatal, "upstream generation failed")
}
