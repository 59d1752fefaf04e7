// Package messaging 提供消息队列实现
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("messaging")

// Producer 消息生产者
type Producer struct {
	client *redis.Client
	maxLen int64
}

// NewProducer 创建消息生产者
func NewProducer(client *redis.Client, maxLen int64) *Producer {
	if maxLen <= 0 {
		maxLen = 100000
	}
	return &Producer{
		client: client,
		maxLen: maxLen,
	}
}

// Publish 发布消息到指定流
func (p *Producer) Publish(ctx context.Context, stream Stream, msg *Message) (string, error) {
	ctx, span := tracer.Start(ctx, "producer.Publish",
		trace.WithAttributes(
			attribute.String("stream", string(stream)),
			attribute.String("message.id", msg.ID),
			attribute.String("message.type", msg.Type),
		))
	defer span.End()

	data, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	result, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: string(stream),
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	span.SetAttributes(attribute.String("stream.message_id", result))
	return result, nil
}

// PublishScriptCompleted 发布脚本完成事件，供媒体预取 worker 消费
func (p *Producer) PublishScriptCompleted(ctx context.Context, event *ScriptCompletedMessage) (string, error) {
	msg, err := NewMessage(event.ScriptID, "script_completed", event.UserID, event.ScriptID, event)
	if err != nil {
		return "", err
	}

	if event.TraceID != "" {
		msg.SetMetadata("trace_id", event.TraceID)
	}

	return p.Publish(ctx, StreamScriptCompleted, msg)
}

// ScriptCompletedMessage 脚本完成事件
type ScriptCompletedMessage struct {
	ScriptID  string `json:"script_id"`
	UserID    string `json:"user_id"`
	Topic     string `json:"topic"`
	Content   string `json:"content"`
	WordCount int    `json:"word_count"`
	TraceID   string `json:"trace_id,omitempty"`
}
