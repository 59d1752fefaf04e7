// Package messaging 提供消息队列实现
package messaging

import (
	"context"

	"shorts-script-api/internal/domain/entity"
	"shorts-script-api/pkg/logger"
)

// ScriptCompletedNotifier 将完成的脚本发布到流，供素材预取 worker 消费
// 发布失败只记日志，不影响生成请求的结果
type ScriptCompletedNotifier struct {
	producer *Producer
}

// NewScriptCompletedNotifier 创建完成事件通知器
func NewScriptCompletedNotifier(producer *Producer) *ScriptCompletedNotifier {
	return &ScriptCompletedNotifier{producer: producer}
}

// ScriptCompleted 发布脚本完成事件
func (n *ScriptCompletedNotifier) ScriptCompleted(ctx context.Context, script *entity.GeneratedScript) {
	event := &ScriptCompletedMessage{
		ScriptID:  script.ID,
		UserID:    script.UserID,
		Topic:     script.Topic,
		Content:   script.Content,
		WordCount: script.WordCount,
	}
	if traceID, ok := ctx.Value(logger.TraceIDKey).(string); ok {
		event.TraceID = traceID
	}

	if _, err := n.producer.PublishScriptCompleted(ctx, event); err != nil {
		logger.Warn(ctx, "failed to publish script completed event",
			"script_id", script.ID,
			"error", err.Error(),
		)
	}
}
