// Package llm 提供上游生成模型的客户端管理
package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"shorts-script-api/internal/config"
	"shorts-script-api/internal/domain/entity"
)

// Factory 按凭证缓存 Eino ChatModel 客户端实例
// 同一凭证复用同一客户端；凭证删除或失效后通过 Evict 释放
type Factory struct {
	config *config.GenerationConfig
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewFactory 创建 ChatModel 工厂
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		config: &cfg.Generation,
		models: make(map[string]model.BaseChatModel),
	}
}

// Get 获取指定凭证对应的 ChatModel，惰性创建
func (f *Factory) Get(ctx context.Context, cred *entity.Credential) (model.BaseChatModel, error) {
	if cred == nil || cred.Value == "" {
		return nil, fmt.Errorf("credential is empty")
	}

	f.mu.RLock()
	m, ok := f.models[cred.Value]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[cred.Value]; ok {
		return m, nil
	}

	maxTokens := f.config.MaxTokens
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      cred.Value,
		BaseURL:     f.config.BaseURL,
		Model:       f.config.Model,
		MaxTokens:   &maxTokens,
		Temperature: ptrFloat32(float32(f.config.Temperature)),
		Timeout:     f.config.UpstreamTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model for %s: %w", cred.Masked(), err)
	}

	f.models[cred.Value] = chatModel
	return chatModel, nil
}

// Evict 移除指定凭证的缓存客户端
func (f *Factory) Evict(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.models, value)
}

func ptrFloat32(f float32) *float32 {
	return &f
}
