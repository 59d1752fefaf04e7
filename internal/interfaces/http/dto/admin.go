package dto

import (
	"time"

	"shorts-script-api/internal/domain/entity"
)

// AddCredentialRequest 凭证录入请求
type AddCredentialRequest struct {
	Value string `json:"value" binding:"required,max=256"`
	Kind  string `json:"kind" binding:"max=32"`
}

// RemoveCredentialRequest 凭证移除请求
type RemoveCredentialRequest struct {
	Value string `json:"value" binding:"required,max=256"`
}

// CredentialResponse 凭证响应（值已脱敏）
type CredentialResponse struct {
	ID         string     `json:"id"`
	Value      string     `json:"value"`
	Kind       string     `json:"kind"`
	Active     bool       `json:"active"`
	UsageCount int64      `json:"usage_count"`
	LastUsed   *time.Time `json:"last_used,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToCredentialResponse 实体转响应，凭证值只暴露脱敏形式
func ToCredentialResponse(c *entity.Credential) *CredentialResponse {
	return &CredentialResponse{
		ID:         c.ID,
		Value:      c.Masked(),
		Kind:       string(c.Kind),
		Active:     c.Active,
		UsageCount: c.UsageCount,
		LastUsed:   c.LastUsed,
		CreatedAt:  c.CreatedAt,
	}
}

// ToCredentialResponses 实体列表转响应列表
func ToCredentialResponses(creds []*entity.Credential) []*CredentialResponse {
	out := make([]*CredentialResponse, 0, len(creds))
	for _, c := range creds {
		out = append(out, ToCredentialResponse(c))
	}
	return out
}

// AddExampleRequest 参考范例录入请求
type AddExampleRequest struct {
	Content string `json:"content" binding:"required"`
	AddedBy string `json:"added_by" binding:"required,max=64"`
}

// ExampleResponse 参考范例响应
type ExampleResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AddedBy   string    `json:"added_by"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToExampleResponse 实体转响应
func ToExampleResponse(e *entity.ReferenceExample) *ExampleResponse {
	return &ExampleResponse{
		ID:        e.ID,
		Content:   e.Content,
		AddedBy:   e.AddedBy,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
	}
}

// ToExampleResponses 实体列表转响应列表
func ToExampleResponses(examples []*entity.ReferenceExample) []*ExampleResponse {
	out := make([]*ExampleResponse, 0, len(examples))
	for _, e := range examples {
		out = append(out, ToExampleResponse(e))
	}
	return out
}
