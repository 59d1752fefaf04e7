// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"shorts-script-api/internal/domain/entity"
)

// CredentialRepository 凭证仓储接口
type CredentialRepository interface {
	// Create 添加凭证；同 kind 下 value 重复时返回冲突错误
	Create(ctx context.Context, cred *entity.Credential) error
	// Delete 按 value 物理删除凭证，返回是否删除了记录
	Delete(ctx context.Context, value string) (bool, error)
	// List 返回全部凭证（管理端展示用）
	List(ctx context.Context, kind entity.CredentialKind) ([]*entity.Credential, error)
	// ListActive 返回指定 kind 的活跃凭证，按 usage_count 升序、
	// 同值按创建顺序排列
	ListActive(ctx context.Context, kind entity.CredentialKind) ([]*entity.Credential, error)
	// CountActive 返回指定 kind 的活跃凭证数
	CountActive(ctx context.Context, kind entity.CredentialKind) (int64, error)
	// IncrementUsage 按 value 原子递增 usage_count 并刷新 last_used；
	// 在下一次 ListActive 读取前必须已落库
	IncrementUsage(ctx context.Context, value string) error
}
