package media

import (
	"context"
	"encoding/json"
	"time"

	"shorts-script-api/internal/domain/repository"
	"shorts-script-api/internal/infrastructure/persistence/redis"
	apperrors "shorts-script-api/pkg/errors"
	"shorts-script-api/pkg/logger"
)

// Service 脚本素材查询服务：缓存优先，未命中时实时检索并回填
type Service struct {
	finder  *Finder
	cache   *redis.Cache
	scripts repository.ScriptRepository
	ttl     time.Duration
}

// NewService 创建素材查询服务
func NewService(finder *Finder, cache *redis.Cache, scripts repository.ScriptRepository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		finder:  finder,
		cache:   cache,
		scripts: scripts,
		ttl:     ttl,
	}
}

// MediaForScript 返回脚本对应的素材，优先读取 worker 预取的缓存
func (s *Service) MediaForScript(ctx context.Context, scriptID string) (*Result, error) {
	ctx, span := tracer.Start(ctx, "media.Service.MediaForScript")
	defer span.End()

	script, err := s.scripts.GetByID(ctx, scriptID)
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load script")
	}
	if script == nil {
		return nil, apperrors.ErrScriptNotFound
	}

	key := redis.BuildMediaCacheKey(scriptID)
	data, err := s.cache.GetOrLoad(ctx, key, s.ttl, func() (interface{}, error) {
		return s.finder.FindForScript(ctx, script.Content)
	})
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeMediaSearchError, "failed to find media for script")
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to decode cached media result")
	}
	return &result, nil
}

// Prefetch 为完成的脚本预取素材并写入缓存（worker 调用）
func (s *Service) Prefetch(ctx context.Context, scriptID, content string) error {
	ctx, span := tracer.Start(ctx, "media.Service.Prefetch")
	defer span.End()

	result, err := s.finder.FindForScript(ctx, content)
	if err != nil {
		span.RecordError(err)
		return err
	}

	key := redis.BuildMediaCacheKey(scriptID)
	if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
		span.RecordError(err)
		return err
	}

	logger.Info(ctx, "media prefetched for script",
		"script_id", scriptID,
		"keywords", result.Keywords,
		"videos", len(result.Videos),
		"images", len(result.Images),
	)
	return nil
}
