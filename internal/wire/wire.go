//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"shorts-script-api/internal/application/credential"
	"shorts-script-api/internal/application/example"
	"shorts-script-api/internal/application/media"
	"shorts-script-api/internal/application/script"
	"shorts-script-api/internal/config"
	"shorts-script-api/internal/domain/entity"
	"shorts-script-api/internal/domain/repository"
	"shorts-script-api/internal/infrastructure/llm"
	"shorts-script-api/internal/infrastructure/media/pexels"
	"shorts-script-api/internal/infrastructure/messaging"
	"shorts-script-api/internal/infrastructure/persistence/postgres"
	"shorts-script-api/internal/infrastructure/persistence/redis"
	"shorts-script-api/internal/interfaces/http/handler"
	"shorts-script-api/internal/interfaces/http/middleware"
	"shorts-script-api/internal/interfaces/http/router"
)

// Worker 媒体预取 worker 依赖容器
type Worker struct {
	Consumer *messaging.Consumer
	Media    *media.Service
}

// InitializeApp 初始化 HTTP 服务（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		MessagingSet,
		GenerationSet,
		MediaSet,
		RouterSet,
	)
	return nil, nil, nil
}

// InitializeWorker 初始化媒体预取 worker
func InitializeWorker(ctx context.Context, cfg *config.Config) (*Worker, func(), error) {
	wire.Build(
		ProvidePostgresClient,
		postgres.NewScriptRepository,
		wire.Bind(new(repository.ScriptRepository), new(*postgres.ScriptRepository)),
		ProvideRedisClient,
		redis.NewCache,
		MediaSet,
		ProvideConsumer,
		wire.Struct(new(Worker), "*"),
	)
	return nil, nil, nil
}

// RepoSet PostgreSQL 提供者集合（含接口绑定）
var RepoSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewCredentialRepository,
	postgres.NewScriptRepository,
	postgres.NewSessionRepository,
	postgres.NewExampleRepository,
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.CredentialRepository), new(*postgres.CredentialRepository)),
	wire.Bind(new(repository.ScriptRepository), new(*postgres.ScriptRepository)),
	wire.Bind(new(repository.SessionRepository), new(*postgres.SessionRepository)),
	wire.Bind(new(repository.ExampleRepository), new(*postgres.ExampleRepository)),
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewRateLimiter,
	wire.Bind(new(middleware.RateLimiter), new(*redis.RateLimiter)),
)

// MessagingSet 消息队列提供者集合
var MessagingSet = wire.NewSet(
	ProvideMessagingProducer,
	messaging.NewScriptCompletedNotifier,
	wire.Bind(new(script.Notifier), new(*messaging.ScriptCompletedNotifier)),
)

// GenerationSet 脚本生成提供者集合
var GenerationSet = wire.NewSet(
	ProvideGenerationConfig,
	llm.NewFactory,
	llm.NewGenerator,
	wire.Bind(new(script.Upstream), new(*llm.Generator)),
	wire.Bind(new(credential.ClientEvictor), new(*llm.Factory)),
	ProvideCredentialPool,
	credential.NewService,
	script.NewPromptBuilder,
	script.NewSink,
	script.NewPipeline,
	script.NewQueryService,
	example.NewService,
)

// MediaSet 素材检索提供者集合
var MediaSet = wire.NewSet(
	ProvidePexelsConfig,
	pexels.NewClient,
	media.NewFinder,
	ProvideMediaService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewScriptHandler,
	handler.NewSessionHandler,
	handler.NewMediaHandler,
	ProvideCredentialHandler,
	handler.NewExampleHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideMessagingProducer 提供消息生产者
func ProvideMessagingProducer(redisClient *redis.Client, cfg *config.Config) *messaging.Producer {
	return messaging.NewProducer(redisClient.Redis(), int64(cfg.Messaging.RedisStream.MaxLen))
}

// ProvideConsumer 提供脚本完成事件消费者
func ProvideConsumer(redisClient *redis.Client, cfg *config.Config) *messaging.Consumer {
	return messaging.NewConsumer(redisClient.Redis(), messaging.ConsumerConfig{
		Stream:        messaging.StreamScriptCompleted,
		Group:         messaging.ConsumerGroupMediaPrefetch,
		ConsumerName:  cfg.Messaging.RedisStream.ConsumerName,
		BlockTimeout:  cfg.Messaging.RedisStream.BlockTimeout,
		ClaimInterval: cfg.Messaging.RedisStream.ClaimInterval,
		RetryLimit:    cfg.Messaging.RedisStream.RetryLimit,
	})
}

// ProvideGenerationConfig 提供生成配置
func ProvideGenerationConfig(cfg *config.Config) *config.GenerationConfig {
	return &cfg.Generation
}

// ProvidePexelsConfig 提供 Pexels 配置
func ProvidePexelsConfig(cfg *config.Config) *config.PexelsConfig {
	return &cfg.Media.Pexels
}

// ProvideCredentialPool 提供凭证池
func ProvideCredentialPool(repo repository.CredentialRepository, cfg *config.Config) *credential.Pool {
	kind := entity.CredentialKind(cfg.Generation.ProviderKind)
	if kind == "" {
		kind = entity.CredentialKindGemini
	}
	return credential.NewPool(repo, kind)
}

// ProvideMediaService 提供素材查询服务
func ProvideMediaService(finder *media.Finder, cache *redis.Cache, scripts repository.ScriptRepository, cfg *config.Config) *media.Service {
	return media.NewService(finder, cache, scripts, cfg.Media.Pexels.CacheTTL)
}

// ProvideCredentialHandler 提供凭证处理器
func ProvideCredentialHandler(service *credential.Service, cfg *config.Config) *handler.CredentialHandler {
	kind := entity.CredentialKind(cfg.Generation.ProviderKind)
	if kind == "" {
		kind = entity.CredentialKindGemini
	}
	return handler.NewCredentialHandler(service, kind)
}
