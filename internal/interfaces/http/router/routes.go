// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"

	"shorts-script-api/internal/config"
	"shorts-script-api/internal/interfaces/http/middleware"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, cfg *config.Config, limiter middleware.RateLimiter, h *Handlers) {
	rateLimit := middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:           cfg.Security.RateLimit.Enabled,
		RequestsPerMinute: cfg.Security.RateLimit.RequestsPerMinute,
	}, limiter)

	// 脚本生成与查询
	scripts := v1.Group("/scripts")
	{
		scripts.POST("/generate", rateLimit, h.Script.Generate) // SSE
		scripts.GET("", h.Script.ListScripts)
		scripts.GET("/:sid", h.Script.GetScript)
		scripts.GET("/:sid/media", h.Media.GetScriptMedia)
	}

	// 用户会话
	sessions := v1.Group("/sessions")
	{
		sessions.GET("/:uid", h.Session.GetSession)
	}

	// 管理端点
	admin := v1.Group("/admin", middleware.AdminAuth(cfg.Security.AdminTokens))
	{
		admin.POST("/credentials", h.Credential.AddCredential)
		admin.DELETE("/credentials", h.Credential.RemoveCredential)
		admin.GET("/credentials", h.Credential.ListCredentials)

		admin.POST("/examples", h.Example.AddExample)
		admin.GET("/examples", h.Example.ListExamples)
	}
}
