// Package handler 提供 HTTP 请求处理器
package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"shorts-script-api/internal/application/script"
	"shorts-script-api/internal/domain/repository"
	"shorts-script-api/internal/interfaces/http/dto"
	"shorts-script-api/pkg/logger"
)

// ScriptHandler 脚本生成与查询处理器
type ScriptHandler struct {
	pipeline *script.Pipeline
	query    *script.QueryService
}

// NewScriptHandler 创建脚本处理器
func NewScriptHandler(pipeline *script.Pipeline, query *script.QueryService) *ScriptHandler {
	return &ScriptHandler{
		pipeline: pipeline,
		query:    query,
	}
}

// Generate 生成脚本并以 SSE 逐句推送
// @Summary 生成科普短视频脚本
// @Description 触发一次生成，按 metadata → sentence* → complete/error 的顺序推送事件
// @Tags Scripts
// @Accept json
// @Produce text/event-stream
// @Param request body dto.GenerateScriptRequest true "生成请求"
// @Success 200 "SSE stream"
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/scripts/generate [post]
func (h *ScriptHandler) Generate(c *gin.Context) {
	var req dto.GenerateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, req.UserID)
	c.Request = c.Request.WithContext(ctx)

	// SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	events := h.pipeline.Run(ctx, &script.GenerateRequest{
		UserID:   req.UserID,
		Username: req.Username,
		Topic:    req.Topic,
	})

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			switch ev.Type {
			case script.EventMetadata:
				c.SSEvent(string(ev.Type), ev.Metadata)
			case script.EventUnit:
				c.SSEvent(string(ev.Type), ev.Unit)
			case script.EventComplete:
				c.SSEvent(string(ev.Type), ev.Complete)
				return false
			case script.EventError:
				c.SSEvent(string(ev.Type), ev.Error)
				return false
			}
			return true

		case <-c.Request.Context().Done():
			// 客户端断开
			return false
		}
	})
}

// GetScript 按 ID 获取脚本
// @Summary 获取脚本
// @Tags Scripts
// @Produce json
// @Param sid path string true "脚本 ID"
// @Success 200 {object} dto.Response[dto.ScriptResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/scripts/{sid} [get]
func (h *ScriptHandler) GetScript(c *gin.Context) {
	scriptID := c.Param("sid")

	s, err := h.query.GetScript(c.Request.Context(), scriptID)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.ToScriptResponse(s))
}

// ListScripts 分页列出用户的脚本
// @Summary 列出用户脚本
// @Tags Scripts
// @Produce json
// @Param user_id query string true "用户 ID"
// @Param page query int false "页码"
// @Param page_size query int false "每页条数"
// @Success 200 {object} dto.Response[[]dto.ScriptResponse]
// @Router /v1/scripts [get]
func (h *ScriptHandler) ListScripts(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		dto.BadRequest(c, "user_id is required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	pagination := repository.NewPagination(page, pageSize)

	result, err := h.query.ListScripts(c.Request.Context(), userID, pagination)
	if err != nil {
		dto.AppError(c, err)
		return
	}

	dto.SuccessWithPage(c, dto.ToScriptResponses(result.Items),
		dto.NewPageMeta(result.Page, result.PageSize, result.Total))
}
