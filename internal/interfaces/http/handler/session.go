package handler

import (
	"github.com/gin-gonic/gin"

	"shorts-script-api/internal/application/script"
	"shorts-script-api/internal/interfaces/http/dto"
)

// SessionHandler 用户会话查询处理器
type SessionHandler struct {
	query *script.QueryService
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(query *script.QueryService) *SessionHandler {
	return &SessionHandler{query: query}
}

// GetSession 获取用户会话统计
// @Summary 获取用户会话
// @Tags Sessions
// @Produce json
// @Param uid path string true "用户 ID"
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/sessions/{uid} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	userID := c.Param("uid")

	session, err := h.query.GetSession(c.Request.Context(), userID)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.ToSessionResponse(session))
}
