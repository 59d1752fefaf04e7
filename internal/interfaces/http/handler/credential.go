package handler

import (
	"github.com/gin-gonic/gin"

	"shorts-script-api/internal/application/credential"
	"shorts-script-api/internal/domain/entity"
	"shorts-script-api/internal/interfaces/http/dto"
)

// CredentialHandler 凭证管理处理器（管理端）
type CredentialHandler struct {
	service     *credential.Service
	defaultKind entity.CredentialKind
}

// NewCredentialHandler 创建凭证处理器
func NewCredentialHandler(service *credential.Service, defaultKind entity.CredentialKind) *CredentialHandler {
	return &CredentialHandler{
		service:     service,
		defaultKind: defaultKind,
	}
}

// AddCredential 录入凭证
// @Summary 录入上游凭证
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.AddCredentialRequest true "凭证"
// @Success 201 {object} dto.Response[dto.CredentialResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/admin/credentials [post]
func (h *CredentialHandler) AddCredential(c *gin.Context) {
	var req dto.AddCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	kind := h.defaultKind
	if req.Kind != "" {
		kind = entity.CredentialKind(req.Kind)
	}

	cred, err := h.service.Add(c.Request.Context(), req.Value, kind)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Created(c, dto.ToCredentialResponse(cred))
}

// RemoveCredential 移除凭证
// @Summary 移除上游凭证
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.RemoveCredentialRequest true "凭证值"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/admin/credentials [delete]
func (h *CredentialHandler) RemoveCredential(c *gin.Context) {
	var req dto.RemoveCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.service.Remove(c.Request.Context(), req.Value); err != nil {
		dto.AppError(c, err)
		return
	}
	dto.NoContent(c)
}

// ListCredentials 列出凭证（脱敏）
// @Summary 列出上游凭证
// @Tags Admin
// @Produce json
// @Param kind query string false "凭证提供方"
// @Success 200 {object} dto.Response[[]dto.CredentialResponse]
// @Router /v1/admin/credentials [get]
func (h *CredentialHandler) ListCredentials(c *gin.Context) {
	kind := h.defaultKind
	if k := c.Query("kind"); k != "" {
		kind = entity.CredentialKind(k)
	}

	creds, err := h.service.List(c.Request.Context(), kind)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.ToCredentialResponses(creds))
}
