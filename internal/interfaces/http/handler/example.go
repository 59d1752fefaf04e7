package handler

import (
	"github.com/gin-gonic/gin"

	"shorts-script-api/internal/application/example"
	"shorts-script-api/internal/interfaces/http/dto"
)

// ExampleHandler 参考范例管理处理器（管理端）
type ExampleHandler struct {
	service *example.Service
}

// NewExampleHandler 创建范例处理器
func NewExampleHandler(service *example.Service) *ExampleHandler {
	return &ExampleHandler{service: service}
}

// AddExample 录入参考范例
// @Summary 录入风格参考范例
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.AddExampleRequest true "范例"
// @Success 201 {object} dto.Response[dto.ExampleResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/admin/examples [post]
func (h *ExampleHandler) AddExample(c *gin.Context) {
	var req dto.AddExampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ex, err := h.service.Add(c.Request.Context(), req.Content, req.AddedBy)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Created(c, dto.ToExampleResponse(ex))
}

// ListExamples 列出参考范例
// @Summary 列出风格参考范例
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.Response[[]dto.ExampleResponse]
// @Router /v1/admin/examples [get]
func (h *ExampleHandler) ListExamples(c *gin.Context) {
	examples, err := h.service.List(c.Request.Context())
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.ToExampleResponses(examples))
}
