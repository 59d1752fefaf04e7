package handler

import (
	"github.com/gin-gonic/gin"

	"shorts-script-api/internal/application/media"
	"shorts-script-api/internal/interfaces/http/dto"
)

// MediaHandler 脚本素材查询处理器
type MediaHandler struct {
	media *media.Service
}

// NewMediaHandler 创建素材处理器
func NewMediaHandler(mediaService *media.Service) *MediaHandler {
	return &MediaHandler{media: mediaService}
}

// GetScriptMedia 获取脚本对应的素材
// @Summary 获取脚本素材
// @Description 返回脚本关键词对应的视频与图片素材，优先读取预取缓存
// @Tags Media
// @Produce json
// @Param sid path string true "脚本 ID"
// @Success 200 {object} dto.Response[dto.MediaResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/scripts/{sid}/media [get]
func (h *MediaHandler) GetScriptMedia(c *gin.Context) {
	scriptID := c.Param("sid")

	result, err := h.media.MediaForScript(c.Request.Context(), scriptID)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.ToMediaResponse(scriptID, result))
}
