package dto

import (
	"shorts-script-api/internal/application/media"
	"shorts-script-api/internal/infrastructure/media/pexels"
)

// MediaResponse 脚本素材响应
type MediaResponse struct {
	ScriptID string           `json:"script_id"`
	Keywords []string         `json:"keywords"`
	Videos   []*VideoResponse `json:"videos"`
	Images   []*ImageResponse `json:"images"`
}

// VideoResponse 视频素材
type VideoResponse struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	FileURL  string `json:"file_url"`
	Image    string `json:"image"`
	Duration int    `json:"duration"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// ImageResponse 图片素材
type ImageResponse struct {
	ID           int64  `json:"id"`
	URL          string `json:"url"`
	Original     string `json:"original"`
	Portrait     string `json:"portrait"`
	Photographer string `json:"photographer"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

// ToMediaResponse 检索结果转响应
func ToMediaResponse(scriptID string, result *media.Result) *MediaResponse {
	resp := &MediaResponse{
		ScriptID: scriptID,
		Keywords: result.Keywords,
		Videos:   make([]*VideoResponse, 0, len(result.Videos)),
		Images:   make([]*ImageResponse, 0, len(result.Images)),
	}
	for _, v := range result.Videos {
		resp.Videos = append(resp.Videos, toVideoResponse(v))
	}
	for _, p := range result.Images {
		resp.Images = append(resp.Images, toImageResponse(p))
	}
	return resp
}

func toVideoResponse(v *pexels.Video) *VideoResponse {
	return &VideoResponse{
		ID:       v.ID,
		URL:      v.URL,
		FileURL:  v.FileURL,
		Image:    v.Image,
		Duration: v.Duration,
		Width:    v.Width,
		Height:   v.Height,
	}
}

func toImageResponse(p *pexels.Photo) *ImageResponse {
	return &ImageResponse{
		ID:           p.ID,
		URL:          p.URL,
		Original:     p.Original,
		Portrait:     p.Portrait,
		Photographer: p.Photographer,
		Width:        p.Width,
		Height:       p.Height,
	}
}
