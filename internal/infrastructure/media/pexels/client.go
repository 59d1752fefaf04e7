// Package pexels 提供 Pexels 素材库检索客户端
package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shorts-script-api/internal/config"
	apperrors "shorts-script-api/pkg/errors"
	"shorts-script-api/pkg/metrics"
)

var tracer = otel.Tracer("pexels")

// Client Pexels API 客户端
type Client struct {
	httpClient *http.Client
	config     *config.PexelsConfig
}

// NewClient 创建 Pexels 客户端
func NewClient(cfg *config.PexelsConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
	}
}

// Video 视频素材
type Video struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	Duration int    `json:"duration"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Image    string `json:"image"`
	FileURL  string `json:"file_url"`
}

// Photo 图片素材
type Photo struct {
	ID           int64  `json:"id"`
	URL          string `json:"url"`
	Photographer string `json:"photographer"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Original     string `json:"original"`
	Portrait     string `json:"portrait"`
}

type videoSearchResponse struct {
	Videos []struct {
		ID         int64  `json:"id"`
		URL        string `json:"url"`
		Duration   int    `json:"duration"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		Image      string `json:"image"`
		VideoFiles []struct {
			Link    string `json:"link"`
			Quality string `json:"quality"`
		} `json:"video_files"`
	} `json:"videos"`
}

type photoSearchResponse struct {
	Photos []struct {
		ID           int64  `json:"id"`
		URL          string `json:"url"`
		Photographer string `json:"photographer"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		Src          struct {
			Original string `json:"original"`
			Portrait string `json:"portrait"`
		} `json:"src"`
	} `json:"photos"`
}

// SearchVideos 按关键词检索竖屏视频
func (c *Client) SearchVideos(ctx context.Context, query string) ([]*Video, error) {
	ctx, span := tracer.Start(ctx, "pexels.SearchVideos",
		trace.WithAttributes(attribute.String("media.query", query)))
	defer span.End()

	start := time.Now()
	body, err := c.doSearch(ctx, c.config.VideoURL, query)
	metrics.MediaSearchDuration.WithLabelValues("video").Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		metrics.MediaSearchTotal.WithLabelValues("video", "error").Inc()
		return nil, err
	}

	var resp videoSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		span.RecordError(err)
		metrics.MediaSearchTotal.WithLabelValues("video", "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeMediaSearchError, "failed to decode video search response")
	}

	videos := make([]*Video, 0, len(resp.Videos))
	for _, v := range resp.Videos {
		video := &Video{
			ID:       v.ID,
			URL:      v.URL,
			Duration: v.Duration,
			Width:    v.Width,
			Height:   v.Height,
			Image:    v.Image,
		}
		// 优先选择 HD 文件
		for _, f := range v.VideoFiles {
			if f.Quality == "hd" {
				video.FileURL = f.Link
				break
			}
		}
		if video.FileURL == "" && len(v.VideoFiles) > 0 {
			video.FileURL = v.VideoFiles[0].Link
		}
		videos = append(videos, video)
	}

	metrics.MediaSearchTotal.WithLabelValues("video", "ok").Inc()
	span.SetAttributes(attribute.Int("media.result_count", len(videos)))
	return videos, nil
}

// SearchPhotos 按关键词检索竖屏图片
func (c *Client) SearchPhotos(ctx context.Context, query string) ([]*Photo, error) {
	ctx, span := tracer.Start(ctx, "pexels.SearchPhotos",
		trace.WithAttributes(attribute.String("media.query", query)))
	defer span.End()

	start := time.Now()
	body, err := c.doSearch(ctx, c.config.PhotoURL, query)
	metrics.MediaSearchDuration.WithLabelValues("photo").Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		metrics.MediaSearchTotal.WithLabelValues("photo", "error").Inc()
		return nil, err
	}

	var resp photoSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		span.RecordError(err)
		metrics.MediaSearchTotal.WithLabelValues("photo", "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeMediaSearchError, "failed to decode photo search response")
	}

	photos := make([]*Photo, 0, len(resp.Photos))
	for _, p := range resp.Photos {
		photos = append(photos, &Photo{
			ID:           p.ID,
			URL:          p.URL,
			Photographer: p.Photographer,
			Width:        p.Width,
			Height:       p.Height,
			Original:     p.Src.Original,
			Portrait:     p.Src.Portrait,
		})
	}

	metrics.MediaSearchTotal.WithLabelValues("photo", "ok").Inc()
	span.SetAttributes(attribute.Int("media.result_count", len(photos)))
	return photos, nil
}

// doSearch 发起检索请求，endpoint 为基础地址，统一拼接 /search 路径
func (c *Client) doSearch(ctx context.Context, endpoint, query string) ([]byte, error) {
	perPage := c.config.PerPage
	if perPage <= 0 {
		perPage = 5
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("orientation", "portrait")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeMediaSearchError, "failed to build search request")
	}
	req.Header.Set("Authorization", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeMediaSearchError, "media search request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.CodeMediaSearchError,
			fmt.Sprintf("media search returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeMediaSearchError, "failed to read search response")
	}
	return body, nil
}
