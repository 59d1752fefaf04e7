package pexels

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shorts-script-api/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client := NewClient(&config.PexelsConfig{
		APIKey:   "test-key",
		PhotoURL: ts.URL + "/v1",
		VideoURL: ts.URL + "/videos",
		PerPage:  3,
		Timeout:  5 * time.Second,
	})
	return client, ts
}

func TestSearchPhotosHitsSearchEndpoint(t *testing.T) {
	var gotPath, gotAuth, gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"photos":[{"id":7,"url":"https://example.com/p","photographer":"A","width":1080,"height":1920,"src":{"original":"https://example.com/o","portrait":"https://example.com/pt"}}]}`))
	})

	photos, err := client.SearchPhotos(context.Background(), "space")
	require.NoError(t, err)

	assert.Equal(t, "/v1/search", gotPath)
	assert.Equal(t, "test-key", gotAuth)
	assert.Equal(t, "space", gotQuery)
	require.Len(t, photos, 1)
	assert.Equal(t, int64(7), photos[0].ID)
	assert.Equal(t, "https://example.com/pt", photos[0].Portrait)
}

func TestSearchVideosHitsSearchEndpoint(t *testing.T) {
	var gotPath string
	var gotParams map[string][]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotParams = r.URL.Query()
		w.Write([]byte(`{"videos":[{"id":3,"url":"https://example.com/v","duration":12,"width":1080,"height":1920,"image":"https://example.com/i","video_files":[{"link":"https://example.com/sd","quality":"sd"},{"link":"https://example.com/hd","quality":"hd"}]}]}`))
	})

	videos, err := client.SearchVideos(context.Background(), "ocean")
	require.NoError(t, err)

	assert.Equal(t, "/videos/search", gotPath)
	assert.Equal(t, "ocean", gotParams["query"][0])
	assert.Equal(t, "3", gotParams["per_page"][0])
	assert.Equal(t, "portrait", gotParams["orientation"][0])
	require.Len(t, videos, 1)
	// HD 文件优先
	assert.Equal(t, "https://example.com/hd", videos[0].FileURL)
}

func TestSearchPhotosNonOKStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.SearchPhotos(context.Background(), "space")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
