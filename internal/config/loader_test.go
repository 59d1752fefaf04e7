package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", name), []byte(content), 0o644))
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml", "app:\n  name: test-svc\n")
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-svc", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, 1500*time.Millisecond, cfg.Generation.UnitDelay)
	assert.Equal(t, 60*time.Second, cfg.Generation.UpstreamTimeout)
	assert.Equal(t, 130, cfg.Generation.MinWords)
	assert.Equal(t, 160, cfg.Generation.MaxWords)
	assert.Equal(t, 5, cfg.Generation.MaxExamples)
	assert.Equal(t, "gemini", cfg.Generation.ProviderKind)
	assert.Equal(t, 24*time.Hour, cfg.Media.Pexels.CacheTTL)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.Security.RateLimit.RequestsPerMinute)
	assert.Equal(t, "/metrics", cfg.Observability.Metrics.Path)
}

func TestLoadExpandsEnvPlaceholders(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml",
		"server:\n  http:\n    port: ${TEST_HTTP_PORT:9090}\n")
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTP.Port)

	t.Setenv("TEST_HTTP_PORT", "9191")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.HTTP.Port)
}

func TestLoadMergesEnvSpecificConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml",
		"app:\n  name: base\ngeneration:\n  min_words: 100\n")
	writeConfig(t, dir, "config.production.yaml",
		"generation:\n  min_words: 140\n")
	t.Chdir(dir)
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "base", cfg.App.Name)
	assert.Equal(t, 140, cfg.Generation.MinWords)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_EXPAND_SET", "from-env")

	assert.Equal(t, "from-env", expandEnv("${TEST_EXPAND_SET}"))
	assert.Equal(t, "from-env", expandEnv("${TEST_EXPAND_SET:fallback}"))
	assert.Equal(t, "fallback", expandEnv("${TEST_EXPAND_UNSET:fallback}"))
	// 无默认值且未设置时保留原样
	assert.Equal(t, "${TEST_EXPAND_UNSET}", expandEnv("${TEST_EXPAND_UNSET}"))
	assert.Equal(t, "", expandEnv("${TEST_EXPAND_UNSET:}"))
}
