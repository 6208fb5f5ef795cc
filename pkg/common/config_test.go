package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "modelName: llama-7b\nretryCount: 4\ntemperature: 0.65\nofflineMode: true\ncompileTimeout: 2000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "llama-7b", config.GetString("modelName"))
	assert.Equal(t, "llama-7b", config.GetStringOrDefault("modelName", "clima-7b"))
	assert.Equal(t, "clima-7b", config.GetStringOrDefault("missing", "clima-7b"))
	assert.Equal(t, 4, config.GetIntOrDefault("retryCount", 1))
	assert.Equal(t, 1, config.GetIntOrDefault("missing", 1))
	assert.Equal(t, 0.65, config.GetFloatOrDefault("temperature", 0.2))
	assert.True(t, config.GetBoolOrDefault("offlineMode", false))
	assert.False(t, config.GetBoolOrDefault("missing", false))
	assert.Equal(t, 2*time.Second, config.GetDurationOrDefault("compileTimeout", time.Minute))
	assert.Equal(t, time.Minute, config.GetDurationOrDefault("missing", time.Minute))
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
