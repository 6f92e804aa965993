package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagnerlima/designdata-mcp/internal/config"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	logger, err := New(config.LogConfig{Level: "info", File: path, Production: true})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("snapshot loaded")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"snapshot loaded"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestBootstrap(t *testing.T) {
	assert.NotNil(t, Bootstrap())
}
