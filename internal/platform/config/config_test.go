package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("batiku_server")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.Empty(t, cfg.S3BucketName, "no bucket is configured out of the box")
	assert.Equal(t, "amazon.titan-image-generator-v1", cfg.BedrockModelID)
	assert.Equal(t, 3, cfg.GenerationCandidateCount)
	assert.Equal(t, 4, cfg.VariationCandidateCount)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout())
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("APP_S3_BUCKET_NAME", "batiku-assets")
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_HISTORY_FILE_PATH", "/var/lib/batiku/history.json")

	cfg, err := Load("batiku_server")
	require.NoError(t, err)

	assert.Equal(t, "batiku-assets", cfg.S3BucketName)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "/var/lib/batiku/history.json", cfg.HistoryFilePath)
}
