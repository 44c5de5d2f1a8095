package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepforge/ai-interview-coach/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "gemini", cfg.AIProvider)
	assert.Equal(t, 60*time.Second, cfg.AIRequestTimeout)
	assert.Equal(t, int64(50), cfg.MaxVideoMB)
	assert.Equal(t, int64(5), cfg.MaxResumeMB)
	assert.False(t, cfg.SimulatedVariance)
	assert.True(t, cfg.IsDev())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("AI_PROVIDER", "stub")
	t.Setenv("SIMULATED_VARIANCE", "true")
	t.Setenv("AI_REQUEST_TIMEOUT", "10s")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "stub", cfg.AIProvider)
	assert.True(t, cfg.SimulatedVariance)
	assert.Equal(t, 10*time.Second, cfg.AIRequestTimeout)
}
