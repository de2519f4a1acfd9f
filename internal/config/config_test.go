package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"TRIPPLAN_AI_PROVIDER", "TRIPPLAN_AI_TIMEOUT", "GEMINI_API_KEY", "TRIPPLAN_HTTP_ADDR"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.InDelta(t, 0.4, cfg.AI.Temperature, 1e-6)
	assert.Empty(t, cfg.AI.APIKey())
}

func TestLoad_ProviderSelectsCredential(t *testing.T) {
	t.Setenv("TRIPPLAN_AI_PROVIDER", "OpenAI")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("TRIPPLAN_AI_TIMEOUT", "15s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "o-key", cfg.AI.APIKey())

	s := cfg.AI.Settings()
	assert.Equal(t, "openai", s.Provider)
	assert.Equal(t, 15*time.Second, s.Timeout)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("TRIPPLAN_AI_TEMPERATURE", "warm")
	t.Setenv("TRIPPLAN_GEO_RADIUS_KM", "far")

	cfg, err := Load()
	require.NoError(t, err)
	assert.InDelta(t, 0.4, cfg.AI.Temperature, 1e-6)
	assert.InDelta(t, 150, cfg.Geo.RadiusKm, 1e-9)
}
