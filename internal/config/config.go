// README: Config loader with env defaults for HTTP, generation backend, and geo audit settings.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"tripplan/internal/ai"
)

type AIConfig struct {
	Provider    string
	Model       string
	Temperature float32
	Timeout     time.Duration
	GeminiKey   string
	OpenAIKey   string
	ClaudeKey   string
}

// APIKey returns the credential for the selected provider. Empty means the
// planner is unconfigured.
func (c AIConfig) APIKey() string {
	switch strings.ToLower(c.Provider) {
	case ai.ProviderOpenAI:
		return c.OpenAIKey
	case ai.ProviderClaude:
		return c.ClaudeKey
	default:
		return c.GeminiKey
	}
}

// Settings converts the config into provider construction settings.
func (c AIConfig) Settings() ai.Settings {
	return ai.Settings{
		Provider:    c.Provider,
		APIKey:      c.APIKey(),
		Model:       c.Model,
		Temperature: c.Temperature,
		Timeout:     c.Timeout,
	}
}

type GeoConfig struct {
	MapsKey  string
	RadiusKm float64
}

type Config struct {
	Env  string
	Lang string
	HTTP struct {
		Addr string
	}
	AI  AIConfig
	Geo GeoConfig
}

// Load reads configuration from the environment. A missing generation
// credential is not an error here; requests fail with ConfigurationError.
func Load() (Config, error) {
	var cfg Config
	cfg.Env = envOrDefault("TRIPPLAN_ENV", "prod")
	cfg.Lang = envOrDefault("TRIPPLAN_LANG", "en")
	cfg.HTTP.Addr = envOrDefault("TRIPPLAN_HTTP_ADDR", ":8080")

	cfg.AI.Provider = strings.ToLower(envOrDefault("TRIPPLAN_AI_PROVIDER", ai.ProviderGemini))
	cfg.AI.Model = os.Getenv("TRIPPLAN_AI_MODEL")
	cfg.AI.Temperature = float32(envOrDefaultFloat("TRIPPLAN_AI_TEMPERATURE", 0.4))
	cfg.AI.Timeout = envOrDefaultDuration("TRIPPLAN_AI_TIMEOUT", 60*time.Second)
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AI.ClaudeKey = os.Getenv("ANTHROPIC_API_KEY")

	cfg.Geo.MapsKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Geo.RadiusKm = envOrDefaultFloat("TRIPPLAN_GEO_RADIUS_KM", 150)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
