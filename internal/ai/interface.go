package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Provider names accepted by New.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// ErrMissingAPIKey is returned by constructors when no credential is given.
var ErrMissingAPIKey = errors.New("ai: missing api key")

// ErrEmptyResponse is returned when the backend answers without any text.
var ErrEmptyResponse = errors.New("ai: empty response")

// Provider is a one-shot text-completion backend configured to favour JSON
// output. Implementations do not retry.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
	Close() error
}

// Settings configures a Provider.
type Settings struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// New builds the Provider named in s.
func New(ctx context.Context, s Settings) (Provider, error) {
	var (
		p   Provider
		err error
	)
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", ProviderGemini:
		p, err = NewGeminiProvider(ctx, s)
	case ProviderOpenAI:
		p, err = NewOpenAIProvider(s)
	case ProviderClaude:
		p, err = NewClaudeProvider(s)
	default:
		return nil, fmt.Errorf("ai: unknown provider %q", s.Provider)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func modelOr(model, def string) string {
	if strings.TrimSpace(model) == "" {
		return def
	}
	return model
}
