package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultClaudeModel     = "claude-3-5-haiku-latest"
	defaultClaudeMaxTokens = 8192
	claudeSystemPrompt     = "You produce machine-readable travel plans. Reply with a single JSON object and nothing else."
)

// ClaudeProvider implements Provider using the Anthropic Messages API.
// Claude has no JSON response mode, so the assistant turn is prefilled with
// "{" and the brace is restored on the returned text.
type ClaudeProvider struct {
	client      anthropic.Client
	model       string
	temperature float32
	timeout     time.Duration
}

func NewClaudeProvider(s Settings) (*ClaudeProvider, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	return &ClaudeProvider{
		client:      anthropic.NewClient(option.WithAPIKey(s.APIKey)),
		model:       modelOr(s.Model, defaultClaudeModel),
		temperature: s.Temperature,
		timeout:     s.Timeout,
	}, nil
}

func (p *ClaudeProvider) Name() string { return ProviderClaude + ":" + p.model }

func (p *ClaudeProvider) Close() error { return nil }

func (p *ClaudeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: defaultClaudeMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: claudeSystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			anthropic.NewAssistantMessage(anthropic.NewTextBlock("{")),
		},
	}
	if p.temperature > 0 {
		params.Temperature = anthropic.Float(float64(p.temperature))
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude: messages call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("claude: %w", ErrEmptyResponse)
	}
	return restorePrefill(text.String()), nil
}

// restorePrefill puts back the prefilled brace unless the model repeated it.
func restorePrefill(text string) string {
	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		return text
	}
	return "{" + text
}
