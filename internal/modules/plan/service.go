package plan

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tripplan/internal/ai"
	"tripplan/internal/infra"
)

// Options configures a Service.
type Options struct {
	// Credential is the generation backend secret. Empty means the service is
	// unconfigured and every call fails with ConfigurationError.
	Credential string
	// Provider labels metrics and logs (e.g. "gemini:gemini-2.0-flash").
	Provider string
	Language Language
	Logger   zerolog.Logger
}

// Service runs the plan pipeline: prompt, one generation call, sanitize,
// parse, validate. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	gen        Generator
	credential string
	provider   string
	lang       Language
	logger     zerolog.Logger
}

// NewService creates a Service around gen. gen may be nil when no
// credential is configured.
func NewService(gen Generator, opts Options) *Service {
	lang := opts.Language
	if lang == "" {
		lang = LangEnglish
	}
	provider := opts.Provider
	if provider == "" {
		provider = "unknown"
	}
	return &Service{
		gen:        gen,
		credential: opts.Credential,
		provider:   provider,
		lang:       lang,
		logger:     opts.Logger,
	}
}

// Language is the service default locale.
func (s *Service) Language() Language { return s.lang }

// Generate produces a validated plan for req in the service default language.
func (s *Service) Generate(ctx context.Context, req TravelRequest) (*PlanResult, error) {
	return s.GenerateIn(ctx, req, s.lang)
}

// GenerateIn produces a validated plan for req with a prompt in lang.
// Failures are returned as *Error and logged once with their kind.
func (s *Service) GenerateIn(ctx context.Context, req TravelRequest, lang Language) (*PlanResult, error) {
	log := infra.LoggerFrom(ctx, s.logger)
	req = req.Normalize()
	start := time.Now()

	res, err := s.run(ctx, req, lang)
	if err != nil {
		kind := Classify(err)
		ev := log.Error().
			Str("kind", string(kind)).
			Str("destination", req.Destination).
			Str("duration", req.Duration).
			Str("provider", s.provider)
		var pe *Error
		if errors.As(err, &pe) && len(pe.Fields) > 0 {
			ev = ev.Strs("fields", pe.Fields)
		}
		ev.Err(err).Msg("plan generation failed")
		infra.ObservePlan(string(kind))
		return nil, err
	}

	infra.ObservePlan("success")
	log.Info().
		Str("destination", req.Destination).
		Str("title", res.Title).
		Int("days", len(res.Days)).
		Int("hotels", len(res.Hotels)).
		Dur("elapsed", time.Since(start)).
		Msg("plan generated")
	return res, nil
}

func (s *Service) run(ctx context.Context, req TravelRequest, lang Language) (*PlanResult, error) {
	if s.gen == nil || strings.TrimSpace(s.credential) == "" {
		return nil, newError(KindConfiguration, nil)
	}

	prompt := BuildPrompt(req, lang)

	start := time.Now()
	raw, err := s.gen.Generate(ctx, prompt)
	infra.ObserveGeneration(s.provider, time.Since(start))
	if err != nil {
		return nil, newError(KindGeneration, err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, newError(KindGeneration, ai.ErrEmptyResponse)
	}

	return Validate(ai.Sanitize(raw), ParseDuration(req.Duration))
}
