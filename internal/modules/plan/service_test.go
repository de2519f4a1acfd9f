package plan

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator is a test double for Generator that records its calls.
type stubGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	calls   int
	prompts []string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.text, s.err
}

func newTestService(gen Generator, credential string) (*Service, *bytes.Buffer) {
	var buf bytes.Buffer
	svc := NewService(gen, Options{
		Credential: credential,
		Provider:   "stub",
		Logger:     zerolog.New(&buf),
	})
	return svc, &buf
}

func TestGenerate_ScenarioA_WellFormedPlan(t *testing.T) {
	gen := &stubGenerator{text: kyotoTwoDayPlan}
	svc, _ := newTestService(gen, "key")

	req := kyotoRequest()
	res, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, res.Days, 2)
	assert.GreaterOrEqual(t, len(res.Hotels), 1)
	assert.LessOrEqual(t, len(res.Hotels), 2)

	require.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.prompts[0], "Kyoto")
	assert.Contains(t, gen.prompts[0], "Travel period: unspecified")
}

func TestGenerate_ScenarioB_FencedOutput(t *testing.T) {
	plain := &stubGenerator{text: kyotoTwoDayPlan}
	fenced := &stubGenerator{text: "```json\n" + kyotoTwoDayPlan + "\n```"}

	svcPlain, _ := newTestService(plain, "key")
	svcFenced, _ := newTestService(fenced, "key")

	want, err := svcPlain.Generate(context.Background(), kyotoRequest())
	require.NoError(t, err)
	got, err := svcFenced.Generate(context.Background(), kyotoRequest())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGenerate_ScenarioC_NotJSON(t *testing.T) {
	gen := &stubGenerator{text: "not json"}
	svc, logs := newTestService(gen, "key")

	res, err := svc.Generate(context.Background(), kyotoRequest())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrMalformedOutput)
	assert.Equal(t, KindMalformedOutput, Classify(err))
	assert.Contains(t, logs.String(), `"kind":"MalformedOutputError"`)
}

func TestGenerate_ScenarioD_StringLatitude(t *testing.T) {
	gen := &stubGenerator{text: `{
	  "title": "Tokyo",
	  "days": [
	    {"day": 1, "schedule": [{"time": "09:00", "place": "Tokyo Tower", "description": "View.", "lat": "35.6", "lng": 139.7}]},
	    {"day": 2, "schedule": []}
	  ],
	  "hotels": [{"name": "H", "area": "Minato", "price": "p", "features": [], "lat": 35.6, "lng": 139.7}]
	}`}
	svc, logs := newTestService(gen, "key")

	res, err := svc.Generate(context.Background(), kyotoRequest())
	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrValidation)

	var pe *Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, []string{"days[0].schedule[0].lat"}, pe.Fields)
	assert.Contains(t, logs.String(), `"kind":"ValidationError"`)
	assert.Contains(t, logs.String(), "days[0].schedule[0].lat")
}

func TestGenerate_ScenarioE_MissingCredential(t *testing.T) {
	gen := &stubGenerator{text: kyotoTwoDayPlan}
	svc, logs := newTestService(gen, "")

	res, err := svc.Generate(context.Background(), kyotoRequest())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, 0, gen.calls)
	assert.Contains(t, logs.String(), `"kind":"ConfigurationError"`)

	nilGen, _ := newTestService(nil, "key")
	_, err = nilGen.Generate(context.Background(), kyotoRequest())
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestGenerate_GenerationFailures(t *testing.T) {
	for name, gen := range map[string]*stubGenerator{
		"upstream error": {err: errors.New("503 service unavailable")},
		"empty text":     {text: "   "},
	} {
		t.Run(name, func(t *testing.T) {
			svc, _ := newTestService(gen, "key")
			_, err := svc.Generate(context.Background(), kyotoRequest())
			assert.ErrorIs(t, err, ErrGeneration)
			assert.Equal(t, 1, gen.calls)
		})
	}
}

func TestGenerate_DayCountFollowsDuration(t *testing.T) {
	gen := &stubGenerator{text: oneDayPlan}
	svc, _ := newTestService(gen, "key")

	_, err := svc.Generate(context.Background(), kyotoRequest())
	var pe *Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, []string{"days"}, pe.Fields)

	req := kyotoRequest()
	req.Duration = "day trip"
	_, err = svc.Generate(context.Background(), req)
	assert.NoError(t, err)
}

func TestGenerateIn_JapanesePrompt(t *testing.T) {
	gen := &stubGenerator{text: kyotoTwoDayPlan}
	svc, _ := newTestService(gen, "key")

	req := kyotoRequest()
	req.Duration = "1泊2日"
	_, err := svc.GenerateIn(context.Background(), req, LangJapanese)
	require.NoError(t, err)
	assert.Contains(t, gen.prompts[0], "旅行時期: 指定なし")
}

func TestGenerate_ConcurrentCallsAreIndependent(t *testing.T) {
	gen := &stubGenerator{text: kyotoTwoDayPlan}
	svc, _ := newTestService(gen, "key")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Generate(context.Background(), kyotoRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 8, gen.calls)
}
