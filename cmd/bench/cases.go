// README: Smoke cases for the plan API; health, request validation, metrics, and optional live generation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 90 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
	return results
}

var kyotoRequest = map[string]any{
	"destination": "Kyoto",
	"duration":    "1 night 2 days",
	"timing":      "mid November",
	"budget":      "moderate",
	"companions":  "friends",
	"style":       []string{"food", "temples"},
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		httpCaseMethod("Health: GET /health", http.MethodGet, base+"/health", nil, nil, []int{http.StatusOK}),
		httpCase("Plans: invalid json", base+"/api/plans", "{", []int{http.StatusBadRequest}),
		httpCase("Plans: missing fields", base+"/api/plans", map[string]any{"destination": "Kyoto"}, []int{http.StatusBadRequest}),
		{
			Name:  "Plans: Japanese error message",
			Focus: "Accept-Language",
			Run: func(ctx context.Context, r *Runner) Result {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/plans", strings.NewReader(`{"destination":"京都"}`))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("Accept-Language", "ja")
				status, body, latency, err := r.do(req)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusBadRequest || !strings.Contains(body, "必須項目") {
					return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d body=%s", status, body)}
				}
				return Result{Status: "PASS", Latency: latency}
			},
		},
		{
			Name:  "Plans: generate (live)",
			Focus: "End-to-end generation",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Live {
					return Result{Status: "SKIP", Note: "live=false"}
				}
				b, _ := json.Marshal(kyotoRequest)
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/plans", strings.NewReader(string(b)))
				req.Header.Set("Content-Type", "application/json")
				status, body, latency, err := r.do(req)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d body=%s", status, body)}
				}
				var plan struct {
					Title string            `json:"title"`
					Days  []json.RawMessage `json:"days"`
				}
				if err := json.Unmarshal([]byte(body), &plan); err != nil {
					return Result{Status: "FAIL", Latency: latency, Note: err.Error()}
				}
				if len(plan.Days) != 2 {
					return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("days=%d", len(plan.Days))}
				}
				return Result{Status: "PASS", Latency: latency, Note: plan.Title}
			},
		},
		{
			Name:  "Metrics: plan outcomes exported",
			Focus: "Prometheus",
			Run: func(ctx context.Context, r *Runner) Result {
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, base+"/metrics", nil)
				status, body, latency, err := r.do(req)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK || !strings.Contains(body, "tripplan_http_requests_total") {
					return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: "PASS", Latency: latency}
			},
		},
		{
			Name:  "Perf: bad requests under load",
			Focus: "Handler throughput without generation",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/plans", map[string]any{"destination": "Kyoto"})
			},
		},
	}
}

func (r *Runner) do(req *http.Request) (int, string, time.Duration, error) {
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, "", 0, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b), time.Since(start), err
}

func httpCase(name, url string, body any, okStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, nil, okStatuses)
}

func httpCaseMethod(name, method, url string, body any, header http.Header, okStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			switch b := body.(type) {
			case nil:
			case string:
				reader = strings.NewReader(b)
			default:
				raw, _ := json.Marshal(b)
				reader = strings.NewReader(string(raw))
			}
			req, _ := http.NewRequestWithContext(ctx, method, url, reader)
			req.Header.Set("Content-Type", "application/json")
			for k, v := range header {
				req.Header[k] = v
			}
			status, _, latency, err := r.do(req)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			if contains(okStatuses, status) {
				return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
		},
	}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(b)))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}
