package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunAll_AgainstStubServer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("POST /api/plans", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		if r.Header.Get("Accept-Language") == "ja" {
			_, _ = w.Write([]byte(`{"error":"必須項目が入力されていません: duration"}`))
			return
		}
		_, _ = w.Write([]byte(`{"error":"invalid request body"}`))
	})
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("tripplan_http_requests_total 1\n"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewRunner(Config{BaseURL: srv.URL, Concurrency: 2, Duration: 50 * time.Millisecond})
	results := r.RunAll(context.Background())

	got := map[string]string{}
	for _, res := range results {
		got[res.Name] = res.Status
	}
	assert.Equal(t, "PASS", got["Health: GET /health"])
	assert.Equal(t, "PASS", got["Plans: invalid json"])
	assert.Equal(t, "PASS", got["Plans: missing fields"])
	assert.Equal(t, "PASS", got["Plans: Japanese error message"])
	assert.Equal(t, "SKIP", got["Plans: generate (live)"])
	assert.Equal(t, "PASS", got["Metrics: plan outcomes exported"])
	assert.Equal(t, "PASS", got["Perf: bad requests under load"])
}
