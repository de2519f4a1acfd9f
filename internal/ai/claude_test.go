package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestorePrefill(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"continuation", `"title": "Kyoto"}`, `{"title": "Kyoto"}`},
		{"repeated brace", `{"title": "Kyoto"}`, `{"title": "Kyoto"}`},
		{"repeated brace after newline", "\n{\"title\": \"Kyoto\"}", "\n{\"title\": \"Kyoto\"}"},
		{"continuation with leading newline", "\n  \"title\": \"Kyoto\"}", "{\n  \"title\": \"Kyoto\"}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, restorePrefill(tt.in))
		})
	}
}
