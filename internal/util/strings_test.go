package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name     string
		s1       string
		s2       string
		expected int
	}{
		{"identical strings", "hello", "hello", 0},
		{"one character different", "hello", "hallo", 1},
		{"completely different", "abc", "xyz", 3},
		{"empty strings", "", "", 0},
		{"one empty string", "hello", "", 5},
		{"case sensitive", "Hello", "hello", 1},
		{"longer example", "kitten", "sitting", 3},
		{"multibyte runes", "grüße", "gruße", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevenshteinDistance(tt.s1, tt.s2))
		})
	}
}

func TestSuggestions(t *testing.T) {
	candidates := []string{"status", "start", "stop", "statuses", "restart", "stat"}

	assert.Equal(t, []string{"stat", "start", "status"}, Suggestions("stat", candidates, 2)[:3])
	assert.Equal(t, []string{"stop"}, Suggestions("stop", []string{"stop", "stop"}, 0))
	assert.Empty(t, Suggestions("zzz", candidates, 1))
}
