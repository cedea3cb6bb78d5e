package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"androd-app", "android-app", 1},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"->"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, EditDistance(tt.a, tt.b))
		})
	}
}

func TestFindSimilar(t *testing.T) {
	presets := []string{"android-app", "android-multi-module", "kotlin-library"}

	tests := []struct {
		name   string
		target string
		opts   *FuzzyMatchOptions
		want   []string
	}{
		{name: "typo", target: "androd-app", want: []string{"android-app"}},
		{name: "case insensitive", target: "ANDROID-APP", want: []string{"android-app"}},
		{name: "case sensitive", target: "ANDROID-APP", opts: &FuzzyMatchOptions{CaseSensitive: true}, want: []string{}},
		{name: "nothing close", target: "spring-boot", want: []string{}},
		{name: "wider distance", target: "kotlin", opts: &FuzzyMatchOptions{MaxDistance: 8}, want: []string{"kotlin-library"}},
		{name: "limit", target: "a", opts: &FuzzyMatchOptions{MaxDistance: 50, MaxSuggestions: 1}, want: []string{"android-app"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindSimilar(tt.target, presets, tt.opts))
		})
	}
}
