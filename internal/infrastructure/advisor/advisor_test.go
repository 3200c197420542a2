package advisor

import (
	"slices"
	"strings"
	"testing"

	"github.com/healthhub/fitness-api/internal/core/domain"
)

func TestTemplates_RecommendationComesFromPool(t *testing.T) {
	tpl := &Templates{intn: func(n int) int { return n - 1 }}

	for _, typ := range domain.RecommendationTypes {
		got := tpl.Recommendation(typ)
		if !slices.Contains(templates[typ], got) {
			t.Fatalf("%s: %q not in pool", typ, got)
		}
	}

	if got := tpl.Recommendation("unknown"); !slices.Contains(templates[domain.RecommendationWorkout], got) {
		t.Fatalf("unknown type should fall back to workout pool, got %q", got)
	}
}

func TestTemplates_Insight(t *testing.T) {
	tpl := New()

	cases := map[string]string{
		"Tips for WEIGHT LOSS?":      "calorie deficit",
		"how do I gain muscle":       "progressive overload",
		"build strength fast":        "progressive overload",
		"I can't sleep":              "7-9 hours",
		"what diet should I follow?": "whole foods",
		"hello":                      "consistency is key",
	}
	for prompt, want := range cases {
		if got := tpl.Insight(prompt); !strings.Contains(got, want) {
			t.Fatalf("prompt %q: expected advice containing %q, got %q", prompt, want, got)
		}
	}
}
