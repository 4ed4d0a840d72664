package posts

import (
	"strings"
	"testing"
)

func TestEstimateReadingTime(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    int
	}{
		{"empty content floors at one minute", "", 1},
		{"whitespace only", "   \n\t  ", 1},
		{"single word", "hello", 1},
		{"exactly one minute", words(200), 1},
		{"just over one minute rounds up", words(201), 2},
		{"two minutes", words(400), 2},
		{"five minutes", words(1000), 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EstimateReadingTime(tc.content); got != tc.want {
				t.Fatalf("EstimateReadingTime = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestEstimateReadingTimeAtCustomSpeed(t *testing.T) {
	if got := EstimateReadingTimeAt(words(300), 100); got != 3 {
		t.Fatalf("expected 3 minutes at 100 wpm, got %d", got)
	}
	// non-positive rates fall back to the default
	if got := EstimateReadingTimeAt(words(400), 0); got != 2 {
		t.Fatalf("expected default rate fallback, got %d", got)
	}
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}
