package typing

import (
	"errors"
	"testing"
	"time"
)

// TestParseMode verifies case-insensitive mode parsing.
func TestParseMode(t *testing.T) {
	tests := []struct {
		raw  string
		want Mode
		ok   bool
	}{
		{"character", ModeCharacter, true},
		{"CHARACTER", ModeCharacter, true},
		{"word", ModeWord, true},
		{"Word", ModeWord, true},
		{"  word  ", ModeWord, true},
		{"", ModeCharacter, false},
		{"sentence", ModeCharacter, false},
	}

	for _, tt := range tests {
		got, ok := ParseMode(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %v, %v; expected %v, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

// TestTotalUnits verifies that the progress denominator counts runes of
// the trimmed text, multiplied by the repeat count.
func TestTotalUnits(t *testing.T) {
	tests := []struct {
		name string
		job  Job
		want int64
	}{
		{"plain", Job{Text: "hello", Repeats: 1}, 5},
		{"trimmed", Job{Text: "  hello \n", Repeats: 1}, 5},
		{"repeated", Job{Text: "ab", Repeats: 3}, 6},
		{"unicode", Job{Text: "привет", Repeats: 2}, 12},
		{"inner whitespace kept", Job{Text: "a  b", Repeats: 1}, 4},
		{"zero repeats treated as one", Job{Text: "abc", Repeats: 0}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.job.TotalUnits(); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

// TestPolicyValidate verifies the timing policy bounds.
func TestPolicyValidate(t *testing.T) {
	valid := TimingPolicy{
		BaseDelay:   100 * time.Millisecond,
		Variability: 50 * time.Millisecond,
		WordPause:   300 * time.Millisecond,
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid policy rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*TimingPolicy)
	}{
		{"zero base delay", func(p *TimingPolicy) { p.BaseDelay = 0 }},
		{"negative base delay", func(p *TimingPolicy) { p.BaseDelay = -time.Millisecond }},
		{"negative variability", func(p *TimingPolicy) { p.Variability = -time.Millisecond }},
		{"zero word pause", func(p *TimingPolicy) { p.WordPause = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, ErrInvalidPolicy) {
				t.Errorf("expected ErrInvalidPolicy, got %v", err)
			}
		})
	}
}
