package typing

import (
	"math/rand"
	"testing"
	"time"
)

// TestCharDelayPunctuation verifies that natural pacing doubles the base
// delay after sentence punctuation.
func TestCharDelayPunctuation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := TimingPolicy{
		BaseDelay:   100 * time.Millisecond,
		Variability: 50 * time.Millisecond,
		WordPause:   300 * time.Millisecond,
		Natural:     true,
	}

	for _, c := range ".,!?;:" {
		if got := charDelay(rng, p, c); got != 200*time.Millisecond {
			t.Errorf("char %q: expected 200ms, got %v", c, got)
		}
	}
}

// TestCharDelayWhitespace verifies that natural pacing treats whitespace
// as a word boundary and applies the word pause.
func TestCharDelayWhitespace(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := TimingPolicy{
		BaseDelay:   100 * time.Millisecond,
		Variability: 50 * time.Millisecond,
		WordPause:   300 * time.Millisecond,
		Natural:     true,
	}

	for _, c := range " \n\t" {
		if got := charDelay(rng, p, c); got != 300*time.Millisecond {
			t.Errorf("char %q: expected 300ms, got %v", c, got)
		}
	}
}

// TestCharDelayUniformRange verifies that with natural pacing off every
// delay stays within base ± variability, regardless of the rune.
func TestCharDelayUniformRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := TimingPolicy{
		BaseDelay:   50 * time.Millisecond,
		Variability: 20 * time.Millisecond,
		WordPause:   300 * time.Millisecond,
	}

	for i := 0; i < 500; i++ {
		for _, c := range "a. \n" {
			got := charDelay(rng, p, c)
			if got < 30*time.Millisecond || got > 70*time.Millisecond {
				t.Fatalf("char %q: delay %v outside [30ms, 70ms]", c, got)
			}
		}
	}
}

// TestCharDelayZeroVariability verifies that the natural default branch
// collapses to the exact base delay when variability is zero.
func TestCharDelayZeroVariability(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := TimingPolicy{
		BaseDelay: 80 * time.Millisecond,
		WordPause: 300 * time.Millisecond,
		Natural:   true,
	}

	if got := charDelay(rng, p, 'x'); got != 80*time.Millisecond {
		t.Errorf("expected exact base delay 80ms, got %v", got)
	}
}

// TestWordDelaySuffixes verifies the word-mode multipliers for sentence
// enders and clause punctuation.
func TestWordDelaySuffixes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := TimingPolicy{
		BaseDelay: 100 * time.Millisecond,
		WordPause: 300 * time.Millisecond,
		Natural:   true,
	}

	tests := []struct {
		word string
		want time.Duration
	}{
		{"end.", 600 * time.Millisecond},
		{"now!", 600 * time.Millisecond},
		{"why?", 600 * time.Millisecond},
		{"so,", 450 * time.Millisecond},
		{"first;", 450 * time.Millisecond},
		{"note:", 450 * time.Millisecond},
		{"plain", 300 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := wordDelay(rng, p, tt.word); got != tt.want {
			t.Errorf("word %q: expected %v, got %v", tt.word, tt.want, got)
		}
	}
}

// TestWordDelayUniformRange verifies word pacing with natural off.
func TestWordDelayUniformRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := TimingPolicy{
		BaseDelay:   100 * time.Millisecond,
		Variability: 50 * time.Millisecond,
		WordPause:   300 * time.Millisecond,
	}

	for i := 0; i < 500; i++ {
		got := wordDelay(rng, p, "end.")
		if got < 250*time.Millisecond || got > 350*time.Millisecond {
			t.Fatalf("delay %v outside [250ms, 350ms]", got)
		}
	}
}

// TestDelayFloor verifies that every computed delay is clamped to the
// 10ms floor, whatever the policy asks for.
func TestDelayFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	policies := []TimingPolicy{
		{BaseDelay: time.Millisecond, WordPause: time.Millisecond},
		{BaseDelay: time.Millisecond, WordPause: time.Millisecond, Natural: true},
		{BaseDelay: 5 * time.Millisecond, Variability: 20 * time.Millisecond, WordPause: time.Millisecond},
		{BaseDelay: 5 * time.Millisecond, Variability: 20 * time.Millisecond, WordPause: time.Millisecond, Natural: true},
	}

	for _, p := range policies {
		for i := 0; i < 200; i++ {
			for _, c := range "a.,?! \n\tц" {
				if got := charDelay(rng, p, c); got < minDelay {
					t.Fatalf("char %q: delay %v below floor", c, got)
				}
			}
			for _, w := range []string{"a", "end.", "so,", "привет"} {
				if got := wordDelay(rng, p, w); got < minDelay {
					t.Fatalf("word %q: delay %v below floor", w, got)
				}
			}
		}
	}
}
