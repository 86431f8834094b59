package feedback

import (
	"math"
	"testing"
	"time"
)

// TestClickWaveShape verifies the click waveform has the expected
// length, stays within the configured amplitude and decays to silence.
func TestClickWaveShape(t *testing.T) {
	wave := clickWave()

	wantLen := int(SampleRate * clickDuration / time.Second)
	if len(wave) != wantLen {
		t.Fatalf("len(wave) = %d, want %d", len(wave), wantLen)
	}

	if wave[0] != 0 {
		t.Errorf("wave[0] = %f, want 0 (sine starts at zero)", wave[0])
	}

	var peak float64
	for i, s := range wave {
		v := math.Abs(float64(s))
		if v > clickAmplitude {
			t.Fatalf("wave[%d] = %f exceeds amplitude %f", i, s, clickAmplitude)
		}
		if v > peak {
			peak = v
		}
	}
	if peak < clickAmplitude/2 {
		t.Errorf("peak = %f, want at least %f", peak, clickAmplitude/2)
	}

	// Хвост волны должен затухнуть значительно ниже пика
	tail := math.Abs(float64(wave[len(wave)-1]))
	if tail > peak/4 {
		t.Errorf("tail = %f, want below %f (decay)", tail, peak/4)
	}
}
