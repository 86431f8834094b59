package settings

import (
	"testing"
	"time"

	"gioui.org/io/key"

	"ghosttype/internal/config"
)

// TestSliderDurationRoundTrip verifies that a duration survives the
// trip through slider coordinates within the millisecond rounding.
func TestSliderDurationRoundTrip(t *testing.T) {
	tests := []struct {
		d, min, max time.Duration
	}{
		{100 * time.Millisecond, baseDelayMin, baseDelayMax},
		{baseDelayMin, baseDelayMin, baseDelayMax},
		{baseDelayMax, baseDelayMin, baseDelayMax},
		{50 * time.Millisecond, variabilityMin, variabilityMax},
		{0, variabilityMin, variabilityMax},
		{300 * time.Millisecond, wordPauseMin, wordPauseMax},
		{1500 * time.Millisecond, wordPauseMin, wordPauseMax},
	}

	for _, tt := range tests {
		pos := durationToSlider(tt.d, tt.min, tt.max)
		got := sliderToDuration(pos, tt.min, tt.max)
		diff := got - tt.d
		if diff < 0 {
			diff = -diff
		}
		if diff > time.Millisecond {
			t.Errorf("%v in [%v, %v]: round trip gave %v", tt.d, tt.min, tt.max, got)
		}
	}
}

// TestSliderDurationClamping verifies that out-of-range inputs clamp to
// the slider bounds instead of extrapolating.
func TestSliderDurationClamping(t *testing.T) {
	if pos := durationToSlider(time.Second, baseDelayMin, baseDelayMax); pos != 1 {
		t.Errorf("over max: expected position 1, got %v", pos)
	}
	if pos := durationToSlider(time.Millisecond, baseDelayMin, baseDelayMax); pos != 0 {
		t.Errorf("under min: expected position 0, got %v", pos)
	}
	if got := sliderToDuration(1.5, baseDelayMin, baseDelayMax); got != baseDelayMax {
		t.Errorf("position 1.5: expected %v, got %v", baseDelayMax, got)
	}
	if got := sliderToDuration(-0.5, baseDelayMin, baseDelayMax); got != baseDelayMin {
		t.Errorf("position -0.5: expected %v, got %v", baseDelayMin, got)
	}
}

// TestKeyFromName verifies mapping of Gio key names onto config keys.
func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name key.Name
		want config.Key
		ok   bool
	}{
		{key.NameSpace, config.KeySpace, true},
		{key.NameReturn, config.KeyReturn, true},
		{key.NameF9, config.KeyF9, true},
		{key.NameF12, config.KeyF12, true},
		{"A", config.KeyA, true},
		{"Z", config.KeyZ, true},
		{key.NameEscape, "", false},
		{key.NameLeftArrow, "", false},
	}

	for _, tt := range tests {
		got, ok := keyFromName(tt.name)
		if ok != tt.ok {
			t.Errorf("key %q: expected ok=%v, got %v", tt.name, tt.ok, ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("key %q: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

// TestIsFunctionKey verifies that only F1-F12 qualify as bare hotkeys.
func TestIsFunctionKey(t *testing.T) {
	for _, k := range []config.Key{config.KeyF1, config.KeyF9, config.KeyF12} {
		if !isFunctionKey(k) {
			t.Errorf("%q: expected function key", k)
		}
	}
	for _, k := range []config.Key{config.KeyA, config.KeySpace, config.KeyReturn, ""} {
		if isFunctionKey(k) {
			t.Errorf("%q: unexpected function key", k)
		}
	}
}

// TestBuildHotkeyParts verifies modifier ordering and key rendering in
// the recording preview.
func TestBuildHotkeyParts(t *testing.T) {
	tests := []struct {
		mods map[config.Modifier]bool
		key  config.Key
		want string
	}{
		{map[config.Modifier]bool{config.ModCtrl: true, config.ModShift: true}, config.KeyT, "Ctrl Shift T"},
		{map[config.Modifier]bool{config.ModShift: true, config.ModCtrl: true}, config.KeyT, "Ctrl Shift T"},
		{map[config.Modifier]bool{config.ModAlt: true}, config.KeySpace, "Alt Space"},
		{map[config.Modifier]bool{config.ModSuper: true}, "", "Super"},
		{nil, config.KeyF9, "F9"},
		{nil, config.KeyF11, "F11"},
	}

	for _, tt := range tests {
		parts := buildHotkeyParts(tt.mods, tt.key)
		got := ""
		for i, p := range parts {
			if i > 0 {
				got += " "
			}
			got += p
		}
		if got != tt.want {
			t.Errorf("mods %v key %q: expected %q, got %q", tt.mods, tt.key, tt.want, got)
		}
	}
}

// TestKeyDisplayName verifies the human-readable key labels.
func TestKeyDisplayName(t *testing.T) {
	tests := []struct {
		key  config.Key
		want string
	}{
		{config.KeySpace, "Space"},
		{config.KeyReturn, "Enter"},
		{config.KeyTab, "Tab"},
		{config.KeyEsc, "Esc"},
		{config.KeyF9, "F9"},
		{config.KeyF10, "F10"},
		{config.KeyA, "A"},
		{config.KeyZ, "Z"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := keyDisplayName(tt.key); got != tt.want {
			t.Errorf("key %q: expected %q, got %q", tt.key, tt.want, got)
		}
	}
}
