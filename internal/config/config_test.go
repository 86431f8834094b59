package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ghosttype/internal/typing"
)

// TestDefaults verifies the out-of-the-box configuration.
func TestDefaults(t *testing.T) {
	c := newConfig(filepath.Join(t.TempDir(), "config.json"))

	if got := c.BaseDelay(); got != 100*time.Millisecond {
		t.Errorf("base delay: expected 100ms, got %v", got)
	}
	if got := c.Variability(); got != 50*time.Millisecond {
		t.Errorf("variability: expected 50ms, got %v", got)
	}
	if got := c.WordDelay(); got != 300*time.Millisecond {
		t.Errorf("word delay: expected 300ms, got %v", got)
	}
	if got := c.TypingMode(); got != typing.ModeCharacter {
		t.Errorf("typing mode: expected character, got %v", got)
	}
	if got := c.RepeatCount(); got != 1 {
		t.Errorf("repeat count: expected 1, got %d", got)
	}
	if !c.NaturalTyping() {
		t.Error("natural typing must default to on")
	}
	if got := c.CountdownSeconds(); got != 3 {
		t.Errorf("countdown: expected 3, got %d", got)
	}
	if got := c.WatchdogSeconds(); got != 10 {
		t.Errorf("watchdog: expected 10, got %d", got)
	}
	if !c.ConfirmEmergencyStop() {
		t.Error("emergency confirmation must default to on")
	}
	if got := c.Hotkey(ActionStart); got.Key != KeyF9 || len(got.Modifiers) != 0 {
		t.Errorf("start hotkey: expected bare f9, got %v", got)
	}
	if got := c.Hotkey(ActionPause); got.Key != KeyF10 {
		t.Errorf("pause hotkey: expected f10, got %v", got)
	}
	if got := c.Hotkey(ActionEmergency); got.Key != KeyF11 {
		t.Errorf("emergency hotkey: expected f11, got %v", got)
	}
	if got := c.Theme(); got != "light" {
		t.Errorf("theme: expected light, got %q", got)
	}
	if got := c.UILanguage(); got != "en" {
		t.Errorf("ui language: expected en, got %q", got)
	}
	if !c.NotificationsEnabled() {
		t.Error("notifications must default to on")
	}
	if c.KeyClicksEnabled() {
		t.Error("key clicks must default to off")
	}
}

// TestSaveLoadRoundTrip verifies that every setter persists and a fresh
// instance reads the same values back.
func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	c := newConfig(path)
	c.SetBaseDelay(200 * time.Millisecond)
	c.SetVariability(80 * time.Millisecond)
	c.SetWordDelay(time.Second)
	c.SetTypingMode(typing.ModeWord)
	c.SetRepeatCount(5)
	c.SetNaturalTyping(false)
	c.SetCountdownSeconds(7)
	c.SetWatchdogSeconds(30)
	c.SetConfirmEmergencyStop(false)
	c.SetHotkey(ActionStart, HotkeyConfig{Modifiers: []Modifier{ModCtrl}, Key: KeyT})
	c.SetTheme("dark")
	c.SetUILanguage("ru")
	c.SetNotifications(false)
	c.SetKeyClicks(true)

	fresh := newConfig(path)
	if got := fresh.BaseDelay(); got != 200*time.Millisecond {
		t.Errorf("base delay: expected 200ms, got %v", got)
	}
	if got := fresh.Variability(); got != 80*time.Millisecond {
		t.Errorf("variability: expected 80ms, got %v", got)
	}
	if got := fresh.WordDelay(); got != time.Second {
		t.Errorf("word delay: expected 1s, got %v", got)
	}
	if got := fresh.TypingMode(); got != typing.ModeWord {
		t.Errorf("typing mode: expected word, got %v", got)
	}
	if got := fresh.RepeatCount(); got != 5 {
		t.Errorf("repeat count: expected 5, got %d", got)
	}
	if fresh.NaturalTyping() {
		t.Error("natural typing must persist as off")
	}
	if got := fresh.CountdownSeconds(); got != 7 {
		t.Errorf("countdown: expected 7, got %d", got)
	}
	if got := fresh.WatchdogSeconds(); got != 30 {
		t.Errorf("watchdog: expected 30, got %d", got)
	}
	if fresh.ConfirmEmergencyStop() {
		t.Error("emergency confirmation must persist as off")
	}
	hk := fresh.Hotkey(ActionStart)
	if hk.Key != KeyT || len(hk.Modifiers) != 1 || hk.Modifiers[0] != ModCtrl {
		t.Errorf("start hotkey: expected ctrl+t, got %v", hk)
	}
	if got := fresh.Theme(); got != "dark" {
		t.Errorf("theme: expected dark, got %q", got)
	}
	if got := fresh.UILanguage(); got != "ru" {
		t.Errorf("ui language: expected ru, got %q", got)
	}
	if fresh.NotificationsEnabled() {
		t.Error("notifications must persist as off")
	}
	if !fresh.KeyClicksEnabled() {
		t.Error("key clicks must persist as on")
	}
}

// TestWatchdogClamp verifies that nonzero watchdog values are clamped
// into the allowed range while zero disables the timer.
func TestWatchdogClamp(t *testing.T) {
	c := newConfig(filepath.Join(t.TempDir(), "config.json"))

	tests := []struct {
		set  int
		want int
	}{
		{3, WatchdogMinSeconds},
		{5, 5},
		{45, 45},
		{60, 60},
		{90, WatchdogMaxSeconds},
		{0, 0},
		{-10, 0},
	}

	for _, tt := range tests {
		c.SetWatchdogSeconds(tt.set)
		if got := c.WatchdogSeconds(); got != tt.want {
			t.Errorf("SetWatchdogSeconds(%d): expected %d, got %d", tt.set, tt.want, got)
		}
	}
}

// TestPartialFileKeepsDefaults verifies that a config file with only a
// few keys does not reset the remaining fields.
func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"base_delay": 0.25}`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c := newConfig(path)
	if got := c.BaseDelay(); got != 250*time.Millisecond {
		t.Errorf("base delay: expected 250ms, got %v", got)
	}
	if !c.NaturalTyping() {
		t.Error("natural typing default lost on partial file")
	}
	if !c.NotificationsEnabled() {
		t.Error("notifications default lost on partial file")
	}
	if got := c.Hotkey(ActionEmergency); got.Key != KeyF11 {
		t.Errorf("emergency hotkey default lost: %v", got)
	}
}

// TestCorruptFileKeepsDefaults verifies that unparseable JSON is ignored.
func TestCorruptFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c := newConfig(path)
	if got := c.BaseDelay(); got != 100*time.Millisecond {
		t.Errorf("base delay: expected default 100ms, got %v", got)
	}
}

// TestOnHotkeyChange verifies the change callback carries the action.
func TestOnHotkeyChange(t *testing.T) {
	c := newConfig(filepath.Join(t.TempDir(), "config.json"))

	var gotAction Action
	var gotHotkey HotkeyConfig
	c.OnHotkeyChange(func(action Action, hk HotkeyConfig) {
		gotAction = action
		gotHotkey = hk
	})

	c.SetHotkey(ActionPause, HotkeyConfig{Modifiers: []Modifier{ModAlt}, Key: KeyP})

	if gotAction != ActionPause {
		t.Errorf("expected action pause, got %q", gotAction)
	}
	if gotHotkey.Key != KeyP {
		t.Errorf("expected key p, got %v", gotHotkey)
	}
}

// TestHotkeyString verifies the display form of hotkey combinations.
func TestHotkeyString(t *testing.T) {
	tests := []struct {
		hk   HotkeyConfig
		want string
	}{
		{HotkeyConfig{Key: KeyF9}, "f9"},
		{HotkeyConfig{Modifiers: []Modifier{ModCtrl}, Key: KeySpace}, "ctrl+space"},
		{HotkeyConfig{Modifiers: []Modifier{ModCtrl, ModShift}, Key: KeyV}, "ctrl+shift+v"},
	}

	for _, tt := range tests {
		if got := tt.hk.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
