// Package settings provides the Gio-based settings window.
package settings

import (
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"

	"ghosttype/internal/config"
	"ghosttype/internal/i18n"
	"ghosttype/internal/typing"
)

// Slider ranges. widget.Float is normalized 0..1, values are scaled
// into these bounds.
const (
	baseDelayMin = 10 * time.Millisecond
	baseDelayMax = 500 * time.Millisecond

	variabilityMin = 0 * time.Millisecond
	variabilityMax = 250 * time.Millisecond

	wordPauseMin = 50 * time.Millisecond
	wordPauseMax = 1500 * time.Millisecond
)

const repeatMax = 100

// Window represents the settings dialog window.
type Window struct {
	mu     sync.Mutex
	config *config.Config

	// Window state
	window  *app.Window
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	pal palette

	// UI state - Timing
	baseSlider widget.Float
	varSlider  widget.Float
	wordSlider widget.Float

	// UI state - Typing
	selectedMode  typing.Mode
	modeButtons   map[typing.Mode]*widget.Clickable
	naturalToggle widget.Bool
	confirmToggle widget.Bool
	repeats       int
	countdown     int
	watchdog      int
	repeatDec     widget.Clickable
	repeatInc     widget.Clickable
	countdownDec  widget.Clickable
	countdownInc  widget.Clickable
	watchdogDec   widget.Clickable
	watchdogInc   widget.Clickable

	// UI state - Hotkeys
	hotkeys       map[config.Action]config.HotkeyConfig
	editBtns      map[config.Action]*widget.Clickable
	recordingFor  config.Action // empty when not recording
	recordedMods  map[config.Modifier]bool
	recordedKey   config.Key
	hotkeyFilters []event.Filter // cached filters for hotkey recording

	// UI state - Interface
	selectedTheme  string
	themeButtons   map[string]*widget.Clickable
	selectedUILang i18n.Language
	langButtons    map[i18n.Language]*widget.Clickable
	notifToggle    widget.Bool
	clicksToggle   widget.Bool

	// Scroll state
	contentList widget.List

	// Widgets - Buttons
	applyBtn  widget.Clickable
	cancelBtn widget.Clickable

	// Callbacks
	onApply        func()
	onUILangChange func(lang i18n.Language)
	onThemeChange  func(theme string)
}

// New creates a new settings window.
func New(cfg *config.Config) *Window {
	w := &Window{
		config:      cfg,
		modeButtons: make(map[typing.Mode]*widget.Clickable),
		editBtns:    make(map[config.Action]*widget.Clickable),
		hotkeys:     make(map[config.Action]config.HotkeyConfig),
	}

	for _, mode := range []typing.Mode{typing.ModeCharacter, typing.ModeWord} {
		w.modeButtons[mode] = new(widget.Clickable)
	}
	for _, action := range settingsActions() {
		w.editBtns[action] = new(widget.Clickable)
	}

	w.themeButtons = map[string]*widget.Clickable{
		"light": new(widget.Clickable),
		"dark":  new(widget.Clickable),
	}
	w.langButtons = make(map[i18n.Language]*widget.Clickable)
	for _, lang := range i18n.AvailableLanguages() {
		w.langButtons[lang] = new(widget.Clickable)
	}

	w.contentList.Axis = layout.Vertical

	w.loadFromConfig()
	w.initHotkeyFilters()

	return w
}

// settingsActions lists the hotkey actions in display order.
func settingsActions() []config.Action {
	return []config.Action{config.ActionStart, config.ActionPause, config.ActionEmergency}
}

// loadFromConfig resets all widget state to the persisted values.
// Caller must not hold mu.
func (w *Window) loadFromConfig() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.baseSlider.Value = durationToSlider(w.config.BaseDelay(), baseDelayMin, baseDelayMax)
	w.varSlider.Value = durationToSlider(w.config.Variability(), variabilityMin, variabilityMax)
	w.wordSlider.Value = durationToSlider(w.config.WordDelay(), wordPauseMin, wordPauseMax)

	w.selectedMode = w.config.TypingMode()
	w.naturalToggle.Value = w.config.NaturalTyping()
	w.confirmToggle.Value = w.config.ConfirmEmergencyStop()
	w.repeats = w.config.RepeatCount()
	w.countdown = w.config.CountdownSeconds()
	w.watchdog = w.config.WatchdogSeconds()

	for _, action := range settingsActions() {
		w.hotkeys[action] = w.config.Hotkey(action)
	}
	w.recordingFor = ""

	w.selectedTheme = w.config.Theme()
	w.selectedUILang = i18n.GetLanguage()
	w.notifToggle.Value = w.config.NotificationsEnabled()
	w.clicksToggle.Value = w.config.KeyClicksEnabled()

	w.pal = paletteFor(w.selectedTheme)
}

func (w *Window) initHotkeyFilters() {
	modifiers := key.ModCtrl | key.ModShift | key.ModAlt | key.ModSuper

	filters := []key.Filter{
		{Name: key.NameSpace, Optional: modifiers},
		{Name: key.NameTab, Optional: modifiers},
		{Name: key.NameReturn, Optional: modifiers},
		{Name: key.NameEscape, Optional: modifiers},
		{Name: key.NameF1, Optional: modifiers},
		{Name: key.NameF2, Optional: modifiers},
		{Name: key.NameF3, Optional: modifiers},
		{Name: key.NameF4, Optional: modifiers},
		{Name: key.NameF5, Optional: modifiers},
		{Name: key.NameF6, Optional: modifiers},
		{Name: key.NameF7, Optional: modifiers},
		{Name: key.NameF8, Optional: modifiers},
		{Name: key.NameF9, Optional: modifiers},
		{Name: key.NameF10, Optional: modifiers},
		{Name: key.NameF11, Optional: modifiers},
		{Name: key.NameF12, Optional: modifiers},
	}
	// Add letters A-Z
	for c := 'A'; c <= 'Z'; c++ {
		filters = append(filters, key.Filter{Name: key.Name(string(c)), Optional: modifiers})
	}
	// Also capture modifier-only events
	filters = append(filters, key.Filter{Optional: modifiers})

	w.hotkeyFilters = make([]event.Filter, len(filters))
	for i, f := range filters {
		w.hotkeyFilters[i] = f
	}
}

// OnApply sets the callback fired after settings are persisted.
func (w *Window) OnApply(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onApply = fn
}

// OnUILangChange sets the callback for when user changes UI language.
func (w *Window) OnUILangChange(fn func(lang i18n.Language)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onUILangChange = fn
}

// OnThemeChange sets the callback for when user changes the theme.
func (w *Window) OnThemeChange(fn func(theme string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onThemeChange = fn
}

// Show displays the settings window (non-blocking).
func (w *Window) Show() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	// Reload current settings
	w.loadFromConfig()

	go w.runEventLoop()
}

// Hide closes the settings window.
func (w *Window) Hide() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	stopCh := w.stopCh
	doneCh := w.doneCh
	w.stopCh = nil
	w.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}

	if doneCh != nil {
		select {
		case <-doneCh:
		case <-time.After(time.Second):
		}
	}
}

// IsVisible returns true if window is currently shown.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Window) runEventLoop() {
	// Snapshot the channels of this incarnation: the struct fields may
	// be replaced by a later Show while this loop is still winding down.
	w.mu.Lock()
	stopCh := w.stopCh
	doneCh := w.doneCh
	w.mu.Unlock()
	defer close(doneCh)

	w.window = new(app.Window)
	w.window.Option(
		app.Title("GhostType - "+i18n.T("settings_title")),
		app.Size(unit.Dp(440), unit.Dp(640)),
		app.MinSize(unit.Dp(400), unit.Dp(520)),
	)

	var ops op.Ops

	// Invalidation goroutine
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				if w.window != nil {
					w.window.Perform(system.ActionClose)
				}
				return
			case <-ticker.C:
				if w.window != nil {
					w.window.Invalidate()
				}
			}
		}
	}()

	for {
		switch e := w.window.Event().(type) {
		case app.DestroyEvent:
			w.mu.Lock()
			if w.stopCh != nil {
				close(w.stopCh)
				w.stopCh = nil
			}
			w.running = false
			w.mu.Unlock()
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.handleEvents(gtx)
			w.draw(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (w *Window) handleEvents(gtx layout.Context) {
	// Handle hotkey edit buttons: clicking starts recording for that
	// action, clicking again cancels.
	for action, btn := range w.editBtns {
		if btn.Clicked(gtx) {
			w.mu.Lock()
			if w.recordingFor == action {
				w.recordingFor = ""
			} else {
				w.recordingFor = action
				w.recordedMods = make(map[config.Modifier]bool)
				w.recordedKey = ""
			}
			w.mu.Unlock()
		}
	}

	// Handle hotkey recording
	if w.isRecording() {
		w.handleHotkeyRecording(gtx)
	}

	// Handle typing mode buttons
	for mode, btn := range w.modeButtons {
		if btn.Clicked(gtx) {
			w.mu.Lock()
			w.selectedMode = mode
			w.mu.Unlock()
		}
	}

	// Handle theme buttons - preview immediately, persist on Apply
	for theme, btn := range w.themeButtons {
		if btn.Clicked(gtx) {
			w.mu.Lock()
			w.selectedTheme = theme
			w.pal = paletteFor(theme)
			w.mu.Unlock()
		}
	}

	// Handle UI language buttons - apply immediately
	for lang, btn := range w.langButtons {
		if btn.Clicked(gtx) {
			w.mu.Lock()
			if w.selectedUILang != lang {
				w.selectedUILang = lang
				i18n.SetLanguage(lang)
				w.config.SetUILanguage(string(lang))
				callback := w.onUILangChange
				w.mu.Unlock()
				if callback != nil {
					callback(lang)
				}
			} else {
				w.mu.Unlock()
			}
		}
	}

	// Handle steppers
	w.handleSteppers(gtx)

	// Handle cancel button
	if w.cancelBtn.Clicked(gtx) {
		w.Hide()
	}

	// Handle apply button
	if w.applyBtn.Clicked(gtx) {
		w.applySettings()
	}
}

func (w *Window) handleSteppers(gtx layout.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.repeatDec.Clicked(gtx) && w.repeats > 1 {
		w.repeats--
	}
	if w.repeatInc.Clicked(gtx) && w.repeats < repeatMax {
		w.repeats++
	}

	if w.countdownDec.Clicked(gtx) && w.countdown > 0 {
		w.countdown--
	}
	if w.countdownInc.Clicked(gtx) && w.countdown < 30 {
		w.countdown++
	}

	// Watchdog skips the 1..4 range: below the minimum it drops to
	// zero (disabled).
	if w.watchdogDec.Clicked(gtx) {
		switch {
		case w.watchdog <= config.WatchdogMinSeconds:
			w.watchdog = 0
		default:
			w.watchdog--
		}
	}
	if w.watchdogInc.Clicked(gtx) {
		switch {
		case w.watchdog == 0:
			w.watchdog = config.WatchdogMinSeconds
		case w.watchdog < config.WatchdogMaxSeconds:
			w.watchdog++
		}
	}
}

func (w *Window) handleHotkeyRecording(gtx layout.Context) {
	for {
		event, ok := gtx.Event(w.hotkeyFilters...)
		if !ok {
			break
		}

		e, ok := event.(key.Event)
		if !ok {
			continue
		}

		w.mu.Lock()

		if e.State == key.Press {
			w.recordedMods = map[config.Modifier]bool{
				config.ModCtrl:  e.Modifiers.Contain(key.ModCtrl),
				config.ModShift: e.Modifiers.Contain(key.ModShift),
				config.ModAlt:   e.Modifiers.Contain(key.ModAlt),
				config.ModSuper: e.Modifiers.Contain(key.ModSuper),
			}

			if e.Name == key.NameEscape {
				// Cancel recording
				w.recordingFor = ""
				w.mu.Unlock()
				return
			}
			if k, ok := keyFromName(e.Name); ok {
				w.recordedKey = k
			}
		}

		hasModifiers := w.recordedMods[config.ModCtrl] || w.recordedMods[config.ModShift] ||
			w.recordedMods[config.ModAlt] || w.recordedMods[config.ModSuper]
		hasKey := w.recordedKey != ""

		// Function keys may be bound bare; anything else needs at
		// least one modifier.
		if e.State == key.Release && hasKey && (hasModifiers || isFunctionKey(w.recordedKey)) {
			var mods []config.Modifier
			for _, m := range config.AvailableModifiers() {
				if w.recordedMods[m] {
					mods = append(mods, m)
				}
			}
			w.hotkeys[w.recordingFor] = config.HotkeyConfig{
				Modifiers: mods,
				Key:       w.recordedKey,
			}
			w.recordingFor = ""
		}

		w.mu.Unlock()
	}
}

// keyFromName maps a Gio key name to a config key.
func keyFromName(name key.Name) (config.Key, bool) {
	switch name {
	case key.NameSpace:
		return config.KeySpace, true
	case key.NameReturn:
		return config.KeyReturn, true
	case key.NameTab:
		return config.KeyTab, true
	case key.NameF1:
		return config.KeyF1, true
	case key.NameF2:
		return config.KeyF2, true
	case key.NameF3:
		return config.KeyF3, true
	case key.NameF4:
		return config.KeyF4, true
	case key.NameF5:
		return config.KeyF5, true
	case key.NameF6:
		return config.KeyF6, true
	case key.NameF7:
		return config.KeyF7, true
	case key.NameF8:
		return config.KeyF8, true
	case key.NameF9:
		return config.KeyF9, true
	case key.NameF10:
		return config.KeyF10, true
	case key.NameF11:
		return config.KeyF11, true
	case key.NameF12:
		return config.KeyF12, true
	}
	// Letter keys (A-Z)
	if len(name) == 1 && name >= "A" && name <= "Z" {
		return config.Key(string(name[0] + 32)), true // lowercase
	}
	return "", false
}

func isFunctionKey(k config.Key) bool {
	switch k {
	case config.KeyF1, config.KeyF2, config.KeyF3, config.KeyF4,
		config.KeyF5, config.KeyF6, config.KeyF7, config.KeyF8,
		config.KeyF9, config.KeyF10, config.KeyF11, config.KeyF12:
		return true
	}
	return false
}

func (w *Window) applySettings() {
	w.mu.Lock()
	baseDelay := sliderToDuration(w.baseSlider.Value, baseDelayMin, baseDelayMax)
	variability := sliderToDuration(w.varSlider.Value, variabilityMin, variabilityMax)
	wordPause := sliderToDuration(w.wordSlider.Value, wordPauseMin, wordPauseMax)
	mode := w.selectedMode
	natural := w.naturalToggle.Value
	confirm := w.confirmToggle.Value
	repeats := w.repeats
	countdown := w.countdown
	watchdog := w.watchdog
	theme := w.selectedTheme
	notifications := w.notifToggle.Value
	keyClicks := w.clicksToggle.Value

	hotkeys := make(map[config.Action]config.HotkeyConfig, len(w.hotkeys))
	for action, hk := range w.hotkeys {
		hotkeys[action] = hk
	}

	applyCallback := w.onApply
	themeCallback := w.onThemeChange
	w.mu.Unlock()

	w.config.SetBaseDelay(baseDelay)
	w.config.SetVariability(variability)
	w.config.SetWordDelay(wordPause)
	w.config.SetTypingMode(mode)
	w.config.SetNaturalTyping(natural)
	w.config.SetRepeatCount(repeats)
	w.config.SetCountdownSeconds(countdown)
	w.config.SetWatchdogSeconds(watchdog)
	w.config.SetConfirmEmergencyStop(confirm)
	w.config.SetNotifications(notifications)
	w.config.SetKeyClicks(keyClicks)

	themeChanged := theme != w.config.Theme()
	w.config.SetTheme(theme)

	// Re-register only the hotkeys that changed. SetHotkey fires the
	// config change hook, the app re-binds there.
	for action, hk := range hotkeys {
		if hk.String() != w.config.Hotkey(action).String() {
			w.config.SetHotkey(action, hk)
		}
	}

	if themeChanged && themeCallback != nil {
		themeCallback(theme)
	}
	if applyCallback != nil {
		applyCallback()
	}

	w.Hide()
}

func (w *Window) isRecording() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.recordingFor != ""
}

func (w *Window) recordingAction() config.Action {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.recordingFor
}

func (w *Window) hotkeyFor(action config.Action) config.HotkeyConfig {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hotkeys[action]
}

func (w *Window) getRecordingState() (map[config.Modifier]bool, config.Key) {
	w.mu.Lock()
	defer w.mu.Unlock()
	modsCopy := make(map[config.Modifier]bool)
	for k, v := range w.recordedMods {
		modsCopy[k] = v
	}
	return modsCopy, w.recordedKey
}

// durationToSlider maps a duration to a normalized slider position.
func durationToSlider(d, min, max time.Duration) float32 {
	if max <= min {
		return 0
	}
	if d < min {
		d = min
	}
	if d > max {
		d = max
	}
	return float32(d-min) / float32(max-min)
}

// sliderToDuration maps a normalized slider position to a duration,
// rounded to whole milliseconds.
func sliderToDuration(pos float32, min, max time.Duration) time.Duration {
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	d := min + time.Duration(float64(pos)*float64(max-min))
	return d.Round(time.Millisecond)
}
