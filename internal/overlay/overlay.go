// Package overlay provides the composer window with typing progress.
package overlay

import (
	"image"
	"image/color"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"

	"ghosttype/internal/i18n"
)

// Status represents the window display state.
type Status int

const (
	StatusCompose   Status = iota // Editing the source text
	StatusCountdown               // Waiting for the countdown
	StatusTyping                  // Typing in progress
	StatusPaused                  // Typing paused
	StatusDone                    // Job finished
	StatusStopped                 // Job stopped early
	StatusFailed                  // Job failed
)

// Config holds window configuration.
type Config struct {
	Width        int           // Window width in pixels
	Height       int           // Window height in pixels
	RefreshRate  time.Duration // Refresh interval
	BGColor      color.NRGBA   // Background color
	TextColor    color.NRGBA   // Text color
	TextDimColor color.NRGBA   // Dim text color
	AccentColor  color.NRGBA   // Accent color (spinner, secondary buttons)
	PanelColor   color.NRGBA   // Panel background
	SuccessColor color.NRGBA   // Done state, primary button
	WarnColor    color.NRGBA   // Paused / stopped state
	DangerColor  color.NRGBA   // Failed state
}

// DarkConfig returns the dark theme configuration.
func DarkConfig() Config {
	return Config{
		Width:        460,
		Height:       320,
		RefreshRate:  33 * time.Millisecond, // ~30fps
		BGColor:      color.NRGBA{R: 30, G: 30, B: 34, A: 245},
		TextColor:    color.NRGBA{R: 240, G: 240, B: 245, A: 255},
		TextDimColor: color.NRGBA{R: 140, G: 140, B: 150, A: 255},
		AccentColor:  color.NRGBA{R: 88, G: 166, B: 255, A: 255},
		PanelColor:   color.NRGBA{R: 45, G: 45, B: 50, A: 255},
		SuccessColor: color.NRGBA{R: 80, G: 200, B: 120, A: 255},
		WarnColor:    color.NRGBA{R: 255, G: 180, B: 0, A: 255},
		DangerColor:  color.NRGBA{R: 255, G: 100, B: 100, A: 255},
	}
}

// LightConfig returns the light theme configuration.
func LightConfig() Config {
	return Config{
		Width:        460,
		Height:       320,
		RefreshRate:  33 * time.Millisecond,
		BGColor:      color.NRGBA{R: 246, G: 246, B: 248, A: 255},
		TextColor:    color.NRGBA{R: 30, G: 30, B: 36, A: 255},
		TextDimColor: color.NRGBA{R: 120, G: 120, B: 130, A: 255},
		AccentColor:  color.NRGBA{R: 50, G: 115, B: 220, A: 255},
		PanelColor:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		SuccessColor: color.NRGBA{R: 60, G: 170, B: 100, A: 255},
		WarnColor:    color.NRGBA{R: 220, G: 150, B: 0, A: 255},
		DangerColor:  color.NRGBA{R: 215, G: 70, B: 70, A: 255},
	}
}

// Window manages the floating composer window.
type Window struct {
	mu     sync.Mutex
	config Config
	status Status

	// Progress state
	countdown int
	typed     int64
	total     int64
	watchdog  bool
	failMsg   string

	editor  widget.Editor
	typeBtn widget.Clickable
	saveBtn widget.Clickable
	loadBtn widget.Clickable

	onType        func(text string) // callback when Type is clicked
	onSaveSnippet func(text string) // callback when Save snippet is clicked
	onLoadSnippet func()            // callback when Load snippet is clicked
	onEmergency   func()            // callback for ESC while a job is active

	window  *app.Window
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a composer window with the given configuration.
func New(cfg Config) *Window {
	w := &Window{config: cfg}
	w.editor = widget.Editor{
		SingleLine: false,
		Submit:     false,
	}
	return w
}

// Show displays the composer window (non-blocking).
func (w *Window) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		if w.window != nil {
			w.window.Invalidate()
		}
		return
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.runEventLoop()
}

// Hide closes the composer window.
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

	// Wait for window to close
	if doneCh != nil {
		select {
		case <-doneCh:
		case <-time.After(time.Second):
		}
	}
}

// SetConfig swaps the color scheme (for theme changes).
func (w *Window) SetConfig(cfg Config) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.config = cfg
	if w.window != nil {
		w.window.Invalidate()
	}
}

// Text returns the current editor content.
func (w *Window) Text() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editor.Text()
}

// SetText replaces the editor content.
func (w *Window) SetText(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.editor.SetText(text)
	if w.window != nil {
		w.window.Invalidate()
	}
}

// SetIdle returns the window to the compose state.
func (w *Window) SetIdle() {
	w.setStatus(StatusCompose)
}

// SetCountdown shows the remaining seconds before typing starts.
func (w *Window) SetCountdown(remaining int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = StatusCountdown
	w.countdown = remaining
	if w.window != nil {
		w.window.Invalidate()
	}
}

// SetTyping switches to the typing-in-progress state. Progress counters
// are left untouched so a pause/resume cycle keeps the bar position.
func (w *Window) SetTyping() {
	w.setStatus(StatusTyping)
}

// SetPaused switches to the paused state.
func (w *Window) SetPaused() {
	w.setStatus(StatusPaused)
}

// SetProgress updates the typed/total counters.
func (w *Window) SetProgress(typed, total int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.typed = typed
	w.total = total
}

// SetDone switches to the finished state.
func (w *Window) SetDone() {
	w.setStatus(StatusDone)
}

// SetStopped switches to the stopped state. watchdog marks a stop
// caused by the time limit rather than the user.
func (w *Window) SetStopped(watchdog bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = StatusStopped
	w.watchdog = watchdog
	if w.window != nil {
		w.window.Invalidate()
	}
}

// SetFailed switches to the failed state with an error message.
func (w *Window) SetFailed(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = StatusFailed
	w.failMsg = msg
	if w.window != nil {
		w.window.Invalidate()
	}
}

func (w *Window) setStatus(s Status) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = s
	if w.window != nil {
		w.window.Invalidate()
	}
}

// OnType sets the callback for when the Type button is clicked.
func (w *Window) OnType(fn func(text string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onType = fn
}

// OnSaveSnippet sets the callback for when Save snippet is clicked.
func (w *Window) OnSaveSnippet(fn func(text string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onSaveSnippet = fn
}

// OnLoadSnippet sets the callback for when Load snippet is clicked.
func (w *Window) OnLoadSnippet(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onLoadSnippet = fn
}

// OnEmergency sets the callback for ESC pressed while a job is active.
func (w *Window) OnEmergency(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onEmergency = fn
}

// IsVisible returns true if window is currently shown.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

const windowTitle = "GhostType - Composer"

func (w *Window) runEventLoop() {
	// Snapshot the channels of this incarnation: the struct fields may
	// be replaced by a later Show while this loop is still winding down.
	w.mu.Lock()
	stopCh := w.stopCh
	doneCh := w.doneCh
	w.mu.Unlock()
	defer close(doneCh)

	// Create window with options
	w.window = new(app.Window)
	w.window.Option(
		app.Title(windowTitle),
		app.Size(unit.Dp(w.config.Width), unit.Dp(w.config.Height)),
		app.MinSize(unit.Dp(360), unit.Dp(240)),
	)

	var ops op.Ops

	// Position window after it appears
	go positionWindow(windowTitle, w.config.Width, w.config.Height)

	// Timer for periodic redraws
	ticker := time.NewTicker(w.config.RefreshRate)
	defer ticker.Stop()

	// Invalidation and close goroutine
	go func() {
		for {
			select {
			case <-stopCh:
				// Close the window properly
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
			// Window closed from the OS side: release the running flag
			// so Show can recreate it.
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

			// Get current state
			w.mu.Lock()
			status := w.status
			cfg := w.config
			w.mu.Unlock()

			w.draw(gtx, status, cfg)
			e.Frame(gtx.Ops)
		}
	}
}

// jobActive reports whether a typing job owns the window.
func jobActive(status Status) bool {
	switch status {
	case StatusCountdown, StatusTyping, StatusPaused:
		return true
	}
	return false
}

func (w *Window) draw(gtx layout.Context, status Status, cfg Config) image.Point {
	// Handle ESC: emergency stop while a job is active
	for {
		event, ok := gtx.Event(key.Filter{Name: key.NameEscape})
		if !ok {
			break
		}
		if e, ok := event.(key.Event); ok && e.State == key.Press {
			if jobActive(status) {
				w.mu.Lock()
				emergencyFn := w.onEmergency
				w.mu.Unlock()
				if emergencyFn != nil {
					go emergencyFn()
				}
			}
		}
	}

	// Handle button clicks
	if w.typeBtn.Clicked(gtx) && !jobActive(status) {
		w.mu.Lock()
		typeFn := w.onType
		w.mu.Unlock()
		if typeFn != nil {
			text := w.editor.Text()
			go typeFn(text)
		}
	}
	if w.saveBtn.Clicked(gtx) {
		w.mu.Lock()
		saveFn := w.onSaveSnippet
		w.mu.Unlock()
		if saveFn != nil {
			text := w.editor.Text()
			go saveFn(text)
		}
	}
	if w.loadBtn.Clicked(gtx) && !jobActive(status) {
		w.mu.Lock()
		loadFn := w.onLoadSnippet
		w.mu.Unlock()
		if loadFn != nil {
			go loadFn()
		}
	}

	// Fill background
	drawBackground(gtx, cfg.BGColor)

	// Main content with padding
	layout.UniformInset(unit.Dp(14)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			// Top row: title + status badge
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawHeader(gtx, status, cfg)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(10)}.Layout),

			// Editable text area
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return drawEditorPanel(gtx, cfg, &w.editor)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(10)}.Layout),

			// Progress strip (only while a job is active)
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawStatusStrip(gtx, status, cfg)
			}),

			// Buttons row
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceEvenly}.Layout(gtx,
					// Type button (primary)
					layout.Flexed(1.4, func(gtx layout.Context) layout.Dimensions {
						return drawActionButton(gtx, &w.typeBtn, cfg, cfg.SuccessColor, i18n.T("composer_type"))
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					// Save snippet (secondary)
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return drawActionButton(gtx, &w.saveBtn, cfg, cfg.AccentColor, i18n.T("composer_save_snippet"))
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					// Load snippet (secondary)
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return drawActionButton(gtx, &w.loadBtn, cfg, cfg.AccentColor, i18n.T("composer_load_snippet"))
					}),
				)
			}),
		)
	})

	return gtx.Constraints.Max
}
