// Package countdown provides a small pre-typing countdown window.
package countdown

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"ghosttype/internal/i18n"
)

var (
	colorBG     = color.NRGBA{R: 30, G: 30, B: 34, A: 255}
	colorText   = color.NRGBA{R: 240, G: 240, B: 245, A: 255}
	colorDim    = color.NRGBA{R: 140, G: 140, B: 150, A: 255}
	colorAccent = color.NRGBA{R: 88, G: 166, B: 255, A: 255}
)

// Window shows the seconds left before typing starts so the user
// has time to focus the target application.
type Window struct {
	mu      sync.Mutex
	window  *app.Window
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	remaining int
}

// New creates a new countdown window.
func New() *Window {
	return &Window{}
}

// Show displays the countdown window.
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

	go w.runEventLoop()
}

// Hide closes the countdown window.
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

// SetRemaining updates the number of seconds shown.
func (w *Window) SetRemaining(seconds int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.remaining = seconds
}

func (w *Window) getRemaining() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.remaining
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
		app.Title(i18n.T("countdown_title")),
		app.Size(unit.Dp(220), unit.Dp(170)),
		app.MinSize(unit.Dp(220), unit.Dp(170)),
		app.MaxSize(unit.Dp(220), unit.Dp(170)),
		app.Decorated(false), // Borderless
	)

	var ops op.Ops

	// Invalidation goroutine
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
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
			w.draw(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (w *Window) draw(gtx layout.Context) layout.Dimensions {
	// Fill background
	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, colorBG, rect.Op())

	remaining := w.getRemaining()

	// Center content
	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			// Seconds left inside an animated ring
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawRing(gtx, remaining)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(10)}.Layout),

			// Hint text
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				th.Palette.Fg = colorDim
				lbl := material.Label(th, unit.Sp(11), i18n.T("countdown_hint"))
				lbl.Alignment = 1 // Center
				return lbl.Layout(gtx)
			}),
		)
	})
}

// drawRing draws the remaining seconds surrounded by rotating dots.
func (w *Window) drawRing(gtx layout.Context, remaining int) layout.Dimensions {
	size := gtx.Dp(unit.Dp(80))
	thickness := gtx.Dp(unit.Dp(3))

	// Animated rotation based on time
	now := time.Now()
	angle := float64(now.UnixMilli()%1500) / 1500.0 * 2 * math.Pi

	center := image.Pt(size/2, size/2)
	radius := size/2 - thickness

	numSegments := 12
	for i := 0; i < numSegments; i++ {
		segmentAngle := angle + float64(i)*2*math.Pi/float64(numSegments)
		alpha := uint8(255 - i*20)

		x := center.X + int(float64(radius)*math.Cos(segmentAngle))
		y := center.Y + int(float64(radius)*math.Sin(segmentAngle))

		dotRadius := thickness / 2
		dot := clip.Ellipse{
			Min: image.Pt(x-dotRadius, y-dotRadius),
			Max: image.Pt(x+dotRadius, y+dotRadius),
		}
		col := color.NRGBA{R: colorAccent.R, G: colorAccent.G, B: colorAccent.B, A: alpha}
		paint.FillShape(gtx.Ops, col, dot.Op(gtx.Ops))
	}

	// Big digit in the middle of the ring
	macro := op.Record(gtx.Ops)
	th := material.NewTheme()
	th.Palette.Fg = colorText
	lbl := material.Label(th, unit.Sp(40), strconv.Itoa(remaining))
	lbl.Font.Weight = font.Bold
	digitGtx := gtx
	digitGtx.Constraints = layout.Constraints{Max: image.Pt(size, size)}
	dims := lbl.Layout(digitGtx)
	call := macro.Stop()

	offset := image.Pt(center.X-dims.Size.X/2, center.Y-dims.Size.Y/2)
	trans := op.Offset(offset).Push(gtx.Ops)
	call.Add(gtx.Ops)
	trans.Pop()

	return layout.Dimensions{Size: image.Pt(size, size)}
}
