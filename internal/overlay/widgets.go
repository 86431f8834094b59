package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"
	"unicode/utf8"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"ghosttype/internal/i18n"
)

// drawBackground draws a rectangle background.
func drawBackground(gtx layout.Context, col color.NRGBA) {
	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, col, rect.Op())
}

// drawHeader draws the title row with a status badge on the right.
func (w *Window) drawHeader(gtx layout.Context, status Status, cfg Config) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		// Title
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = cfg.TextColor
			lbl := material.Label(th, unit.Sp(17), i18n.T("composer_title"))
			lbl.Font.Weight = font.Medium
			return lbl.Layout(gtx)
		}),
		// Spacer
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Dimensions{}
		}),
		// Status badge or character count
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if status == StatusCompose {
				count := utf8.RuneCountInString(w.editor.Text())
				th := material.NewTheme()
				th.Palette.Fg = cfg.TextDimColor
				lbl := material.Label(th, unit.Sp(12), fmt.Sprintf("%d", count))
				return lbl.Layout(gtx)
			}
			text, col := statusBadge(status, cfg)
			return drawBadge(gtx, cfg, text, col)
		}),
	)
}

// statusBadge maps a status to badge text and color.
func statusBadge(status Status, cfg Config) (string, color.NRGBA) {
	switch status {
	case StatusCountdown:
		return i18n.T("composer_countdown"), cfg.AccentColor
	case StatusTyping:
		return i18n.T("composer_typing"), cfg.SuccessColor
	case StatusPaused:
		return i18n.T("composer_paused"), cfg.WarnColor
	case StatusDone:
		return i18n.T("composer_done"), cfg.SuccessColor
	case StatusStopped:
		return i18n.T("composer_stopped"), cfg.WarnColor
	case StatusFailed:
		return i18n.T("composer_failed"), cfg.DangerColor
	default:
		return "", cfg.TextDimColor
	}
}

// drawBadge draws text in a rounded colored badge.
func drawBadge(gtx layout.Context, cfg Config, text string, col color.NRGBA) layout.Dimensions {
	// Record content to measure
	macro := op.Record(gtx.Ops)
	dims := layout.Inset{
		Top: unit.Dp(3), Bottom: unit.Dp(3),
		Left: unit.Dp(10), Right: unit.Dp(10),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		th := material.NewTheme()
		th.Palette.Fg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		lbl := material.Label(th, unit.Sp(12), text)
		lbl.Font.Weight = font.Bold
		return lbl.Layout(gtx)
	})
	call := macro.Stop()

	// Draw background
	rr := gtx.Dp(unit.Dp(6))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, col, rect.Op(gtx.Ops))

	call.Add(gtx.Ops)
	return dims
}

// drawStatusStrip draws the progress area shown while a job is active
// or has just finished. Empty in the compose state.
func (w *Window) drawStatusStrip(gtx layout.Context, status Status, cfg Config) layout.Dimensions {
	if status == StatusCompose {
		return layout.Dimensions{}
	}

	w.mu.Lock()
	countdown := w.countdown
	typed := w.typed
	total := w.total
	watchdog := w.watchdog
	failMsg := w.failMsg
	w.mu.Unlock()

	return layout.Inset{Bottom: unit.Dp(10)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			// Progress bar (or pulsing dot row during countdown)
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if status == StatusCountdown {
					return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return drawPulsingDot(gtx, cfg.AccentColor)
						}),
						layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							th := material.NewTheme()
							th.Palette.Fg = cfg.TextColor
							text := fmt.Sprintf("%s %d", i18n.T("composer_countdown"), countdown)
							lbl := material.Label(th, unit.Sp(13), text)
							lbl.Font.Weight = font.Medium
							return lbl.Layout(gtx)
						}),
					)
				}
				return drawProgressBar(gtx, cfg, typed, total, status)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),

			// Caption row: typed/total + hints
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						th := material.NewTheme()
						th.Palette.Fg = cfg.TextDimColor
						text := stripCaption(status, typed, total, watchdog, failMsg)
						lbl := material.Label(th, unit.Sp(11), text)
						return lbl.Layout(gtx)
					}),
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return layout.Dimensions{}
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						if !jobActive(status) {
							return layout.Dimensions{}
						}
						th := material.NewTheme()
						th.Palette.Fg = cfg.TextDimColor
						lbl := material.Label(th, unit.Sp(11), i18n.T("composer_esc_hint"))
						return lbl.Layout(gtx)
					}),
				)
			}),
		)
	})
}

// stripCaption builds the small text under the progress bar.
func stripCaption(status Status, typed, total int64, watchdog bool, failMsg string) string {
	switch status {
	case StatusCountdown:
		return i18n.T("countdown_hint")
	case StatusFailed:
		if failMsg != "" {
			return failMsg
		}
		return i18n.T("composer_failed")
	case StatusStopped:
		if watchdog {
			return fmt.Sprintf("%d / %d - %s", typed, total, i18n.T("notify_stopped_watchdog"))
		}
		return fmt.Sprintf("%d / %d", typed, total)
	default:
		return fmt.Sprintf("%d / %d", typed, total)
	}
}

// drawProgressBar renders the horizontal typing progress bar.
func drawProgressBar(gtx layout.Context, cfg Config, typed, total int64, status Status) layout.Dimensions {
	width := gtx.Constraints.Max.X
	height := gtx.Dp(unit.Dp(8))

	// Background track
	rr := gtx.Dp(unit.Dp(4))
	track := clip.RRect{
		Rect: image.Rectangle{Max: image.Pt(width, height)},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, cfg.PanelColor, track.Op(gtx.Ops))

	// Filled portion
	if total > 0 {
		frac := float64(typed) / float64(total)
		if frac > 1 {
			frac = 1
		}
		fillWidth := int(frac * float64(width))
		if fillWidth > 0 {
			barColor := cfg.SuccessColor
			switch status {
			case StatusPaused, StatusStopped:
				barColor = cfg.WarnColor
			case StatusFailed:
				barColor = cfg.DangerColor
			}
			bar := clip.RRect{
				Rect: image.Rectangle{Max: image.Pt(fillWidth, height)},
				NE:   rr, NW: rr, SE: rr, SW: rr,
			}
			paint.FillShape(gtx.Ops, barColor, bar.Op(gtx.Ops))
		}
	}

	return layout.Dimensions{Size: image.Pt(width, height)}
}

// drawPulsingDot draws a pulsing attention indicator.
func drawPulsingDot(gtx layout.Context, col color.NRGBA) layout.Dimensions {
	size := gtx.Dp(unit.Dp(10))

	// Pulsing effect
	ms := time.Now().UnixMilli()
	pulse := float32(math.Sin(float64(ms)/200.0)*0.3 + 0.7)
	alpha := uint8(float32(col.A) * pulse)
	pulseCol := color.NRGBA{R: col.R, G: col.G, B: col.B, A: alpha}

	circle := clip.Ellipse{
		Min: image.Pt(0, 0),
		Max: image.Pt(size, size),
	}
	paint.FillShape(gtx.Ops, pulseCol, circle.Op(gtx.Ops))

	return layout.Dimensions{Size: image.Pt(size, size)}
}

// drawEditorPanel draws the panel with editable text.
func drawEditorPanel(gtx layout.Context, cfg Config, editor *widget.Editor) layout.Dimensions {
	// Draw panel background
	rr := gtx.Dp(unit.Dp(10))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: image.Pt(gtx.Constraints.Max.X, gtx.Constraints.Max.Y)},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, cfg.PanelColor, rect.Op(gtx.Ops))

	// Draw editor with padding
	return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		th := material.NewTheme()
		th.Palette.Fg = cfg.TextColor

		ed := material.Editor(th, editor, i18n.T("composer_placeholder"))
		ed.TextSize = unit.Sp(15)
		ed.Color = cfg.TextColor
		ed.HintColor = cfg.TextDimColor

		return ed.Layout(gtx)
	})
}

// drawActionButton draws an action button with text.
func drawActionButton(gtx layout.Context, btn *widget.Clickable, cfg Config, bgColor color.NRGBA, text string) layout.Dimensions {
	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		// Hover effect
		currentBg := bgColor
		if btn.Hovered() {
			// Darken on hover
			currentBg = color.NRGBA{
				R: uint8(float32(bgColor.R) * 0.85),
				G: uint8(float32(bgColor.G) * 0.85),
				B: uint8(float32(bgColor.B) * 0.85),
				A: bgColor.A,
			}
		}

		// Record content to measure
		macro := op.Record(gtx.Ops)
		dims := layout.Inset{
			Top: unit.Dp(9), Bottom: unit.Dp(9),
			Left: unit.Dp(10), Right: unit.Dp(10),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				th.Palette.Fg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
				lbl := material.Label(th, unit.Sp(13), text)
				lbl.Font.Weight = font.Medium
				return lbl.Layout(gtx)
			})
		})
		call := macro.Stop()

		// Draw button background
		rr := gtx.Dp(unit.Dp(8))
		btnRect := clip.RRect{
			Rect: image.Rectangle{Max: image.Pt(gtx.Constraints.Max.X, dims.Size.Y)},
			NE:   rr, NW: rr, SE: rr, SW: rr,
		}
		paint.FillShape(gtx.Ops, currentBg, btnRect.Op(gtx.Ops))

		call.Add(gtx.Ops)
		return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, dims.Size.Y)}
	})
}
