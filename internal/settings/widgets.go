package settings

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"time"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"ghosttype/internal/config"
	"ghosttype/internal/i18n"
	"ghosttype/internal/typing"
)

// palette holds the window color scheme.
type palette struct {
	bg         color.NRGBA
	panel      color.NRGBA
	panelLight color.NRGBA
	text       color.NRGBA
	textDim    color.NRGBA
	accent     color.NRGBA
	warning    color.NRGBA
	recording  color.NRGBA
}

func darkPalette() palette {
	return palette{
		bg:         color.NRGBA{R: 30, G: 30, B: 34, A: 255},
		panel:      color.NRGBA{R: 45, G: 45, B: 50, A: 255},
		panelLight: color.NRGBA{R: 55, G: 55, B: 62, A: 255},
		text:       color.NRGBA{R: 240, G: 240, B: 245, A: 255},
		textDim:    color.NRGBA{R: 140, G: 140, B: 150, A: 255},
		accent:     color.NRGBA{R: 88, G: 166, B: 255, A: 255},
		warning:    color.NRGBA{R: 255, G: 180, B: 0, A: 255},
		recording:  color.NRGBA{R: 80, G: 60, B: 20, A: 255},
	}
}

func lightPalette() palette {
	return palette{
		bg:         color.NRGBA{R: 246, G: 246, B: 248, A: 255},
		panel:      color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		panelLight: color.NRGBA{R: 235, G: 235, B: 240, A: 255},
		text:       color.NRGBA{R: 30, G: 30, B: 36, A: 255},
		textDim:    color.NRGBA{R: 120, G: 120, B: 130, A: 255},
		accent:     color.NRGBA{R: 50, G: 115, B: 220, A: 255},
		warning:    color.NRGBA{R: 220, G: 150, B: 0, A: 255},
		recording:  color.NRGBA{R: 250, G: 235, B: 190, A: 255},
	}
}

func paletteFor(theme string) palette {
	if theme == "dark" {
		return darkPalette()
	}
	return lightPalette()
}

func (w *Window) draw(gtx layout.Context) layout.Dimensions {
	w.mu.Lock()
	pal := w.pal
	mode := w.selectedMode
	repeats := w.repeats
	countdown := w.countdown
	watchdog := w.watchdog
	theme := w.selectedTheme
	lang := w.selectedUILang
	w.mu.Unlock()

	// Fill background
	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, pal.bg, rect.Op())

	// Main layout with padding
	return layout.UniformInset(unit.Dp(20)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			// Title (fixed)
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawTitle(gtx, pal)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),

			// Scrollable content area
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				return material.List(th, &w.contentList).Layout(gtx, 1, func(gtx layout.Context, _ int) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						// Timing section
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return w.drawTimingSection(gtx, pal)
						}),

						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

						// Typing section
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return w.drawTypingSection(gtx, pal, mode, repeats, countdown, watchdog)
						}),

						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

						// Hotkeys section
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return w.drawHotkeySection(gtx, pal)
						}),

						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

						// Interface section
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return w.drawInterfaceSection(gtx, pal, theme, lang)
						}),
					)
				})
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Buttons (fixed at bottom)
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawButtons(gtx, pal)
			}),
		)
	})
}

func (w *Window) drawTitle(gtx layout.Context, pal palette) layout.Dimensions {
	th := material.NewTheme()
	th.Palette.Fg = pal.text

	label := material.Label(th, unit.Sp(22), i18n.T("settings_title"))
	label.Font.Weight = font.Bold
	return label.Layout(gtx)
}

func (w *Window) drawSectionHeader(gtx layout.Context, pal palette, text string) layout.Dimensions {
	th := material.NewTheme()
	th.Palette.Fg = pal.textDim

	label := material.Label(th, unit.Sp(12), text)
	label.Font.Weight = font.Medium
	return label.Layout(gtx)
}

func (w *Window) drawPanel(gtx layout.Context, pal palette, content layout.Widget) layout.Dimensions {
	// First layout content to get its size
	macro := op.Record(gtx.Ops)
	dims := layout.UniformInset(unit.Dp(16)).Layout(gtx, content)
	call := macro.Stop()

	// Draw background with content size
	rr := gtx.Dp(unit.Dp(12))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, pal.panel, rect.Op(gtx.Ops))

	// Replay content drawing
	call.Add(gtx.Ops)

	return dims
}

// --- Timing section ---

func (w *Window) drawTimingSection(gtx layout.Context, pal palette) layout.Dimensions {
	return w.drawPanel(gtx, pal, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, pal, i18n.T("settings_timing"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSliderRow(gtx, pal, i18n.T("settings_base_delay"),
					&w.baseSlider, baseDelayMin, baseDelayMax)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSliderRow(gtx, pal, i18n.T("settings_variability"),
					&w.varSlider, variabilityMin, variabilityMax)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSliderRow(gtx, pal, i18n.T("settings_word_pause"),
					&w.wordSlider, wordPauseMin, wordPauseMax)
			}),
		)
	})
}

// drawSliderRow renders a labeled slider with a live millisecond value.
func (w *Window) drawSliderRow(gtx layout.Context, pal palette, label string, fl *widget.Float, min, max time.Duration) layout.Dimensions {
	value := sliderToDuration(fl.Value, min, max)

	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(90))
			th := material.NewTheme()
			th.Palette.Fg = pal.textDim
			lbl := material.Label(th, unit.Sp(13), label)
			return lbl.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			sl := material.Slider(th, fl)
			sl.Color = pal.accent
			return sl.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(56))
			th := material.NewTheme()
			th.Palette.Fg = pal.text
			lbl := material.Label(th, unit.Sp(13), fmt.Sprintf("%d ms", value.Milliseconds()))
			lbl.Font.Weight = font.Medium
			return lbl.Layout(gtx)
		}),
	)
}

// --- Typing section ---

func (w *Window) drawTypingSection(gtx layout.Context, pal palette, mode typing.Mode, repeats, countdown, watchdog int) layout.Dimensions {
	return w.drawPanel(gtx, pal, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, pal, i18n.T("settings_typing"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Mode selector
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						th := material.NewTheme()
						th.Palette.Fg = pal.textDim
						lbl := material.Label(th, unit.Sp(14), i18n.T("settings_mode"))
						return lbl.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return w.drawChoiceButton(gtx, pal, w.modeButtons[typing.ModeCharacter],
							i18n.T("settings_mode_character"), mode == typing.ModeCharacter)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return w.drawChoiceButton(gtx, pal, w.modeButtons[typing.ModeWord],
							i18n.T("settings_mode_word"), mode == typing.ModeWord)
					}),
				)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Natural rhythm toggle
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawToggleRow(gtx, pal, &w.naturalToggle,
					i18n.T("settings_natural"), i18n.T("settings_natural_hint"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Steppers
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawStepperRow(gtx, pal, i18n.T("settings_repeats"),
					strconv.Itoa(repeats), &w.repeatDec, &w.repeatInc, "")
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawStepperRow(gtx, pal, i18n.T("settings_countdown"),
					strconv.Itoa(countdown), &w.countdownDec, &w.countdownInc, "")
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				value := strconv.Itoa(watchdog)
				if watchdog == 0 {
					value = "0"
				}
				return w.drawStepperRow(gtx, pal, i18n.T("settings_watchdog"),
					value, &w.watchdogDec, &w.watchdogInc, i18n.T("settings_watchdog_hint"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Emergency stop confirmation toggle
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawToggleRow(gtx, pal, &w.confirmToggle,
					i18n.T("settings_confirm_emergency"), "")
			}),
		)
	})
}

// drawToggleRow renders a switch with a label and optional hint.
func (w *Window) drawToggleRow(gtx layout.Context, pal palette, toggle *widget.Bool, label, hint string) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		// Toggle
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			sw := material.Switch(th, toggle, "")
			sw.Color.Enabled = pal.accent
			sw.Color.Disabled = pal.panelLight
			return sw.Layout(gtx)
		}),

		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),

		// Description
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					th := material.NewTheme()
					th.Palette.Fg = pal.text
					lbl := material.Label(th, unit.Sp(14), label)
					lbl.Font.Weight = font.Medium
					return lbl.Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if hint == "" {
						return layout.Dimensions{}
					}
					th := material.NewTheme()
					th.Palette.Fg = pal.textDim
					lbl := material.Label(th, unit.Sp(11), hint)
					return lbl.Layout(gtx)
				}),
			)
		}),
	)
}

// drawStepperRow renders a labeled value with -/+ buttons.
func (w *Window) drawStepperRow(gtx layout.Context, pal palette, label, value string, dec, inc *widget.Clickable, hint string) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = pal.textDim
			lbl := material.Label(th, unit.Sp(14), label)
			return lbl.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawStepperButton(gtx, pal, dec, "−")
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(44))
			th := material.NewTheme()
			th.Palette.Fg = pal.text
			lbl := material.Label(th, unit.Sp(15), value)
			lbl.Font.Weight = font.Medium
			lbl.Alignment = 1 // Center
			return lbl.Layout(gtx)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawStepperButton(gtx, pal, inc, "+")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(10)}.Layout),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			if hint == "" {
				return layout.Dimensions{}
			}
			th := material.NewTheme()
			th.Palette.Fg = pal.textDim
			lbl := material.Label(th, unit.Sp(11), hint)
			return lbl.Layout(gtx)
		}),
	)
}

func (w *Window) drawStepperButton(gtx layout.Context, pal palette, btn *widget.Clickable, label string) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
		size := gtx.Dp(unit.Dp(26))
		gtx.Constraints.Min = image.Pt(size, size)
		gtx.Constraints.Max = gtx.Constraints.Min
		return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = pal.text
			lbl := material.Label(th, unit.Sp(15), label)
			lbl.Font.Weight = font.Bold
			return lbl.Layout(gtx)
		})
	})
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(6))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, pal.panelLight, rect.Op(gtx.Ops))

	call.Add(gtx.Ops)
	return dims
}

// --- Hotkeys section ---

func (w *Window) drawHotkeySection(gtx layout.Context, pal palette) layout.Dimensions {
	labels := map[config.Action]string{
		config.ActionStart:     i18n.T("settings_hotkey_start"),
		config.ActionPause:     i18n.T("settings_hotkey_pause"),
		config.ActionEmergency: i18n.T("settings_hotkey_emergency"),
	}

	return w.drawPanel(gtx, pal, func(gtx layout.Context) layout.Dimensions {
		children := []layout.FlexChild{
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, pal, i18n.T("settings_hotkeys"))
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		}

		for i, action := range settingsActions() {
			action := action // capture
			if i > 0 {
				children = append(children, layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout))
			}
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawHotkeyRow(gtx, pal, action, labels[action])
			}))
		}

		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
}

func (w *Window) drawHotkeyRow(gtx layout.Context, pal palette, action config.Action, label string) layout.Dimensions {
	isRecording := w.recordingAction() == action

	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(110))
			th := material.NewTheme()
			th.Palette.Fg = pal.textDim
			lbl := material.Label(th, unit.Sp(13), label)
			return lbl.Layout(gtx)
		}),

		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),

		// Current hotkey preview
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return w.drawHotkeyPreview(gtx, pal, action, isRecording)
		}),

		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),

		// Edit button
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if isRecording {
				return w.drawButton(gtx, pal, w.editBtns[action], i18n.T("settings_hotkey_cancel"), pal.warning)
			}
			return w.drawButton(gtx, pal, w.editBtns[action], i18n.T("settings_hotkey_edit"), pal.accent)
		}),
	)
}

func (w *Window) drawHotkeyPreview(gtx layout.Context, pal palette, action config.Action, isRecording bool) layout.Dimensions {
	var hotkeyStr string
	var textColor color.NRGBA
	var bgColor color.NRGBA

	if isRecording {
		// Show recording state
		mods, recKey := w.getRecordingState()
		parts := buildHotkeyParts(mods, recKey)

		if len(parts) > 0 {
			hotkeyStr = joinParts(parts)
		} else {
			hotkeyStr = i18n.T("settings_hotkey_prompt")
		}
		textColor = pal.warning
		bgColor = pal.recording
	} else {
		// Show the pending hotkey for this action
		hk := w.hotkeyFor(action)
		mods := make(map[config.Modifier]bool)
		for _, m := range hk.Modifiers {
			mods[m] = true
		}
		parts := buildHotkeyParts(mods, hk.Key)

		if len(parts) > 0 {
			hotkeyStr = joinParts(parts)
		} else {
			hotkeyStr = i18n.T("settings_hotkey_not_set")
		}
		textColor = pal.accent
		bgColor = pal.panelLight
	}

	// Record content to measure size
	macro := op.Record(gtx.Ops)
	dims := layout.Inset{
		Top: unit.Dp(8), Bottom: unit.Dp(8),
		Left: unit.Dp(12), Right: unit.Dp(12),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		th := material.NewTheme()
		th.Palette.Fg = textColor
		label := material.Label(th, unit.Sp(14), hotkeyStr)
		label.Font.Weight = font.Medium
		return label.Layout(gtx)
	})
	call := macro.Stop()

	// Draw background with measured size
	rr := gtx.Dp(unit.Dp(8))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, bgColor, rect.Op(gtx.Ops))

	// Replay content
	call.Add(gtx.Ops)

	return dims
}

func joinParts(parts []string) string {
	s := ""
	for i, p := range parts {
		if i > 0 {
			s += " + "
		}
		s += p
	}
	return s
}

func buildHotkeyParts(mods map[config.Modifier]bool, key config.Key) []string {
	parts := []string{}

	if mods[config.ModCtrl] {
		parts = append(parts, "Ctrl")
	}
	if mods[config.ModShift] {
		parts = append(parts, "Shift")
	}
	if mods[config.ModAlt] {
		parts = append(parts, "Alt")
	}
	if mods[config.ModSuper] {
		parts = append(parts, "Super")
	}

	keyName := keyDisplayName(key)
	if keyName != "" {
		parts = append(parts, keyName)
	}

	return parts
}

func keyDisplayName(key config.Key) string {
	switch key {
	case "":
		return ""
	case config.KeySpace:
		return "Space"
	case config.KeyReturn:
		return "Enter"
	case config.KeyTab:
		return "Tab"
	case config.KeyEsc:
		return "Esc"
	}
	if isFunctionKey(key) {
		return "F" + string(key[1:])
	}
	if len(key) == 1 {
		return string(key[0] - 32) // uppercase letter
	}
	return string(key)
}

// --- Interface section ---

func (w *Window) drawInterfaceSection(gtx layout.Context, pal palette, theme string, lang i18n.Language) layout.Dimensions {
	return w.drawPanel(gtx, pal, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, pal, i18n.T("settings_interface"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Theme selector
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						th := material.NewTheme()
						th.Palette.Fg = pal.textDim
						lbl := material.Label(th, unit.Sp(14), i18n.T("settings_theme"))
						return lbl.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return w.drawChoiceButton(gtx, pal, w.themeButtons["light"],
							i18n.T("settings_theme_light"), theme == "light")
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return w.drawChoiceButton(gtx, pal, w.themeButtons["dark"],
							i18n.T("settings_theme_dark"), theme == "dark")
					}),
				)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Language selector
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						th := material.NewTheme()
						th.Palette.Fg = pal.textDim
						lbl := material.Label(th, unit.Sp(14), i18n.T("settings_ui_language"))
						return lbl.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return w.drawChoiceButton(gtx, pal, w.langButtons[i18n.EN],
							i18n.LanguageName(i18n.EN), lang == i18n.EN)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return w.drawChoiceButton(gtx, pal, w.langButtons[i18n.RU],
							i18n.LanguageName(i18n.RU), lang == i18n.RU)
					}),
				)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Notifications toggle
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawToggleRow(gtx, pal, &w.notifToggle, i18n.T("settings_notifications"), "")
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Key clicks toggle
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawToggleRow(gtx, pal, &w.clicksToggle, i18n.T("settings_key_clicks"), "")
			}),
		)
	})
}

// drawChoiceButton renders a pill button that highlights when selected.
func (w *Window) drawChoiceButton(gtx layout.Context, pal palette, btn *widget.Clickable, label string, selected bool) layout.Dimensions {
	bgColor := pal.panelLight
	textColor := pal.textDim
	if selected {
		bgColor = pal.accent
		textColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	// Record content to measure size
	macro := op.Record(gtx.Ops)
	dims := material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{
			Top: unit.Dp(8), Bottom: unit.Dp(8),
			Left: unit.Dp(16), Right: unit.Dp(16),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = textColor
			lbl := material.Label(th, unit.Sp(14), label)
			lbl.Font.Weight = font.Medium
			return lbl.Layout(gtx)
		})
	})
	call := macro.Stop()

	// Draw background
	rr := gtx.Dp(unit.Dp(6))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, bgColor, rect.Op(gtx.Ops))

	// Replay content
	call.Add(gtx.Ops)

	return dims
}

// --- Bottom buttons ---

func (w *Window) drawButtons(gtx layout.Context, pal palette) layout.Dimensions {
	return layout.Flex{
		Axis:      layout.Horizontal,
		Alignment: layout.Middle,
	}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Dimensions{}
		}),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawButton(gtx, pal, &w.cancelBtn, i18n.T("settings_cancel"), pal.panelLight)
		}),

		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawButton(gtx, pal, &w.applyBtn, i18n.T("settings_apply"), pal.accent)
		}),
	)
}

func (w *Window) drawButton(gtx layout.Context, pal palette, btn *widget.Clickable, label string, bgColor color.NRGBA) layout.Dimensions {
	textColor := pal.text
	if bgColor == pal.accent || bgColor == pal.warning {
		textColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	macro := op.Record(gtx.Ops)
	dims := material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{
			Top: unit.Dp(10), Bottom: unit.Dp(10),
			Left: unit.Dp(20), Right: unit.Dp(20),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = textColor
			lbl := material.Label(th, unit.Sp(14), label)
			lbl.Font.Weight = font.Medium
			return lbl.Layout(gtx)
		})
	})
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(8))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, bgColor, rect.Op(gtx.Ops))

	call.Add(gtx.Ops)
	return dims
}
