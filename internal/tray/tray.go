// Package tray предоставляет системный трей с меню.
package tray

import (
	"github.com/getlantern/systray"

	"ghosttype/embedded"
	"ghosttype/internal/i18n"
)

// State представляет состояние приложения для отображения в трее.
type State int

const (
	StateIdle State = iota
	StateTyping
	StatePaused
)

// Callbacks содержит обработчики событий меню.
type Callbacks struct {
	OnComposerClick func()
	OnStartClick    func()
	OnPauseClick    func()
	OnStopClick     func()
	OnSettingsClick func()
	OnQuit          func()
}

// Tray управляет иконкой в системном трее.
type Tray struct {
	callbacks   Callbacks
	status      *systray.MenuItem
	composerBtn *systray.MenuItem
	startBtn    *systray.MenuItem
	pauseBtn    *systray.MenuItem
	stopBtn     *systray.MenuItem
	settingsBtn *systray.MenuItem
	quitBtn     *systray.MenuItem
	state       State
}

// New создаёт новый Tray.
func New(callbacks Callbacks) *Tray {
	return &Tray{
		callbacks: callbacks,
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(embedded.IconIdle)
	systray.SetTitle("GhostType")
	systray.SetTooltip(i18n.T("app_tooltip"))

	// Статус
	t.status = systray.AddMenuItem(i18n.T("tray_idle"), "")
	t.status.Disable()

	systray.AddSeparator()

	// Редактор текста
	t.composerBtn = systray.AddMenuItem(i18n.T("tray_composer"), i18n.T("tray_composer_hint"))

	// Управление набором
	t.startBtn = systray.AddMenuItem(i18n.T("tray_start"), i18n.T("tray_start_hint"))
	t.pauseBtn = systray.AddMenuItem(i18n.T("tray_pause"), i18n.T("tray_pause_hint"))
	t.pauseBtn.Disable()
	t.stopBtn = systray.AddMenuItem(i18n.T("tray_stop"), i18n.T("tray_stop_hint"))
	t.stopBtn.Disable()

	systray.AddSeparator()

	// Настройки
	t.settingsBtn = systray.AddMenuItem(i18n.T("tray_settings"), i18n.T("tray_settings_hint"))

	systray.AddSeparator()

	// Выход
	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	// Обработка событий меню
	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		// Редактор
		case <-t.composerBtn.ClickedCh:
			if t.callbacks.OnComposerClick != nil {
				t.callbacks.OnComposerClick()
			}

		// Старт
		case <-t.startBtn.ClickedCh:
			if t.callbacks.OnStartClick != nil {
				t.callbacks.OnStartClick()
			}

		// Пауза / продолжение
		case <-t.pauseBtn.ClickedCh:
			if t.callbacks.OnPauseClick != nil {
				t.callbacks.OnPauseClick()
			}

		// Остановка
		case <-t.stopBtn.ClickedCh:
			if t.callbacks.OnStopClick != nil {
				t.callbacks.OnStopClick()
			}

		// Настройки
		case <-t.settingsBtn.ClickedCh:
			if t.callbacks.OnSettingsClick != nil {
				t.callbacks.OnSettingsClick()
			}

		// Выход
		case <-t.quitBtn.ClickedCh:
			if t.callbacks.OnQuit != nil {
				t.callbacks.OnQuit()
			}
			systray.Quit()
		}
	}
}

// SetState устанавливает состояние приложения и обновляет иконку и меню.
func (t *Tray) SetState(state State) {
	t.state = state
	switch state {
	case StateIdle:
		systray.SetIcon(embedded.IconIdle)
		systray.SetTooltip("GhostType - " + i18n.T("tray_idle"))
		if t.status != nil {
			t.status.SetTitle(i18n.T("tray_idle"))
		}
		if t.startBtn != nil {
			t.startBtn.Enable()
		}
		if t.pauseBtn != nil {
			t.pauseBtn.SetTitle(i18n.T("tray_pause"))
			t.pauseBtn.Disable()
		}
		if t.stopBtn != nil {
			t.stopBtn.Disable()
		}
	case StateTyping:
		systray.SetIcon(embedded.IconTyping)
		systray.SetTooltip("GhostType - " + i18n.T("tray_typing"))
		if t.status != nil {
			t.status.SetTitle(i18n.T("tray_typing"))
		}
		if t.startBtn != nil {
			t.startBtn.Disable()
		}
		if t.pauseBtn != nil {
			t.pauseBtn.SetTitle(i18n.T("tray_pause"))
			t.pauseBtn.Enable()
		}
		if t.stopBtn != nil {
			t.stopBtn.Enable()
		}
	case StatePaused:
		systray.SetIcon(embedded.IconPaused)
		systray.SetTooltip("GhostType - " + i18n.T("tray_paused"))
		if t.status != nil {
			t.status.SetTitle(i18n.T("tray_paused"))
		}
		if t.startBtn != nil {
			t.startBtn.Disable()
		}
		if t.pauseBtn != nil {
			t.pauseBtn.SetTitle(i18n.T("tray_resume"))
			t.pauseBtn.Enable()
		}
		if t.stopBtn != nil {
			t.stopBtn.Enable()
		}
	}
}

func (t *Tray) onExit() {
	// Cleanup при выходе
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}

// RefreshUI обновляет все тексты меню на текущем языке.
func (t *Tray) RefreshUI() {
	systray.SetTooltip(i18n.T("app_tooltip"))

	if t.composerBtn != nil {
		t.composerBtn.SetTitle(i18n.T("tray_composer"))
		t.composerBtn.SetTooltip(i18n.T("tray_composer_hint"))
	}
	if t.startBtn != nil {
		t.startBtn.SetTitle(i18n.T("tray_start"))
		t.startBtn.SetTooltip(i18n.T("tray_start_hint"))
	}
	if t.pauseBtn != nil {
		if t.state == StatePaused {
			t.pauseBtn.SetTitle(i18n.T("tray_resume"))
		} else {
			t.pauseBtn.SetTitle(i18n.T("tray_pause"))
		}
		t.pauseBtn.SetTooltip(i18n.T("tray_pause_hint"))
	}
	if t.stopBtn != nil {
		t.stopBtn.SetTitle(i18n.T("tray_stop"))
		t.stopBtn.SetTooltip(i18n.T("tray_stop_hint"))
	}
	if t.settingsBtn != nil {
		t.settingsBtn.SetTitle(i18n.T("tray_settings"))
		t.settingsBtn.SetTooltip(i18n.T("tray_settings_hint"))
	}
	if t.quitBtn != nil {
		t.quitBtn.SetTitle(i18n.T("tray_quit"))
		t.quitBtn.SetTooltip(i18n.T("tray_quit_hint"))
	}

	// Статус зависит от состояния
	t.SetState(t.state)
}
