// Package app содержит основную логику приложения: связывает движок
// набора, трей, окна, глобальные хоткеи, звук и уведомления.
package app

import (
	"errors"
	"log"
	"strings"
	"sync"

	"ghosttype/internal/config"
	"ghosttype/internal/countdown"
	"ghosttype/internal/dialog"
	"ghosttype/internal/feedback"
	"ghosttype/internal/hotkey"
	"ghosttype/internal/i18n"
	"ghosttype/internal/input"
	"ghosttype/internal/notify"
	"ghosttype/internal/overlay"
	"ghosttype/internal/settings"
	"ghosttype/internal/snippets"
	"ghosttype/internal/tray"
	"ghosttype/internal/typing"
)

// App представляет главное приложение.
type App struct {
	mu     sync.Mutex
	config *config.Config

	engine   *typing.Engine
	snippets *snippets.Store
	notifier *notify.Notifier
	clicker  *feedback.Clicker
	hotkeys  *hotkey.Registry

	tray         *tray.Tray
	composer     *overlay.Window
	settingsWin  *settings.Window
	countdownWin *countdown.Window

	// lastText - текст последнего запущенного задания, для уведомления
	// о завершении
	lastText string
	// confirming - защита от параллельных диалогов подтверждения
	confirming bool
}

// New создаёт новое приложение.
func New() (*App, error) {
	cfg := config.New()

	// Инициализируем язык интерфейса из конфига
	if uiLang := cfg.UILanguage(); uiLang != "" {
		i18n.SetLanguage(i18n.Language(uiLang))
	}

	injector, err := input.New()
	if err != nil {
		return nil, err
	}

	// Звук нажатий - вспомогательная функция: без аудиоустройства
	// приложение продолжает работать молча
	clicker, err := feedback.New(cfg.KeyClicksEnabled())
	if err != nil {
		log.Printf("Звук нажатий недоступен: %v", err)
		clicker = nil
	}

	a := &App{
		config:   cfg,
		snippets: snippets.New(),
		notifier: notify.New(cfg.NotificationsEnabled()),
		clicker:  clicker,
		hotkeys:  hotkey.NewRegistry(),
	}

	a.engine = typing.New(injector, typing.Callbacks{
		OnState:     a.onEngineState,
		OnCountdown: a.onCountdown,
		OnProgress:  a.onProgress,
		OnCompleted: a.onCompleted,
		OnStopped:   a.onStopped,
		OnFailed:    a.onFailed,
	})

	a.countdownWin = countdown.New()

	a.composer = overlay.New(overlayConfig(cfg.Theme()))
	a.composer.OnType(a.startTyping)
	a.composer.OnSaveSnippet(a.saveSnippet)
	a.composer.OnLoadSnippet(a.loadSnippet)
	a.composer.OnEmergency(a.emergencyStop)

	a.settingsWin = settings.New(cfg)
	a.settingsWin.OnApply(a.applySettings)
	a.settingsWin.OnUILangChange(func(i18n.Language) {
		a.tray.RefreshUI()
	})
	a.settingsWin.OnThemeChange(func(theme string) {
		a.composer.SetConfig(overlayConfig(theme))
	})

	// Смена хоткея в настройках перепривязывает его на лету
	cfg.OnHotkeyChange(func(action config.Action, hk config.HotkeyConfig) {
		if err := a.hotkeys.Rebind(action, hk); err != nil {
			log.Printf("Не удалось перепривязать хоткей %s: %v", action, err)
			a.notifier.Error(i18n.T("error_hotkey_register"))
		}
	})

	a.tray = tray.New(tray.Callbacks{
		OnComposerClick: a.composer.Show,
		OnStartClick:    a.startFromComposer,
		OnPauseClick:    a.engine.TogglePause,
		OnStopClick:     a.engine.Stop,
		OnSettingsClick: a.settingsWin.Show,
		OnQuit:          a.Close,
	})

	return a, nil
}

// overlayConfig возвращает конфигурацию окна композера для темы.
func overlayConfig(theme string) overlay.Config {
	if theme == "dark" {
		return overlay.DarkConfig()
	}
	return overlay.LightConfig()
}

// Run запускает приложение. Блокируется до выхода из трея.
func (a *App) Run() {
	a.tray.Run(func() {
		a.registerHotkeys()
		if a.config.KeyClicksEnabled() {
			a.startClicker()
		}
		a.composer.Show()
		a.notifier.Ready()
		log.Printf("GhostType готов")
	})
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	log.Println("Завершение работы...")

	a.engine.Stop()
	a.hotkeys.UnregisterAll()

	a.countdownWin.Hide()
	a.composer.Hide()
	a.settingsWin.Hide()

	if a.clicker != nil {
		a.clicker.Close()
	}
}

// registerHotkeys привязывает глобальные хоткеи из конфигурации.
// Ошибка одного хоткея не мешает остальным.
func (a *App) registerHotkeys() {
	bindings := []struct {
		action  config.Action
		trigger func()
	}{
		{config.ActionStart, a.startFromComposer},
		{config.ActionPause, a.engine.TogglePause},
		{config.ActionEmergency, a.emergencyStop},
	}

	for _, b := range bindings {
		hk := a.config.Hotkey(b.action)
		if err := a.hotkeys.Bind(b.action, hk, b.trigger); err != nil {
			log.Printf("Не удалось зарегистрировать хоткей %s (%s): %v",
				b.action, hk.String(), err)
			a.notifier.Error(i18n.T("error_hotkey_register"))
			continue
		}
		log.Printf("Хоткей %s: %s", b.action, hk.String())
	}
}

// startFromComposer запускает набор текста из композера. Общий триггер
// для пункта меню, кнопки Start и глобального хоткея.
func (a *App) startFromComposer() {
	a.startTyping(a.composer.Text())
}

// startTyping собирает задание из конфигурации и передаёт движку.
func (a *App) startTyping(text string) {
	req := typing.Request{
		Job: typing.Job{
			Text:    text,
			Repeats: a.config.RepeatCount(),
			Mode:    a.config.TypingMode(),
		},
		Policy:    a.config.Policy(),
		Countdown: a.config.Countdown(),
		Watchdog:  a.config.Watchdog(),
	}

	a.mu.Lock()
	a.lastText = text
	a.mu.Unlock()

	if _, err := a.engine.Start(req); err != nil {
		log.Printf("Не удалось начать набор: %v", err)
		switch {
		case errors.Is(err, typing.ErrEmptyText):
			dialog.ShowError(i18n.T("app_name"), i18n.T("error_empty_text"))
		case errors.Is(err, typing.ErrJobActive):
			a.notifier.Error(i18n.T("error_job_active"))
		default:
			dialog.ShowError(i18n.T("app_name"), err.Error())
		}
		return
	}

	// Сбрасываем прогресс-бар под новое задание до первого OnProgress
	a.composer.SetProgress(0, req.Job.TotalUnits())
	a.notifier.Started()
	log.Printf("Набор запущен: %d единиц, режим %s", req.Job.TotalUnits(), req.Job.Mode)
}

// emergencyStop обрабатывает аварийную остановку. При включённом
// подтверждении набор приостанавливается на время диалога и
// возобновляется при отказе.
func (a *App) emergencyStop() {
	if !jobActive(a.engine.State()) {
		return
	}

	if !a.config.ConfirmEmergencyStop() {
		a.engine.EmergencyStop()
		return
	}

	a.mu.Lock()
	if a.confirming {
		a.mu.Unlock()
		return
	}
	a.confirming = true
	a.mu.Unlock()

	a.engine.Pause()
	confirmed := dialog.ConfirmEmergency()

	a.mu.Lock()
	a.confirming = false
	a.mu.Unlock()

	// Задание могло завершиться, пока диалог был открыт: тогда оба
	// вызова - безопасные no-op
	if confirmed {
		a.engine.EmergencyStop()
	} else {
		a.engine.Resume()
	}
}

// jobActive сообщает, выполняется ли сейчас задание.
func jobActive(s typing.State) bool {
	switch s {
	case typing.StateCountingDown, typing.StateRunning, typing.StatePaused:
		return true
	}
	return false
}

// Колбэки движка. Приходят из рабочей горутины движка; компоненты
// трея и окон сами маршалируют обновления в свои потоки.

func (a *App) onEngineState(s typing.State) {
	switch s {
	case typing.StateCountingDown:
		a.tray.SetState(tray.StateTyping)
		a.countdownWin.Show()
	case typing.StateRunning:
		a.countdownWin.Hide()
		a.tray.SetState(tray.StateTyping)
		a.composer.SetTyping()
	case typing.StatePaused:
		a.tray.SetState(tray.StatePaused)
		a.composer.SetPaused()
	case typing.StateCompleted, typing.StateStopped, typing.StateFailed:
		a.countdownWin.Hide()
		a.tray.SetState(tray.StateIdle)
	}
}

func (a *App) onCountdown(remaining int) {
	a.countdownWin.SetRemaining(remaining)
	a.composer.SetCountdown(remaining)
}

func (a *App) onProgress(typed, total int64) {
	a.composer.SetProgress(typed, total)
	if a.clicker != nil {
		a.clicker.Click()
	}
}

func (a *App) onCompleted() {
	a.mu.Lock()
	text := a.lastText
	a.mu.Unlock()

	a.composer.SetDone()
	a.notifier.Completed(text)
	log.Println("Набор завершён")
}

func (a *App) onStopped(reason typing.StopReason) {
	watchdog := reason == typing.ReasonWatchdog
	a.composer.SetStopped(watchdog)
	if watchdog {
		a.notifier.Watchdog()
	} else {
		a.notifier.Stopped()
	}
	log.Printf("Набор остановлен: %s", reason)
}

func (a *App) onFailed(err error) {
	a.composer.SetFailed(err.Error())
	a.notifier.Failed(err.Error())
	log.Printf("Набор прерван ошибкой: %v", err)
}

// saveSnippet сохраняет текст композера под именем из диалога.
func (a *App) saveSnippet(text string) {
	if strings.TrimSpace(text) == "" {
		dialog.ShowError(i18n.T("app_name"), i18n.T("error_empty_text"))
		return
	}

	name, err := dialog.PromptSnippetName("")
	if err != nil {
		if !dialog.Canceled(err) {
			log.Printf("Диалог имени сниппета: %v", err)
		}
		return
	}

	// Существующее имя перезаписываем только с подтверждения
	if _, err := a.snippets.Get(name); err == nil {
		if !dialog.Confirm(i18n.T("dialog_snippet_save"), i18n.T("dialog_snippet_overwrite")) {
			return
		}
	}

	if err := a.snippets.Save(name, text); err != nil {
		log.Printf("Не удалось сохранить сниппет %q: %v", name, err)
		dialog.ShowError(i18n.T("app_name"), i18n.T("error_snippet_save"))
		return
	}
	log.Printf("Сниппет %q сохранён", name)
}

// loadSnippet подставляет выбранный сниппет в композер.
func (a *App) loadSnippet() {
	name, err := dialog.PickSnippet(a.snippets.List())
	if err != nil {
		if !dialog.Canceled(err) {
			log.Printf("Диалог выбора сниппета: %v", err)
		}
		return
	}

	text, err := a.snippets.Get(name)
	if err != nil {
		log.Printf("Не удалось загрузить сниппет %q: %v", name, err)
		dialog.ShowError(i18n.T("app_name"), i18n.T("error_snippet_load"))
		return
	}
	a.composer.SetText(text)
}

// applySettings вызывается после нажатия Apply в окне настроек.
// Темп и хоткеи применяются через config, здесь - только побочные
// эффекты: уведомления и звук.
func (a *App) applySettings() {
	a.notifier.SetEnabled(a.config.NotificationsEnabled())

	if a.clicker != nil {
		a.clicker.SetEnabled(a.config.KeyClicksEnabled())
		if a.config.KeyClicksEnabled() {
			a.startClicker()
		} else {
			a.clicker.Stop()
		}
	}
}

// startClicker открывает аудиопоток щелчков. Повторный вызов безопасен.
func (a *App) startClicker() {
	if a.clicker == nil {
		return
	}
	if err := a.clicker.Start(); err != nil {
		log.Printf("Не удалось запустить звук нажатий: %v", err)
	}
}
