// Package config предоставляет конфигурацию приложения с сохранением в файл.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ghosttype/internal/typing"
)

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super" // Win/Cmd
)

// Key представляет клавишу.
type Key string

const (
	KeySpace  Key = "space"
	KeyReturn Key = "return"
	KeyTab    Key = "tab"
	KeyEsc    Key = "escape"
	KeyA      Key = "a"
	KeyB      Key = "b"
	KeyC      Key = "c"
	KeyD      Key = "d"
	KeyE      Key = "e"
	KeyF      Key = "f"
	KeyG      Key = "g"
	KeyH      Key = "h"
	KeyI      Key = "i"
	KeyJ      Key = "j"
	KeyK      Key = "k"
	KeyL      Key = "l"
	KeyM      Key = "m"
	KeyN      Key = "n"
	KeyO      Key = "o"
	KeyP      Key = "p"
	KeyQ      Key = "q"
	KeyR      Key = "r"
	KeyS      Key = "s"
	KeyT      Key = "t"
	KeyU      Key = "u"
	KeyV      Key = "v"
	KeyW      Key = "w"
	KeyX      Key = "x"
	KeyY      Key = "y"
	KeyZ      Key = "z"
	KeyF1     Key = "f1"
	KeyF2     Key = "f2"
	KeyF3     Key = "f3"
	KeyF4     Key = "f4"
	KeyF5     Key = "f5"
	KeyF6     Key = "f6"
	KeyF7     Key = "f7"
	KeyF8     Key = "f8"
	KeyF9     Key = "f9"
	KeyF10    Key = "f10"
	KeyF11    Key = "f11"
	KeyF12    Key = "f12"
)

// Action именованное действие, за которым закреплена горячая клавиша.
type Action string

const (
	ActionStart     Action = "start"
	ActionPause     Action = "pause"
	ActionEmergency Action = "emergency"
)

// Границы сторожевого таймера в секундах. Ноль отключает таймер.
const (
	WatchdogMinSeconds = 5
	WatchdogMaxSeconds = 60
)

// HotkeyConfig хранит настройки горячей клавиши.
type HotkeyConfig struct {
	Modifiers []Modifier `json:"modifiers"`
	Key       Key        `json:"key"`
}

// String возвращает строковое представление горячей клавиши.
func (h HotkeyConfig) String() string {
	result := ""
	for _, m := range h.Modifiers {
		if result != "" {
			result += "+"
		}
		result += string(m)
	}
	if result != "" {
		result += "+"
	}
	result += string(h.Key)
	return result
}

// configData структура для сериализации. Паузы хранятся в секундах.
type configData struct {
	BaseDelay        float64      `json:"base_delay"`
	DelayVariability float64      `json:"delay_variability"`
	WordDelay        float64      `json:"word_delay"`
	TypingMode       string       `json:"typing_mode"`
	RepeatCount      int          `json:"repeat_count"`
	NaturalTyping    bool         `json:"natural_typing"`
	CountdownSeconds int          `json:"countdown_seconds"`
	WatchdogSeconds  int          `json:"watchdog_seconds"`
	ConfirmEmergency bool         `json:"confirm_emergency_stop"`
	StartHotkey      HotkeyConfig `json:"start_hotkey"`
	PauseHotkey      HotkeyConfig `json:"pause_hotkey"`
	EmergencyHotkey  HotkeyConfig `json:"emergency_hotkey"`
	Theme            string       `json:"theme"`
	UILanguage       string       `json:"ui_language"`
	Notifications    bool         `json:"notifications_enabled"`
	KeyClicks        bool         `json:"key_clicks_enabled"`
}

// Config хранит настройки приложения.
type Config struct {
	mu               sync.RWMutex
	baseDelay        time.Duration
	variability      time.Duration
	wordDelay        time.Duration
	typingMode       typing.Mode
	repeatCount      int
	naturalTyping    bool
	countdownSeconds int
	watchdogSeconds  int
	confirmEmergency bool
	hotkeys          map[Action]HotkeyConfig
	theme            string
	uiLanguage       string
	notifications    bool
	keyClicks        bool
	configPath       string
	onHotkeyChange   func(Action, HotkeyConfig)
}

// New создаёт конфигурацию, загружая из файла или с настройками по умолчанию.
// Файл config.json лежит рядом с бинарником.
func New() *Config {
	return newConfig(defaultPath())
}

func newConfig(path string) *Config {
	c := &Config{
		baseDelay:        100 * time.Millisecond,
		variability:      50 * time.Millisecond,
		wordDelay:        300 * time.Millisecond,
		typingMode:       typing.ModeCharacter,
		repeatCount:      1,
		naturalTyping:    true,
		countdownSeconds: 3,
		watchdogSeconds:  10,
		confirmEmergency: true,
		hotkeys: map[Action]HotkeyConfig{
			ActionStart:     {Key: KeyF9},
			ActionPause:     {Key: KeyF10},
			ActionEmergency: {Key: KeyF11},
		},
		theme:         "light",
		uiLanguage:    "en",
		notifications: true,
		keyClicks:     false,
		configPath:    path,
	}

	c.load()

	return c
}

// defaultPath возвращает путь к config.json рядом с бинарником.
func defaultPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(execPath), "config.json")
}

// data собирает снимок полей для сериализации. Вызывается под mu.
func (c *Config) data() configData {
	return configData{
		BaseDelay:        c.baseDelay.Seconds(),
		DelayVariability: c.variability.Seconds(),
		WordDelay:        c.wordDelay.Seconds(),
		TypingMode:       string(c.typingMode),
		RepeatCount:      c.repeatCount,
		NaturalTyping:    c.naturalTyping,
		CountdownSeconds: c.countdownSeconds,
		WatchdogSeconds:  c.watchdogSeconds,
		ConfirmEmergency: c.confirmEmergency,
		StartHotkey:      c.hotkeys[ActionStart],
		PauseHotkey:      c.hotkeys[ActionPause],
		EmergencyHotkey:  c.hotkeys[ActionEmergency],
		Theme:            c.theme,
		UILanguage:       c.uiLanguage,
		Notifications:    c.notifications,
		KeyClicks:        c.keyClicks,
	}
}

// load загружает конфигурацию из файла.
// Снимок текущих значений служит подложкой, поэтому отсутствующие в
// файле поля остаются на значениях по умолчанию.
func (c *Config) load() {
	if c.configPath == "" {
		return
	}

	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return // Файл не существует, используем defaults
	}

	cfg := c.data()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return
	}

	if cfg.BaseDelay > 0 {
		c.baseDelay = secondsToDuration(cfg.BaseDelay)
	}
	if cfg.DelayVariability >= 0 {
		c.variability = secondsToDuration(cfg.DelayVariability)
	}
	if cfg.WordDelay > 0 {
		c.wordDelay = secondsToDuration(cfg.WordDelay)
	}
	if mode, ok := typing.ParseMode(cfg.TypingMode); ok {
		c.typingMode = mode
	}
	if cfg.RepeatCount >= 1 {
		c.repeatCount = cfg.RepeatCount
	}
	c.naturalTyping = cfg.NaturalTyping
	if cfg.CountdownSeconds >= 0 {
		c.countdownSeconds = clampCountdown(cfg.CountdownSeconds)
	}
	c.watchdogSeconds = clampWatchdog(cfg.WatchdogSeconds)
	c.confirmEmergency = cfg.ConfirmEmergency
	if cfg.StartHotkey.Key != "" {
		c.hotkeys[ActionStart] = cfg.StartHotkey
	}
	if cfg.PauseHotkey.Key != "" {
		c.hotkeys[ActionPause] = cfg.PauseHotkey
	}
	if cfg.EmergencyHotkey.Key != "" {
		c.hotkeys[ActionEmergency] = cfg.EmergencyHotkey
	}
	if cfg.Theme == "light" || cfg.Theme == "dark" {
		c.theme = cfg.Theme
	}
	if cfg.UILanguage != "" {
		c.uiLanguage = cfg.UILanguage
	}
	c.notifications = cfg.Notifications
	c.keyClicks = cfg.KeyClicks
}

// save сохраняет конфигурацию в файл. Вызывается под mu.
func (c *Config) save() {
	if c.configPath == "" {
		return
	}

	data, err := json.MarshalIndent(c.data(), "", "  ")
	if err != nil {
		return
	}

	os.WriteFile(c.configPath, data, 0644)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func clampWatchdog(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	if seconds < WatchdogMinSeconds {
		return WatchdogMinSeconds
	}
	if seconds > WatchdogMaxSeconds {
		return WatchdogMaxSeconds
	}
	return seconds
}

func clampCountdown(seconds int) int {
	if seconds < 0 {
		return 0
	}
	if seconds > 30 {
		return 30
	}
	return seconds
}

// BaseDelay возвращает базовую паузу после символа.
func (c *Config) BaseDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseDelay
}

// SetBaseDelay устанавливает базовую паузу после символа.
func (c *Config) SetBaseDelay(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d > 0 {
		c.baseDelay = d
	}
	c.save()
}

// Variability возвращает разброс пауз.
func (c *Config) Variability() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.variability
}

// SetVariability устанавливает разброс пауз.
func (c *Config) SetVariability(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d >= 0 {
		c.variability = d
	}
	c.save()
}

// WordDelay возвращает паузу между словами.
func (c *Config) WordDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.wordDelay
}

// SetWordDelay устанавливает паузу между словами.
func (c *Config) SetWordDelay(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d > 0 {
		c.wordDelay = d
	}
	c.save()
}

// TypingMode возвращает режим набора.
func (c *Config) TypingMode() typing.Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.typingMode
}

// SetTypingMode устанавливает режим набора.
func (c *Config) SetTypingMode(mode typing.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch mode {
	case typing.ModeCharacter, typing.ModeWord:
		c.typingMode = mode
	}
	c.save()
}

// RepeatCount возвращает число повторов текста.
func (c *Config) RepeatCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.repeatCount
}

// SetRepeatCount устанавливает число повторов текста.
func (c *Config) SetRepeatCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n >= 1 {
		c.repeatCount = n
	}
	c.save()
}

// NaturalTyping возвращает true, если включён естественный темп.
func (c *Config) NaturalTyping() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.naturalTyping
}

// SetNaturalTyping включает/выключает естественный темп.
func (c *Config) SetNaturalTyping(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.naturalTyping = enabled
	c.save()
}

// Policy собирает снимок темпа для запуска задания.
func (c *Config) Policy() typing.TimingPolicy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return typing.TimingPolicy{
		BaseDelay:   c.baseDelay,
		Variability: c.variability,
		WordPause:   c.wordDelay,
		Natural:     c.naturalTyping,
	}
}

// CountdownSeconds возвращает длительность отсчёта перед набором.
func (c *Config) CountdownSeconds() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.countdownSeconds
}

// SetCountdownSeconds устанавливает длительность отсчёта.
func (c *Config) SetCountdownSeconds(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.countdownSeconds = clampCountdown(seconds)
	c.save()
}

// Countdown возвращает отсчёт как длительность.
func (c *Config) Countdown() time.Duration {
	return time.Duration(c.CountdownSeconds()) * time.Second
}

// WatchdogSeconds возвращает лимит времени набора (0 - выключен).
func (c *Config) WatchdogSeconds() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.watchdogSeconds
}

// SetWatchdogSeconds устанавливает лимит времени набора.
// Ненулевые значения зажимаются в границы WatchdogMinSeconds..WatchdogMaxSeconds.
func (c *Config) SetWatchdogSeconds(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watchdogSeconds = clampWatchdog(seconds)
	c.save()
}

// Watchdog возвращает лимит времени как длительность.
func (c *Config) Watchdog() time.Duration {
	return time.Duration(c.WatchdogSeconds()) * time.Second
}

// ConfirmEmergencyStop возвращает true, если аварийная остановка
// требует подтверждения.
func (c *Config) ConfirmEmergencyStop() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.confirmEmergency
}

// SetConfirmEmergencyStop включает/выключает подтверждение аварийной
// остановки.
func (c *Config) SetConfirmEmergencyStop(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirmEmergency = enabled
	c.save()
}

// Hotkey возвращает горячую клавишу действия.
func (c *Config) Hotkey(action Action) HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hotkeys[action]
}

// SetHotkey устанавливает горячую клавишу действия.
func (c *Config) SetHotkey(action Action, hk HotkeyConfig) {
	c.mu.Lock()
	c.hotkeys[action] = hk
	callback := c.onHotkeyChange
	c.save()
	c.mu.Unlock()

	if callback != nil {
		callback(action, hk)
	}
}

// OnHotkeyChange устанавливает callback для изменения горячих клавиш.
func (c *Config) OnHotkeyChange(fn func(Action, HotkeyConfig)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onHotkeyChange = fn
}

// Theme возвращает тему интерфейса ("light" или "dark").
func (c *Config) Theme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.theme
}

// SetTheme устанавливает тему интерфейса.
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if theme == "light" || theme == "dark" {
		c.theme = theme
	}
	c.save()
}

// UILanguage возвращает язык интерфейса.
func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.uiLanguage
}

// SetUILanguage устанавливает язык интерфейса.
func (c *Config) SetUILanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uiLanguage = lang
	c.save()
}

// NotificationsEnabled возвращает true если уведомления включены.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notifications
}

// SetNotifications включает/выключает уведомления.
func (c *Config) SetNotifications(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = enabled
	c.save()
}

// ToggleNotifications переключает состояние уведомлений.
func (c *Config) ToggleNotifications() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = !c.notifications
	c.save()
	return c.notifications
}

// KeyClicksEnabled возвращает true если включён звук нажатий.
func (c *Config) KeyClicksEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.keyClicks
}

// SetKeyClicks включает/выключает звук нажатий.
func (c *Config) SetKeyClicks(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keyClicks = enabled
	c.save()
}

// AvailableModifiers возвращает список доступных модификаторов.
func AvailableModifiers() []Modifier {
	return []Modifier{ModCtrl, ModShift, ModAlt, ModSuper}
}

// AvailableKeys возвращает список доступных клавиш.
func AvailableKeys() []Key {
	return []Key{
		KeySpace, KeyReturn, KeyTab, KeyEsc,
		KeyA, KeyB, KeyC, KeyD, KeyE, KeyF, KeyG, KeyH, KeyI, KeyJ, KeyK, KeyL, KeyM,
		KeyN, KeyO, KeyP, KeyQ, KeyR, KeyS, KeyT, KeyU, KeyV, KeyW, KeyX, KeyY, KeyZ,
		KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
	}
}
