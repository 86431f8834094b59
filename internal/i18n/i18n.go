// Package i18n provides internationalization support.
package i18n

import "sync"

// Language represents a UI language.
type Language string

const (
	EN Language = "en"
	RU Language = "ru"
)

var (
	mu      sync.RWMutex
	current = EN // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	EN: {
		// App
		"app_name":    "GhostType",
		"app_tooltip": "GhostType - automatic typing",

		// Tray menu
		"tray_idle":          "Ready",
		"tray_typing":        "Typing...",
		"tray_paused":        "Paused",
		"tray_composer":      "Open Composer",
		"tray_composer_hint": "Edit the text to type",
		"tray_start":         "Start Typing",
		"tray_start_hint":    "Type the composer text into the focused window",
		"tray_pause":         "Pause",
		"tray_resume":        "Resume",
		"tray_pause_hint":    "Suspend typing at the next character",
		"tray_stop":          "Stop",
		"tray_stop_hint":     "Stop the current typing job",
		"tray_settings":      "Settings...",
		"tray_settings_hint": "Pacing, hotkeys, interface",
		"tray_quit":          "Quit",
		"tray_quit_hint":     "Close application",

		// Notifications
		"notify_ready":            "GhostType is ready",
		"notify_started":          "Typing started",
		"notify_started_hint":     "Focus the target window",
		"notify_completed":        "Typing finished",
		"notify_stopped":          "Typing stopped",
		"notify_stopped_watchdog": "Typing stopped by the time limit",
		"notify_failed":           "Typing failed",

		// Composer window
		"composer_title":        "Composer",
		"composer_placeholder":  "Enter text to type...",
		"composer_type":         "Type",
		"composer_save_snippet": "Save snippet",
		"composer_load_snippet": "Load snippet",
		"composer_typing":       "Typing",
		"composer_paused":       "Paused",
		"composer_countdown":    "Starting in",
		"composer_done":         "Done",
		"composer_stopped":      "Stopped",
		"composer_failed":       "Failed",
		"composer_esc_hint":     "ESC stops typing",

		// Countdown window
		"countdown_title": "Get ready",
		"countdown_hint":  "Focus the target window",

		// Settings window
		"settings_title":             "Settings",
		"settings_timing":            "Timing",
		"settings_base_delay":        "Base delay",
		"settings_variability":       "Variability",
		"settings_word_pause":        "Word pause",
		"settings_typing":            "Typing",
		"settings_mode":              "Mode:",
		"settings_mode_character":    "By character",
		"settings_mode_word":         "By word",
		"settings_natural":           "Natural rhythm",
		"settings_natural_hint":      "Slow down after punctuation",
		"settings_repeats":           "Repeats:",
		"settings_countdown":         "Countdown (s):",
		"settings_watchdog":          "Time limit (s):",
		"settings_watchdog_hint":     "0 disables the limit",
		"settings_confirm_emergency": "Confirm emergency stop",
		"settings_hotkeys":           "Hotkeys",
		"settings_hotkey_start":      "Start:",
		"settings_hotkey_pause":      "Pause:",
		"settings_hotkey_emergency":  "Emergency stop:",
		"settings_hotkey_edit":       "Edit",
		"settings_hotkey_cancel":     "Cancel",
		"settings_hotkey_not_set":    "Not set",
		"settings_hotkey_prompt":     "Press key combination...",
		"settings_interface":         "Interface",
		"settings_theme":             "Theme:",
		"settings_theme_light":       "Light",
		"settings_theme_dark":        "Dark",
		"settings_ui_language":       "Interface language",
		"settings_notifications":     "Notifications",
		"settings_key_clicks":        "Key click sounds",
		"settings_apply":             "Apply",
		"settings_cancel":            "Cancel",

		// Dialogs
		"dialog_emergency_title":   "Emergency stop",
		"dialog_emergency_text":    "Stop typing now?",
		"dialog_snippet_save":      "Save snippet",
		"dialog_snippet_name":      "Snippet name:",
		"dialog_snippet_load":      "Load snippet",
		"dialog_snippet_pick":      "Choose a snippet:",
		"dialog_snippet_empty":     "No snippets saved yet",
		"dialog_snippet_overwrite": "A snippet with this name exists. Overwrite?",

		// Errors
		"error_empty_text":      "Nothing to type",
		"error_job_active":      "Typing is already running",
		"error_input":           "Input error",
		"error_hotkey_register": "Could not register hotkey",
		"error_snippet_save":    "Could not save snippet",
		"error_snippet_load":    "Could not load snippet",
	},

	RU: {
		// App
		"app_name":    "GhostType",
		"app_tooltip": "GhostType - автоматический набор",

		// Tray menu
		"tray_idle":          "Готов к работе",
		"tray_typing":        "Набор...",
		"tray_paused":        "Пауза",
		"tray_composer":      "Открыть редактор",
		"tray_composer_hint": "Изменить текст для набора",
		"tray_start":         "Начать набор",
		"tray_start_hint":    "Набрать текст редактора в активное окно",
		"tray_pause":         "Пауза",
		"tray_resume":        "Продолжить",
		"tray_pause_hint":    "Приостановить набор на следующем символе",
		"tray_stop":          "Остановить",
		"tray_stop_hint":     "Остановить текущий набор",
		"tray_settings":      "Настройки...",
		"tray_settings_hint": "Темп, горячие клавиши, интерфейс",
		"tray_quit":          "Выход",
		"tray_quit_hint":     "Закрыть приложение",

		// Notifications
		"notify_ready":            "GhostType готов к работе",
		"notify_started":          "Набор начат",
		"notify_started_hint":     "Переключитесь на целевое окно",
		"notify_completed":        "Набор завершён",
		"notify_stopped":          "Набор остановлен",
		"notify_stopped_watchdog": "Набор остановлен по лимиту времени",
		"notify_failed":           "Ошибка набора",

		// Composer window
		"composer_title":        "Редактор",
		"composer_placeholder":  "Введите текст для набора...",
		"composer_type":         "Набрать",
		"composer_save_snippet": "Сохранить фрагмент",
		"composer_load_snippet": "Загрузить фрагмент",
		"composer_typing":       "Набор",
		"composer_paused":       "Пауза",
		"composer_countdown":    "Старт через",
		"composer_done":         "Готово",
		"composer_stopped":      "Остановлено",
		"composer_failed":       "Ошибка",
		"composer_esc_hint":     "ESC останавливает набор",

		// Countdown window
		"countdown_title": "Приготовьтесь",
		"countdown_hint":  "Переключитесь на целевое окно",

		// Settings window
		"settings_title":             "Настройки",
		"settings_timing":            "Темп",
		"settings_base_delay":        "Базовая задержка",
		"settings_variability":       "Разброс",
		"settings_word_pause":        "Пауза между словами",
		"settings_typing":            "Набор",
		"settings_mode":              "Режим:",
		"settings_mode_character":    "По символам",
		"settings_mode_word":         "По словам",
		"settings_natural":           "Естественный темп",
		"settings_natural_hint":      "Замедляться после знаков препинания",
		"settings_repeats":           "Повторы:",
		"settings_countdown":         "Отсчёт (с):",
		"settings_watchdog":          "Лимит времени (с):",
		"settings_watchdog_hint":     "0 отключает лимит",
		"settings_confirm_emergency": "Подтверждать аварийную остановку",
		"settings_hotkeys":           "Горячие клавиши",
		"settings_hotkey_start":      "Старт:",
		"settings_hotkey_pause":      "Пауза:",
		"settings_hotkey_emergency":  "Аварийная остановка:",
		"settings_hotkey_edit":       "Изменить",
		"settings_hotkey_cancel":     "Отмена",
		"settings_hotkey_not_set":    "Не задана",
		"settings_hotkey_prompt":     "Нажмите комбинацию...",
		"settings_interface":         "Интерфейс",
		"settings_theme":             "Тема:",
		"settings_theme_light":       "Светлая",
		"settings_theme_dark":        "Тёмная",
		"settings_ui_language":       "Язык интерфейса",
		"settings_notifications":     "Уведомления",
		"settings_key_clicks":        "Звук нажатий",
		"settings_apply":             "Применить",
		"settings_cancel":            "Отмена",

		// Dialogs
		"dialog_emergency_title":   "Аварийная остановка",
		"dialog_emergency_text":    "Остановить набор сейчас?",
		"dialog_snippet_save":      "Сохранить фрагмент",
		"dialog_snippet_name":      "Имя фрагмента:",
		"dialog_snippet_load":      "Загрузить фрагмент",
		"dialog_snippet_pick":      "Выберите фрагмент:",
		"dialog_snippet_empty":     "Сохранённых фрагментов пока нет",
		"dialog_snippet_overwrite": "Фрагмент с таким именем существует. Перезаписать?",

		// Errors
		"error_empty_text":      "Нечего набирать",
		"error_job_active":      "Набор уже выполняется",
		"error_input":           "Ошибка ввода",
		"error_hotkey_register": "Не удалось зарегистрировать горячую клавишу",
		"error_snippet_save":    "Не удалось сохранить фрагмент",
		"error_snippet_load":    "Не удалось загрузить фрагмент",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// SetLanguage sets the current UI language.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	current = lang
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{EN, RU}
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case EN:
		return "English"
	case RU:
		return "Русский"
	default:
		return string(lang)
	}
}
