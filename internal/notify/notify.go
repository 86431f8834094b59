// Package notify предоставляет системные уведомления.
package notify

import (
	"github.com/gen2brain/beeep"

	"ghosttype/internal/i18n"
)

const appName = "GhostType"

// Notifier отправляет системные уведомления.
type Notifier struct {
	enabled bool
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// SetEnabled включает/выключает уведомления.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Ready показывает уведомление о готовности приложения.
func (n *Notifier) Ready() {
	n.notify("", i18n.T("notify_ready"))
}

// Started показывает уведомление о начале набора.
func (n *Notifier) Started() {
	n.notify(i18n.T("notify_started"), i18n.T("notify_started_hint"))
}

// Completed показывает уведомление о завершённом наборе.
func (n *Notifier) Completed(text string) {
	if len(text) > 100 {
		text = text[:100] + "..."
	}
	n.notify(i18n.T("notify_completed"), text)
}

// Stopped показывает уведомление об остановленном наборе.
func (n *Notifier) Stopped() {
	n.notify(i18n.T("notify_stopped"), "")
}

// Watchdog показывает уведомление об остановке по лимиту времени.
func (n *Notifier) Watchdog() {
	n.notify(i18n.T("notify_stopped_watchdog"), "")
}

// Failed показывает уведомление об ошибке набора.
func (n *Notifier) Failed(msg string) {
	if len(msg) > 100 {
		msg = msg[:100] + "..."
	}
	n.notify(i18n.T("notify_failed"), msg)
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("error_input"), msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		return
	}
	// Игнорируем ошибки уведомлений - они не критичны
	if title != "" {
		_ = beeep.Notify(appName+": "+title, message, "")
	} else {
		_ = beeep.Notify(appName, message, "")
	}
}
