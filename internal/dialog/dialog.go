// Package dialog предоставляет GUI диалоги поверх нативных окон системы.
package dialog

import (
	"errors"
	"strings"

	"github.com/ncruces/zenity"

	"ghosttype/internal/i18n"
)

// Confirm показывает вопрос с кнопками подтверждения и отмены.
// Возвращает true если пользователь подтвердил действие.
func Confirm(title, question string) bool {
	err := zenity.Question(
		question,
		zenity.Title(title),
		zenity.OKLabel(i18n.T("settings_apply")),
		zenity.CancelLabel(i18n.T("settings_cancel")),
	)
	return err == nil
}

// ConfirmEmergency показывает подтверждение аварийной остановки.
func ConfirmEmergency() bool {
	return Confirm(i18n.T("dialog_emergency_title"), i18n.T("dialog_emergency_text"))
}

// PromptSnippetName открывает диалог ввода имени фрагмента.
// Возвращает ошибку если пользователь отменил или оставил имя пустым.
func PromptSnippetName(initial string) (string, error) {
	name, err := zenity.Entry(
		i18n.T("dialog_snippet_name"),
		zenity.Title(i18n.T("dialog_snippet_save")),
		zenity.EntryText(initial),
	)
	if err != nil {
		return "", err // Пользователь отменил
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New(i18n.T("error_snippet_save"))
	}
	return name, nil
}

// PickSnippet открывает диалог выбора фрагмента из списка.
func PickSnippet(names []string) (string, error) {
	if len(names) == 0 {
		ShowInfo(i18n.T("dialog_snippet_load"), i18n.T("dialog_snippet_empty"))
		return "", zenity.ErrCanceled
	}
	return zenity.List(
		i18n.T("dialog_snippet_pick"),
		names,
		zenity.Title(i18n.T("dialog_snippet_load")),
	)
}

// Canceled сообщает, была ли ошибка отменой диалога пользователем.
func Canceled(err error) bool {
	return errors.Is(err, zenity.ErrCanceled)
}

// ShowInfo показывает информационное сообщение.
func ShowInfo(title, message string) {
	zenity.Info(message, zenity.Title(title))
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title))
}
