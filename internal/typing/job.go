package typing

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Ошибки запуска задания, проверяются через errors.Is.
var (
	ErrEmptyText     = errors.New("текст для набора пуст")
	ErrJobActive     = errors.New("набор уже выполняется")
	ErrInvalidPolicy = errors.New("некорректные параметры темпа")
	ErrInvalidRepeat = errors.New("число повторов должно быть не меньше 1")
)

// Mode единица набора: посимвольно или пословно.
type Mode string

const (
	ModeCharacter Mode = "character"
	ModeWord      Mode = "word"
)

// ParseMode разбирает режим набора без учёта регистра.
func ParseMode(raw string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeCharacter:
		return ModeCharacter, true
	case ModeWord:
		return ModeWord, true
	}
	return ModeCharacter, false
}

// Job одно задание на набор текста.
type Job struct {
	Text    string
	Repeats int
	Mode    Mode
}

// TotalUnits возвращает знаменатель прогресса: число рун обрезанного
// текста, умноженное на число повторов. Фиксируется при старте и по
// ходу задания не меняется.
func (j Job) TotalUnits() int64 {
	repeats := j.Repeats
	if repeats < 1 {
		repeats = 1
	}
	return int64(utf8.RuneCountInString(strings.TrimSpace(j.Text))) * int64(repeats)
}

// TimingPolicy снимок параметров темпа на момент старта.
// Изменения настроек не затрагивают уже идущее задание.
type TimingPolicy struct {
	BaseDelay   time.Duration // базовая пауза после символа
	Variability time.Duration // разброс: полуинтервал либо сигма
	WordPause   time.Duration // пауза после слова и на пробельных символах
	Natural     bool          // темп с учётом пунктуации
}

// Validate проверяет границы параметров темпа.
func (p TimingPolicy) Validate() error {
	if p.BaseDelay <= 0 {
		return fmt.Errorf("%w: базовая задержка %v", ErrInvalidPolicy, p.BaseDelay)
	}
	if p.Variability < 0 {
		return fmt.Errorf("%w: разброс %v", ErrInvalidPolicy, p.Variability)
	}
	if p.WordPause <= 0 {
		return fmt.Errorf("%w: пауза между словами %v", ErrInvalidPolicy, p.WordPause)
	}
	return nil
}
