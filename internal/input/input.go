// Package input превращает единицы текста в синтетические нажатия клавиш.
package input

// Modifier модификатор комбинации клавиш.
type Modifier string

const (
	ModShift Modifier = "shift"
	ModCtrl  Modifier = "ctrl"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super"
)

// Injector вводит текст в активное окно.
type Injector interface {
	// Char вводит одиночный символ.
	Char(c rune) error
	// Text вводит строку целиком.
	Text(s string) error
	// Combo нажимает именованную клавишу с модификаторами.
	Combo(mods []Modifier, key string) error
}

// New создаёт платформо-специфичный инжектор.
func New() (Injector, error) {
	return newInjector()
}
