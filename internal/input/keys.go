package input

// shiftBase сопоставляет символы верхнего регистра базовой клавише,
// нажимаемой вместе с shift. Имена клавиш в нотации X11 keysym,
// платформенные реализации переводят их в свои коды.
var shiftBase = map[rune]string{
	'!': "1",
	'@': "2",
	'#': "3",
	'$': "4",
	'%': "5",
	'^': "6",
	'&': "7",
	'*': "8",
	'(': "9",
	')': "0",
	'_': "minus",
	'+': "equal",
	'{': "bracketleft",
	'}': "bracketright",
	'|': "backslash",
	':': "semicolon",
	'"': "apostrophe",
	'<': "comma",
	'>': "period",
	'?': "slash",
	'~': "grave",
}

// shiftCombo возвращает базовую клавишу для символа, требующего shift.
func shiftCombo(c rune) (string, bool) {
	base, ok := shiftBase[c]
	return base, ok
}
