package input

import "testing"

// TestShiftCombo verifies that every shifted special resolves to its
// base key and that plain characters pass through untouched.
func TestShiftCombo(t *testing.T) {
	tests := []struct {
		c    rune
		base string
	}{
		{'!', "1"}, {'@', "2"}, {'#', "3"}, {'$', "4"}, {'%', "5"},
		{'^', "6"}, {'&', "7"}, {'*', "8"}, {'(', "9"}, {')', "0"},
		{'_', "minus"}, {'+', "equal"}, {'{', "bracketleft"},
		{'}', "bracketright"}, {'|', "backslash"}, {':', "semicolon"},
		{'"', "apostrophe"}, {'<', "comma"}, {'>', "period"},
		{'?', "slash"}, {'~', "grave"},
	}

	for _, tt := range tests {
		base, ok := shiftCombo(tt.c)
		if !ok {
			t.Errorf("shiftCombo(%q): expected a combo", tt.c)
			continue
		}
		if base != tt.base {
			t.Errorf("shiftCombo(%q) = %q, expected %q", tt.c, base, tt.base)
		}
	}

	for _, c := range "abcXYZ0129 .," {
		if _, ok := shiftCombo(c); ok {
			t.Errorf("shiftCombo(%q): unexpected combo for a plain character", c)
		}
	}
}
