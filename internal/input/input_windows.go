//go:build windows

package input

import (
	"fmt"
	"strings"
	"syscall"
	"unicode/utf16"
	"unsafe"
)

var (
	user32        = syscall.NewLazyDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard    = 1
	keyEventFKeyUp   = 0x0002
	keyEventFUnicode = 0x0004

	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkLWin    = 0x5B
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   uint64
}

// vkCodes виртуальные коды клавиш user32 по именам X11 keysym.
var vkCodes = map[string]uint16{
	"0": 0x30, "1": 0x31, "2": 0x32, "3": 0x33, "4": 0x34,
	"5": 0x35, "6": 0x36, "7": 0x37, "8": 0x38, "9": 0x39,
	"a": 0x41, "b": 0x42, "c": 0x43, "d": 0x44, "e": 0x45,
	"f": 0x46, "g": 0x47, "h": 0x48, "i": 0x49, "j": 0x4A,
	"k": 0x4B, "l": 0x4C, "m": 0x4D, "n": 0x4E, "o": 0x4F,
	"p": 0x50, "q": 0x51, "r": 0x52, "s": 0x53, "t": 0x54,
	"u": 0x55, "v": 0x56, "w": 0x57, "x": 0x58, "y": 0x59,
	"z": 0x5A,
	"semicolon": 0xBA, "equal": 0xBB, "comma": 0xBC, "minus": 0xBD,
	"period": 0xBE, "slash": 0xBF, "grave": 0xC0,
	"bracketleft": 0xDB, "backslash": 0xDC, "bracketright": 0xDD,
	"apostrophe": 0xDE,
	"return": 0x0D, "tab": 0x09, "space": 0x20, "escape": 0x1B,
}

type windowsInjector struct{}

func newInjector() (Injector, error) {
	return &windowsInjector{}, nil
}

func (t *windowsInjector) Char(c rune) error {
	return t.Text(string(c))
}

func (t *windowsInjector) Text(s string) error {
	runes := utf16.Encode([]rune(s))
	inputs := make([]input, 0, len(runes)*2)

	for _, r := range runes {
		inputs = append(inputs, input{
			inputType: inputKeyboard,
			ki: keyboardInput{
				wScan:   r,
				dwFlags: keyEventFUnicode,
			},
		})
		inputs = append(inputs, input{
			inputType: inputKeyboard,
			ki: keyboardInput{
				wScan:   r,
				dwFlags: keyEventFUnicode | keyEventFKeyUp,
			},
		})
	}

	return send(inputs)
}

func (t *windowsInjector) Combo(mods []Modifier, key string) error {
	vk, ok := vkCodes[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("unknown key %q", key)
	}

	inputs := make([]input, 0, (len(mods)+1)*2)
	for _, m := range mods {
		inputs = append(inputs, keyEvent(modifierVK(m), 0))
	}
	inputs = append(inputs, keyEvent(vk, 0))
	inputs = append(inputs, keyEvent(vk, keyEventFKeyUp))
	for i := len(mods) - 1; i >= 0; i-- {
		inputs = append(inputs, keyEvent(modifierVK(mods[i]), keyEventFKeyUp))
	}

	return send(inputs)
}

func keyEvent(vk uint16, flags uint32) input {
	return input{
		inputType: inputKeyboard,
		ki:        keyboardInput{wVk: vk, dwFlags: flags},
	}
}

func modifierVK(m Modifier) uint16 {
	switch m {
	case ModCtrl:
		return vkControl
	case ModAlt:
		return vkMenu
	case ModSuper:
		return vkLWin
	default:
		return vkShift
	}
}

func send(inputs []input) error {
	if len(inputs) == 0 {
		return nil
	}

	sent, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		uintptr(unsafe.Sizeof(inputs[0])),
	)
	if int(sent) != len(inputs) {
		return fmt.Errorf("SendInput delivered %d of %d events: %v", sent, len(inputs), err)
	}

	return nil
}
