//go:build darwin

package input

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework Foundation
#import <ApplicationServices/ApplicationServices.h>
#import <Foundation/Foundation.h>
#include <stdlib.h>

void typeText(const char* text) {
    NSString *str = [NSString stringWithUTF8String:text];

    for (NSUInteger i = 0; i < [str length]; i++) {
        unichar c = [str characterAtIndex:i];

        CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, 0, true);
        CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, 0, false);

        CGEventKeyboardSetUnicodeString(keyDown, 1, &c);
        CGEventKeyboardSetUnicodeString(keyUp, 1, &c);

        CGEventPost(kCGHIDEventTap, keyDown);
        CGEventPost(kCGHIDEventTap, keyUp);

        CFRelease(keyDown);
        CFRelease(keyUp);
    }
}

void pressCombo(unsigned short keyCode, unsigned long long flags) {
    CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, (CGKeyCode)keyCode, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, (CGKeyCode)keyCode, false);

    CGEventSetFlags(keyDown, (CGEventFlags)flags);
    CGEventSetFlags(keyUp, (CGEventFlags)flags);

    CGEventPost(kCGHIDEventTap, keyDown);
    CGEventPost(kCGHIDEventTap, keyUp);

    CFRelease(keyDown);
    CFRelease(keyUp);
}
*/
import "C"

import (
	"fmt"
	"strings"
	"unsafe"
)

type darwinInjector struct{}

func newInjector() (Injector, error) {
	return &darwinInjector{}, nil
}

func (t *darwinInjector) Char(c rune) error {
	return t.Text(string(c))
}

func (t *darwinInjector) Text(s string) error {
	cstr := C.CString(s)
	defer C.free(unsafe.Pointer(cstr))
	C.typeText(cstr)
	return nil
}

// macKeyCodes виртуальные коды клавиш раскладки ANSI.
var macKeyCodes = map[string]uint16{
	"a": 0x00, "s": 0x01, "d": 0x02, "f": 0x03, "h": 0x04, "g": 0x05,
	"z": 0x06, "x": 0x07, "c": 0x08, "v": 0x09, "b": 0x0B, "q": 0x0C,
	"w": 0x0D, "e": 0x0E, "r": 0x0F, "y": 0x10, "t": 0x11,
	"1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15, "6": 0x16, "5": 0x17,
	"equal": 0x18, "9": 0x19, "7": 0x1A, "minus": 0x1B, "8": 0x1C,
	"0": 0x1D, "bracketright": 0x1E, "o": 0x1F, "u": 0x20,
	"bracketleft": 0x21, "i": 0x22, "p": 0x23, "return": 0x24,
	"l": 0x25, "j": 0x26, "apostrophe": 0x27, "k": 0x28,
	"semicolon": 0x29, "backslash": 0x2A, "comma": 0x2B, "slash": 0x2C,
	"n": 0x2D, "m": 0x2E, "period": 0x2F, "tab": 0x30, "space": 0x31,
	"grave": 0x32, "escape": 0x35,
}

const (
	maskShift   = 0x00020000
	maskControl = 0x00040000
	maskAlt     = 0x00080000
	maskCommand = 0x00100000
)

func (t *darwinInjector) Combo(mods []Modifier, key string) error {
	code, ok := macKeyCodes[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("unknown key %q", key)
	}

	var flags uint64
	for _, m := range mods {
		switch m {
		case ModShift:
			flags |= maskShift
		case ModCtrl:
			flags |= maskControl
		case ModAlt:
			flags |= maskAlt
		case ModSuper:
			flags |= maskCommand
		}
	}

	C.pressCombo(C.ushort(code), C.ulonglong(flags))
	return nil
}
