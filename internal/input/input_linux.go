//go:build linux

package input

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

type linuxInjector struct {
	useWayland bool
}

func newInjector() (Injector, error) {
	return &linuxInjector{
		useWayland: os.Getenv("WAYLAND_DISPLAY") != "",
	}, nil
}

func (t *linuxInjector) Char(c rune) error {
	if base, ok := shiftCombo(c); ok {
		return t.Combo([]Modifier{ModShift}, base)
	}
	return t.Text(string(c))
}

func (t *linuxInjector) Text(s string) error {
	if t.useWayland {
		return run("wtype", "--", s)
	}
	return run("xdotool", "type", "--clearmodifiers", "--", s)
}

func (t *linuxInjector) Combo(mods []Modifier, key string) error {
	if t.useWayland {
		args := make([]string, 0, len(mods)*2+2)
		for _, m := range mods {
			args = append(args, "-M", waylandMod(m))
		}
		args = append(args, "-k", key)
		for i := len(mods) - 1; i >= 0; i-- {
			args = append(args, "-m", waylandMod(mods[i]))
		}
		return run("wtype", args...)
	}

	parts := make([]string, 0, len(mods)+1)
	for _, m := range mods {
		parts = append(parts, string(m))
	}
	parts = append(parts, key)
	return run("xdotool", "key", "--clearmodifiers", strings.Join(parts, "+"))
}

// waylandMod переводит модификатор в имя, понятное wtype.
func waylandMod(m Modifier) string {
	if m == ModSuper {
		return "logo"
	}
	return string(m)
}

func run(name string, args ...string) error {
	if out, err := exec.Command(name, args...).CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
