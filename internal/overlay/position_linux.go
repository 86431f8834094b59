//go:build linux

package overlay

import (
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// positionWindow moves the composer to the bottom-right corner of the
// screen and raises it above other windows. Called right after the
// window is created; retries while the WM maps the window.
func positionWindow(windowTitle string, width, height int) {
	var windowID string
	for attempt := 0; attempt < 5; attempt++ {
		time.Sleep(100 * time.Millisecond)
		if id := findWindow(windowTitle); id != "" {
			windowID = id
			break
		}
	}
	if windowID == "" {
		return
	}

	screenWidth, screenHeight := getScreenSize()
	if screenWidth > 0 && screenHeight > 0 {
		// Bottom-right corner, padded clear of the taskbar
		x := screenWidth - width - 20
		y := screenHeight - height - 60
		exec.Command("xdotool", "windowmove", windowID, strconv.Itoa(x), strconv.Itoa(y)).Run()
	}

	// Always-on-top via wmctrl, xprop when wmctrl is missing
	if err := exec.Command("wmctrl", "-i", "-r", windowID, "-b", "add,above").Run(); err != nil {
		exec.Command("xprop", "-id", windowID, "-f", "_NET_WM_STATE", "32a",
			"-set", "_NET_WM_STATE", "_NET_WM_STATE_ABOVE").Run()
	}
}

// findWindow returns the first X11 window id matching the title.
func findWindow(title string) string {
	output, err := exec.Command("xdotool", "search", "--name", title).Output()
	if err != nil {
		return ""
	}
	ids := strings.Fields(string(output))
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// getScreenSize returns the screen dimensions using xdotool.
func getScreenSize() (width, height int) {
	output, err := exec.Command("xdotool", "getdisplaygeometry").Output()
	if err != nil {
		return 0, 0
	}

	parts := strings.Fields(string(output))
	if len(parts) != 2 {
		return 0, 0
	}

	width, _ = strconv.Atoi(parts[0])
	height, _ = strconv.Atoi(parts[1])
	return width, height
}
