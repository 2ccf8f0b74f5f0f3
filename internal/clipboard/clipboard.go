// Package clipboard provides system clipboard access via shell commands.
package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrClipboardUnavailable is returned when no clipboard command is
// available on this system.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// getClipboardCommand returns the platform's copy command, or an error
// if none is available.
func getClipboardCommand() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("pbcopy"); err != nil {
			return nil, ErrClipboardUnavailable
		}
		return exec.Command("pbcopy"), nil
	case "linux":
		// Prefer wl-copy on Wayland sessions, then xclip, then xsel
		if _, err := exec.LookPath("wl-copy"); err == nil {
			return exec.Command("wl-copy"), nil
		}
		if _, err := exec.LookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard"), nil
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--input"), nil
		}
		return nil, ErrClipboardUnavailable
	case "windows":
		if _, err := exec.LookPath("clip"); err != nil {
			return nil, ErrClipboardUnavailable
		}
		return exec.Command("clip"), nil
	default:
		return nil, ErrClipboardUnavailable
	}
}

// IsAvailable checks if clipboard functionality is available on this system.
func IsAvailable() bool {
	_, err := getClipboardCommand()
	return err == nil
}

// Copy copies the given text to the system clipboard.
// Returns ErrClipboardUnavailable if no clipboard command exists.
func Copy(text string) error {
	cmd, err := getClipboardCommand()
	if err != nil {
		return err
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
