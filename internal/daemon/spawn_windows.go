//go:build windows

package daemon

import (
	"fmt"
	"os/exec"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

// startLauncher runs `cmd /C start "" /MIN <zowe> --daemon`. Anything other
// than an empty title in the start command fails.
type startLauncher struct{}

// NewLauncher returns the detached launcher for this platform.
func NewLauncher() Launcher {
	return startLauncher{}
}

func (startLauncher) LaunchDetached(zowePath string) (string, error) {
	args := []string{"/C", "start", "", "/MIN", zowePath, DaemonFlag}
	display := "cmd " + strings.Join([]string{"/C", "start", `""`, "/MIN", zowePath, DaemonFlag}, " ")

	cmd := exec.Command("cmd", args...) //nolint:gosec // G204 - path found on PATH
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.DETACHED_PROCESS,
	}

	if err := cmd.Start(); err != nil {
		return display, fmt.Errorf("failed to start daemon process: %w", err)
	}
	if err := cmd.Process.Release(); err != nil {
		return display, fmt.Errorf("failed to release daemon process: %w", err)
	}

	return display, nil
}
