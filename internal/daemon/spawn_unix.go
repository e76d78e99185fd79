//go:build !windows

package daemon

import (
	"fmt"
	"os/exec"
	"syscall"

	"mvdan.cc/sh/v3/syntax"
)

// shellLauncher runs "sh -c '<zowe> --daemon'" in a new session.
type shellLauncher struct{}

// NewLauncher returns the detached launcher for this platform.
func NewLauncher() Launcher {
	return shellLauncher{}
}

// ShellScript returns the sh script that starts zowePath in daemon mode.
func ShellScript(zowePath string) (string, error) {
	quoted, err := syntax.Quote(zowePath, syntax.LangPOSIX)
	if err != nil {
		return "", fmt.Errorf("cannot quote %q for sh: %w", zowePath, err)
	}
	return quoted + " " + DaemonFlag, nil
}

func (shellLauncher) LaunchDetached(zowePath string) (string, error) {
	script, err := ShellScript(zowePath)
	if err != nil {
		return "sh -c " + zowePath + " " + DaemonFlag, err
	}
	display := "sh -c " + script

	cmd := exec.Command("sh", "-c", script) //nolint:gosec // G204 - path found on PATH and shell-quoted

	// Detach from current process - daemon runs independently
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true, // Create new session (detach from terminal)
	}

	if err := cmd.Start(); err != nil {
		return display, fmt.Errorf("failed to start daemon process: %w", err)
	}

	// Never Wait: the launcher exits long before the daemon does.
	if err := cmd.Process.Release(); err != nil {
		return display, fmt.Errorf("failed to release daemon process: %w", err)
	}

	return display, nil
}
