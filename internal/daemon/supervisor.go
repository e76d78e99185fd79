package daemon

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
)

// Bootstrapper is what the Connector needs from the daemon supervisor.
type Bootstrapper interface {
	// IsRunning reports whether a daemon process exists.
	IsRunning() bool
	// Start launches a daemon and returns the command line used.
	Start() (string, error)
}

// Supervisor detects and launches the zowe daemon.
type Supervisor struct {
	Lister   ProcessLister
	Launcher Launcher
	Out      io.Writer // user-facing notices
	Logger   *slog.Logger

	// Self returns the launcher's own executable path. Defaults to SelfPath.
	Self func() (string, error)
	// Getenv reads PATH and PATHEXT. Defaults to os.Getenv.
	Getenv func(string) string
	// GOOS selects the external command name. Defaults to runtime.GOOS.
	GOOS string
}

// NewSupervisor creates a supervisor using the platform process lister and
// launcher.
func NewSupervisor(out io.Writer, logger *slog.Logger) *Supervisor {
	return &Supervisor{
		Lister:   NewProcessLister(),
		Launcher: NewLauncher(),
		Out:      out,
		Logger:   logger,
		Self:     SelfPath,
		Getenv:   os.Getenv,
		GOOS:     runtime.GOOS,
	}
}

// IsRunning scans the process table for a zowe daemon.
func (s *Supervisor) IsRunning() bool {
	_, ok := DetectDaemon(s.Lister, s.Logger)
	return ok
}

// ExternalCommand resolves the NodeJS zowe command that can run the daemon.
func (s *Supervisor) ExternalCommand() (string, error) {
	self, err := s.Self()
	if err != nil {
		return "", &FatalError{
			Code:    ExitCannotResolveSelf,
			Message: "Unable to get path to my own executable. Terminating.",
			Err:     err,
		}
	}

	name := ExternalCommandName(s.GOOS)
	path, ok := FindExternalCommand(name, s.Getenv("PATH"), s.Getenv("PATHEXT"), self)
	if !ok {
		return "", &FatalError{
			Code:    ExitNoExternalInstall,
			Message: "Could not find a NodeJS zowe command on your path.\nCannot launch Zowe background process. Terminating.",
		}
	}

	s.Logger.Debug("resolved NodeJS zowe command", "path", path, "self", self)
	return path, nil
}

// Start launches the daemon detached and returns the command line used.
func (s *Supervisor) Start() (string, error) {
	zowePath, err := s.ExternalCommand()
	if err != nil {
		return "", err
	}

	fmt.Fprintln(s.Out, "Starting a background process to increase performance ...")

	display, err := s.Launcher.LaunchDetached(zowePath)
	if err != nil {
		return display, &FatalError{
			Code:    ExitCannotStartDaemon,
			Message: fmt.Sprintf("Failed to start the following process.\n    %s\nTerminating.", display),
			Err:     err,
		}
	}

	s.Logger.Debug("daemon launched", "cmd", display)
	return display, nil
}
