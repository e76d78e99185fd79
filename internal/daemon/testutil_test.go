package daemon

import (
	"errors"
	"io"
	"log/slog"
	"sync"
)

// discardLogger returns a logger that drops everything.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeLister returns a fixed process list.
type fakeLister struct {
	procs []ProcessInfo
	err   error
}

func (f fakeLister) Processes() ([]ProcessInfo, error) {
	return f.procs, f.err
}

// fakeLauncher records the paths it was asked to launch.
type fakeLauncher struct {
	mu       sync.Mutex
	launched []string
	err      error
}

func (f *fakeLauncher) LaunchDetached(zowePath string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.launched = append(f.launched, zowePath)
	return "sh -c " + zowePath + " " + DaemonFlag, f.err
}

// fakeBootstrapper scripts IsRunning answers and counts Start calls.
type fakeBootstrapper struct {
	mu       sync.Mutex
	running  []bool // answer per IsRunning call; the last one repeats
	calls    int
	starts   int
	startErr error
}

func (f *fakeBootstrapper) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.running) == 0 {
		return false
	}
	i := f.calls
	if i >= len(f.running) {
		i = len(f.running) - 1
	}
	f.calls++
	return f.running[i]
}

func (f *fakeBootstrapper) Start() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	return "sh -c /usr/bin/zowe --daemon", f.startErr
}

func (f *fakeBootstrapper) startCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

var errRefused = errors.New("connection refused")
