package daemon

import (
	"log/slog"
	"strings"
)

// Identity of the background process launched by the NodeJS zowe command.
const (
	runtimeName   = "node"
	packageMarker = "@zowe"
	cliMarker     = "cli"

	// DaemonFlag starts the NodeJS zowe command in daemon mode.
	DaemonFlag = "--daemon"
)

// ProcessInfo describes one OS process seen during a scan.
type ProcessInfo struct {
	PID  int
	Name string
	Args []string
}

// ProcessLister enumerates running processes with their argument vectors.
// Platform implementations are returned by NewProcessLister.
type ProcessLister interface {
	Processes() ([]ProcessInfo, error)
}

// MatchDaemonProcess reports whether p is a zowe daemon: a node process
// whose first argument is the @zowe/cli entry point and whose second
// argument is the daemon flag.
func MatchDaemonProcess(p ProcessInfo) bool {
	if !strings.Contains(strings.ToLower(p.Name), runtimeName) {
		return false
	}
	if len(p.Args) < 3 {
		return false
	}
	entry := strings.ToLower(p.Args[1])
	if !strings.Contains(entry, packageMarker) || !strings.Contains(entry, cliMarker) {
		return false
	}
	return strings.ToLower(p.Args[2]) == DaemonFlag
}

// FindDaemonProcess returns the first process in procs that is a zowe daemon.
func FindDaemonProcess(procs []ProcessInfo) (ProcessInfo, bool) {
	for _, p := range procs {
		if MatchDaemonProcess(p) {
			return p, true
		}
	}
	return ProcessInfo{}, false
}

// DetectDaemon scans running processes for a zowe daemon. A failed scan
// is logged and treated as "not running".
func DetectDaemon(lister ProcessLister, logger *slog.Logger) (ProcessInfo, bool) {
	procs, err := lister.Processes()
	if err != nil {
		logger.Warn("process scan failed", "error", err)
		return ProcessInfo{}, false
	}

	p, ok := FindDaemonProcess(procs)
	if ok {
		// Only reached when we could not connect, so this helps diagnose why.
		logger.Info("background Zowe process is running", "pid", p.PID, "name", p.Name, "cmd", p.Args)
	}
	return p, ok
}
