//go:build linux

package daemon

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	ps "github.com/mitchellh/go-ps"
)

// procLister enumerates processes with go-ps and reads each argument
// vector from /proc/<pid>/cmdline.
type procLister struct {
	procRoot string
}

// NewProcessLister returns the process lister for this platform.
func NewProcessLister() ProcessLister {
	return procLister{procRoot: "/proc"}
}

func (l procLister) Processes() ([]ProcessInfo, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	out := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		data, err := os.ReadFile(filepath.Join(l.procRoot, strconv.Itoa(p.Pid()), "cmdline")) //nolint:gosec // G304 - procfs path built from a pid
		if err != nil {
			// Exited since the listing, or not ours to read
			continue
		}
		out = append(out, ProcessInfo{
			PID:  p.Pid(),
			Name: p.Executable(),
			Args: parseCmdline(data),
		})
	}
	return out, nil
}

// parseCmdline splits the NUL-separated contents of /proc/<pid>/cmdline.
func parseCmdline(data []byte) []string {
	data = bytes.TrimRight(data, "\x00")
	if len(data) == 0 {
		return nil
	}
	parts := bytes.Split(data, []byte{0})
	args := make([]string, len(parts))
	for i, p := range parts {
		args[i] = string(p)
	}
	return args
}
