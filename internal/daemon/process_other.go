//go:build !linux

package daemon

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/process"
)

// psutilLister reads process names and argument vectors through gopsutil,
// which knows how to fetch another process's argv on darwin and windows.
type psutilLister struct{}

// NewProcessLister returns the process lister for this platform.
func NewProcessLister() ProcessLister {
	return psutilLister{}
}

func (psutilLister) Processes() ([]ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	out := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		args, err := p.CmdlineSlice()
		if err != nil {
			// Access denied for system processes is normal
			args = nil
		}
		out = append(out, ProcessInfo{PID: int(p.Pid), Name: name, Args: args})
	}
	return out, nil
}
