package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ExternalCommandName returns the file name of the NodeJS zowe command
// on the given operating system.
func ExternalCommandName(goos string) string {
	if goos == "windows" {
		return "zowe.cmd"
	}
	return "zowe"
}

// SelfPath returns the absolute path of the running launcher with
// symlinks resolved.
func SelfPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

// FindExternalCommand searches pathEnv (a PATH value) for name and returns
// the first executable candidate that is not the launcher itself. Candidates
// are compared with self case-insensitively, both as found and with
// symlinks resolved, so a "zowe" link to this binary is skipped.
//
// pathExt is the Windows PATHEXT list; each extension is also tried.
// Relative PATH entries are ignored.
func FindExternalCommand(name, pathEnv, pathExt, self string) (string, bool) {
	names := []string{name}
	if pathExt != "" && filepath.Ext(name) == "" {
		for _, ext := range strings.Split(pathExt, ";") {
			if ext != "" {
				names = append(names, name+strings.ToLower(ext))
			}
		}
	}

	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" || !filepath.IsAbs(dir) {
			continue
		}
		for _, n := range names {
			candidate := filepath.Join(dir, n)
			if !isExecutableFile(candidate) {
				continue
			}
			if isSelf(candidate, self) {
				continue
			}
			return candidate, true
		}
	}
	return "", false
}

func isSelf(candidate, self string) bool {
	if self == "" {
		return false
	}
	if strings.EqualFold(candidate, self) {
		return true
	}
	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return false
	}
	return strings.EqualFold(resolved, self)
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
