package session

import (
	"os"
	"path/filepath"
	"strings"
)

// DirFlag introduces the caller's working directory in the initial payload.
const DirFlag = "--dcd"

// BuildPayload builds the command line sent to the daemon at session start:
// the arguments joined by spaces, DirFlag, and cwd with a trailing path
// separator.
func BuildPayload(args []string, cwd string) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(args, " "))
	b.WriteString(" " + DirFlag + " ")
	b.WriteString(cwd)
	if !strings.HasSuffix(cwd, string(filepath.Separator)) {
		b.WriteByte(filepath.Separator)
	}
	return []byte(b.String())
}

// WorkingDir returns the absolute current working directory.
func WorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Abs(cwd)
}
