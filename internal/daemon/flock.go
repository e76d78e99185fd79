package daemon

import (
	"errors"
	"os"
)

// ErrLockHeld is returned by AcquireLock when another launcher holds the lock.
var ErrLockHeld = errors.New("daemon launch lock held by another process")

// FileLock holds an exclusive file lock that auto-releases on process death.
// The OS releases the lock automatically when the process exits (even SIGKILL).
type FileLock struct {
	path string
	file *os.File
}

// LockPath returns the path to the lock file.
func (l *FileLock) LockPath() string {
	return l.path
}
