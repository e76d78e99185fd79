//go:build !unix && !windows

package daemon

// AcquireLock is a no-op on platforms without file locking.
func AcquireLock(path string) (*FileLock, error) {
	return &FileLock{path: path}, nil
}

// Release is a no-op on platforms without file locking.
func (l *FileLock) Release() error {
	return nil
}
