package daemon

// Launcher starts the daemon detached from the launcher's lifetime.
// LaunchDetached returns the command line it ran (or tried to run) so it
// can be shown if the daemon later proves unreachable.
type Launcher interface {
	LaunchDetached(zowePath string) (string, error)
}
