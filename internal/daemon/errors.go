package daemon

import "errors"

// Process exit codes for fatal launcher conditions.
const (
	ExitCannotConnect            = 100 // retries exhausted
	ExitCannotResolveSelf        = 101 // own executable path unknown
	ExitNoExternalInstall        = 102 // no other zowe command on PATH
	ExitCannotStartDaemon        = 103 // spawning the daemon failed
	ExitStartedDaemonUnreachable = 104 // the daemon we launched went away
)

// FatalError ends the launcher with a documented exit code.
// Message is the diagnostic shown to the user before exiting.
type FatalError struct {
	Code    int
	Message string
	Err     error
}

func (e *FatalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code carried by a FatalError anywhere in err's
// chain. The second result is false when err is not fatal.
func ExitCode(err error) (int, bool) {
	var fatal *FatalError
	if errors.As(err, &fatal) {
		return fatal.Code, true
	}
	return 0, false
}
