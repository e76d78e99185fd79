// Package daemon establishes the launcher's connection to the Zowe daemon,
// starting the daemon when none is running.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"
)

// Connection defaults.
const (
	DefaultMaxAttempts = 5
	DefaultRetryDelay  = 3 * time.Second
	DefaultDialTimeout = 5 * time.Second
)

// State is the connection state of a Connector.
type State int

const (
	// StateDisconnected is the initial state and the state after a failed Connect.
	StateDisconnected State = iota
	// StateConnecting means Connect is dialing or waiting between attempts.
	StateConnecting
	// StateConnected means a connection was handed to the caller.
	StateConnected
	// StateClosed means the handed-out connection was closed.
	StateClosed
)

// String returns the string representation of a connection state.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// DialFunc opens a network connection.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Connector connects to the daemon, launching it on the first failed
// attempt when no daemon process exists.
type Connector struct {
	Address     string
	Daemon      Bootstrapper
	Dial        DialFunc
	MaxAttempts int
	RetryDelay  time.Duration
	// LockPath serializes daemon launches between concurrent launchers.
	// Empty disables the lock.
	LockPath string
	Out      io.Writer // user-facing notices
	Logger   *slog.Logger

	mu    sync.Mutex
	state State
}

// NewConnector creates a connector with the default attempt limit, retry
// delay and TCP dialer.
func NewConnector(address string, daemon Bootstrapper, out io.Writer, logger *slog.Logger) *Connector {
	dialer := &net.Dialer{Timeout: DefaultDialTimeout}
	return &Connector{
		Address:     address,
		Daemon:      daemon,
		Dial:        dialer.DialContext,
		MaxAttempts: DefaultMaxAttempts,
		RetryDelay:  DefaultRetryDelay,
		Out:         out,
		Logger:      logger,
	}
}

// State returns the current connection state.
func (c *Connector) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Connector) setState(s State) {
	c.mu.Lock()
	prev := c.state
	c.state = s
	c.mu.Unlock()
	if prev != s {
		c.Logger.Debug("connection state", "from", prev, "to", s)
	}
}

// Connect returns a connection to the daemon.
//
// On each failed attempt the supervisor is asked whether a daemon is
// running. On the first attempt a missing daemon is launched. On a later
// attempt a missing daemon that this launcher started is fatal
// (ExitStartedDaemonUnreachable). After MaxAttempts failures Connect fails
// with ExitCannotConnect. Attempts are RetryDelay apart.
func (c *Connector) Connect(ctx context.Context) (net.Conn, error) {
	c.setState(StateConnecting)

	var (
		weStarted bool
		daemonCmd = "No value was set"
		lock      *FileLock
	)
	defer func() {
		if err := lock.Release(); err != nil {
			c.Logger.Warn("failed to release launch lock", "error", err)
		}
	}()

	for attempt := 1; ; attempt++ {
		if attempt > 1 {
			fmt.Fprintln(c.Out, "Attempting to connect again ...")
		}

		conn, err := c.Dial(ctx, "tcp", c.Address)
		if err == nil {
			c.Logger.Debug("connected to daemon", "address", c.Address, "attempt", attempt)
			c.setState(StateConnected)
			return &trackedConn{Conn: conn, onClose: func() { c.setState(StateClosed) }}, nil
		}
		c.Logger.Debug("connection attempt failed", "address", c.Address, "attempt", attempt, "error", err)

		if !c.Daemon.IsRunning() {
			if attempt == 1 {
				started, cmdLine, held, err := c.launch()
				if err != nil {
					c.setState(StateDisconnected)
					return nil, err
				}
				lock = held
				if started {
					weStarted = true
					daemonCmd = cmdLine
				}
			} else if weStarted {
				c.setState(StateDisconnected)
				return nil, &FatalError{
					Code:    ExitStartedDaemonUnreachable,
					Message: fmt.Sprintf("This background Zowe process that we started is not running:\n    %s\nTerminating.", daemonCmd),
				}
			}
		}

		if attempt >= c.maxAttempts() {
			c.setState(StateDisconnected)
			return nil, &FatalError{
				Code:    ExitCannotConnect,
				Message: fmt.Sprintf("Unable to connect to Zowe background process. Terminating after %d attempts", attempt),
				Err:     err,
			}
		}

		// Pause between attempts to let a slow system start the daemon
		c.Logger.Debug("waiting before next attempt", "delay", c.RetryDelay)
		if err := sleepContext(ctx, c.RetryDelay); err != nil {
			c.setState(StateDisconnected)
			return nil, err
		}
	}
}

// launch starts the daemon unless another launcher is already doing so.
// started is false when the launch lock was held elsewhere.
func (c *Connector) launch() (started bool, cmdLine string, lock *FileLock, err error) {
	if c.LockPath != "" {
		lock, err = AcquireLock(c.LockPath)
		switch {
		case errors.Is(err, ErrLockHeld):
			c.Logger.Info("another zowex is starting the daemon, waiting for it", "lock", c.LockPath)
			return false, "", nil, nil
		case err != nil:
			c.Logger.Warn("launch lock unavailable, starting daemon without it", "lock", c.LockPath, "error", err)
			lock = nil
		}
	}

	cmdLine, err = c.Daemon.Start()
	if err != nil {
		_ = lock.Release()
		return false, cmdLine, nil, err
	}
	return true, cmdLine, lock, nil
}

func (c *Connector) maxAttempts() int {
	if c.MaxAttempts < 1 {
		return DefaultMaxAttempts
	}
	return c.MaxAttempts
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// trackedConn reports Close to its Connector and exposes half-close when
// the underlying connection supports it.
type trackedConn struct {
	net.Conn
	onClose func()
	once    sync.Once
}

func (c *trackedConn) Close() error {
	c.once.Do(c.onClose)
	return c.Conn.Close()
}

// CloseRead shuts down the reading side of the connection.
func (c *trackedConn) CloseRead() error {
	if cr, ok := c.Conn.(interface{ CloseRead() error }); ok {
		return cr.CloseRead()
	}
	return nil
}

// CloseWrite shuts down the writing side of the connection.
func (c *trackedConn) CloseWrite() error {
	if cw, ok := c.Conn.(interface{ CloseWrite() error }); ok {
		return cw.CloseWrite()
	}
	return nil
}
