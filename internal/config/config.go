// Package config resolves the launcher's effective configuration.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Environment variables consulted by Load.
const (
	EnvPort      = "ZOWE_DAEMON"
	EnvHome      = "ZOWE_CLI_HOME"
	EnvDaemonDir = "ZOWE_DAEMON_DIR"
	EnvLogLevel  = "ZOWEX_LOG_LEVEL"
)

const (
	// DefaultPort is the TCP port the daemon listens on unless overridden.
	DefaultPort = 4000

	// DefaultHost is the only address the launcher connects to.
	DefaultHost = "127.0.0.1"

	// DefaultLogLevel is used when neither zowex.json nor the environment set one.
	DefaultLogLevel = "info"

	lockFileName = "daemon.lock"
)

// Config represents the resolved launcher configuration.
type Config struct {
	Host      string // Daemon host, always loopback
	Port      string // Daemon port as a decimal string
	HomeDir   string // Zowe CLI home (zowex.json lives here)
	DaemonDir string // Directory for launcher/daemon runtime files
	LogLevel  string // debug, info, warn or error
}

// Error reports a configuration value that cannot be used.
type Error struct {
	Source string // where the value came from (env var name or file path)
	Value  string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid daemon port %q from %s: %v", e.Value, e.Source, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load resolves configuration with the following priority:
// 1. Environment variables (ZOWE_DAEMON, ZOWE_DAEMON_DIR, ZOWEX_LOG_LEVEL)
// 2. zowex.json in the Zowe home directory
// 3. Built-in defaults.
//
// getenv is usually os.Getenv; tests pass their own lookup.
func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Host:     DefaultHost,
		Port:     strconv.Itoa(DefaultPort),
		HomeDir:  homeDir(getenv),
		LogLevel: DefaultLogLevel,
	}
	cfg.DaemonDir = filepath.Join(cfg.HomeDir, "daemon")

	file, err := LoadLauncherFile(cfg.HomeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Join(cfg.HomeDir, FileName), err)
	}
	if file.Daemon.Port != 0 {
		port, err := normalizePort(strconv.Itoa(file.Daemon.Port))
		if err != nil {
			return nil, &Error{Source: filepath.Join(cfg.HomeDir, FileName), Value: strconv.Itoa(file.Daemon.Port), Err: err}
		}
		cfg.Port = port
	}
	if file.Daemon.Dir != "" {
		cfg.DaemonDir = file.Daemon.Dir
	}
	if file.Log.Level != "" {
		cfg.LogLevel = file.Log.Level
	}

	// Environment variables override the file
	if raw := getenv(EnvPort); raw != "" {
		port, err := normalizePort(raw)
		if err != nil {
			return nil, &Error{Source: EnvPort, Value: raw, Err: err}
		}
		cfg.Port = port
	}
	if dir := getenv(EnvDaemonDir); dir != "" {
		cfg.DaemonDir = dir
	}
	if level := getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	return cfg, nil
}

// Address returns the host:port the daemon is expected on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// LockPath returns the path of the lock file that serializes daemon launches.
func (c *Config) LockPath() string {
	return filepath.Join(c.DaemonDir, lockFileName)
}

// normalizePort parses a port and returns its canonical decimal form.
func normalizePort(raw string) (string, error) {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return "", errors.New("not a number")
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("port out of valid range: %d", port)
	}
	return strconv.Itoa(port), nil
}

// homeDir returns the Zowe CLI home directory.
// Resolution order: $ZOWE_CLI_HOME > ~/.zowe > $TMPDIR/.zowe
func homeDir(getenv func(string) string) string {
	if dir := getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".zowe")
	}
	return filepath.Join(home, ".zowe")
}
