package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	goruntime "runtime"

	"github.com/spf13/cobra"

	"github.com/zowe/zowex/internal/config"
	"github.com/zowe/zowex/internal/daemon"
	"github.com/zowe/zowex/internal/logging"
	"github.com/zowe/zowex/internal/session"
)

var (
	// Build info (set via ldflags).
	Version = "dev"
	Build   = "unknown"
)

// versionArg is the only argument zowex handles itself, and only when it is
// the sole argument.
const versionArg = "--zowex-version"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the launcher and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	exitCode := 0
	rootCmd := newRootCmd(&exitCode)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		return reportError(stderr, err)
	}
	return exitCode
}

func newRootCmd(exitCode *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zowex [command...]",
		Short: "Native launcher for the Zowe CLI daemon",
		Long: `zowex forwards its arguments to a running Zowe CLI daemon and relays
the daemon's output, prompts and exit code.

If no daemon is running, zowex starts one using the NodeJS zowe command
found on PATH. The daemon port is 4000 unless ZOWE_DAEMON says otherwise.`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] == versionArg {
				fmt.Fprintf(cmd.OutOrStdout(), "zowex v%s (build: %s, %s)\n", Version, Build, goruntime.Version())
				return nil
			}

			code, err := runCommand(cmd.Context(), args, cmd.OutOrStdout(), cmd.ErrOrStderr())
			*exitCode = code
			return err
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

// runCommand connects to the daemon, starting it if needed, and relays one
// command. It returns the daemon's exit code.
func runCommand(ctx context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		return 0, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log level: %w", err)
	}
	logger := logging.New(stderr, level).With("session", logging.NewSessionID())

	cwd, err := session.WorkingDir()
	if err != nil {
		return 0, fmt.Errorf("failed to get current directory: %w", err)
	}

	supervisor := daemon.NewSupervisor(stderr, logger)
	connector := daemon.NewConnector(cfg.Address(), supervisor, stderr, logger)
	connector.LockPath = cfg.LockPath()

	conn, err := connector.Connect(ctx)
	if err != nil {
		return 0, err
	}

	s := session.New(conn, stdout, session.NewTerminalPrompter(os.Stdin, stdout), logger)
	if err := s.Send(session.BuildPayload(args, cwd)); err != nil {
		_ = conn.Close()
		return 0, err
	}
	return s.Run()
}

// reportError prints err and returns the exit code it maps to.
func reportError(w io.Writer, err error) int {
	var fatal *daemon.FatalError
	if errors.As(err, &fatal) {
		if fatal.Err != nil {
			fmt.Fprintf(w, "Error: %v\n", fatal.Err)
		}
		fmt.Fprintln(w, fatal.Message)
		return fatal.Code
	}

	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(w, "Configuration error: %v\n", cfgErr)
		return 1
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}
