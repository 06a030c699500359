// Package app wires configuration, logging and the screen into the todo
// command tree.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
)

// exitError carries an exit code out of a cobra RunE. A nil err means the
// message, if any, was already printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit code %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

type options struct {
	configDir string
	quiet     bool
	debug     bool

	cfg *config.Config
}

// NewRootCmd creates the root command with injectable IO.
func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "todo",
		Short: "A single-screen task list",
		Long: `todo keeps a task list in memory for as long as the screen is open.
Run without a subcommand to open the terminal UI.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts, stdin, stdout)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.configDir, "config", "", "Override config directory")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress informational output")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	root.AddCommand(newShellCmd(opts, stdin, stdout, stderr))
	root.AddCommand(newServeCmd(opts, stderr))
	root.AddCommand(newVersionCmd(stdout))

	return root
}

// Execute runs the root command with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitcode.Success
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.err != nil {
			fmt.Fprintf(stderr, "error: %v\n", exitErr.err)
		}
		return exitErr.code
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return exitcode.UserError
}

func (o *options) load() error {
	cfg, err := config.Load(o.configDir)
	if err != nil {
		return &exitError{code: exitcode.ConfigError, err: err}
	}
	cfg.Quiet = o.quiet
	cfg.Debug = o.debug
	o.cfg = cfg
	return nil
}

// newLogger returns a text logger on w, at debug level when cfg.Debug is set.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		// Skip config loading so version works with a broken config.yaml.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(stdout, "todo %s\n", commands.Version)
			return nil
		},
	}
}

// isTerminal reports whether r is an interactive character device.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
