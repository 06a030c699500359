package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

// Dispatcher handles command-line parsing and dispatch against one service.
type Dispatcher struct {
	registry *commands.Registry
	cfg      *config.Config
	svc      service.Service
}

// NewDispatcher creates a new dispatcher with the given registry, config and service.
func NewDispatcher(registry *commands.Registry, cfg *config.Config, svc service.Service) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		cfg:      cfg,
		svc:      svc,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	quiet := d.cfg.Quiet
	fs.BoolVar(&quiet, "quiet", quiet, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		errStr := err.Error()

		if strings.HasPrefix(errStr, "flag needs an argument:") {
			fmt.Fprintf(errOut, "error: %s\n", errStr)
			return exitcode.UserError
		}
		if strings.HasPrefix(errStr, "flag provided but not defined:") {
			flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
			return exitcode.UserError
		}

		fmt.Fprintf(errOut, "error: %s\n", errStr)
		return exitcode.UserError
	}

	// Positional args must not look like flags
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	// Per-command copy so --quiet does not leak into later commands.
	cfg := *d.cfg
	cfg.Quiet = quiet

	code := cmd.Run(ctx, &cfg, d.svc, positionalArgs, out, errOut)

	// Views render the current list after every successful mutation.
	if code == exitcode.Success && cmd.Mutates() && !cfg.Quiet {
		output.FormatList(out, d.svc.List())
	}
	return code
}
