package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	openOnly bool
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "list [--open]" }
func (c *ListCmd) Mutates() bool     { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.openOnly, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks := svc.List()
	if c.openOnly {
		open := tasks[:0]
		for _, t := range tasks {
			if !t.Completed {
				open = append(open, t)
			}
		}
		tasks = open
	}

	// An empty list is informational; the list itself never is.
	if len(tasks) == 0 && cfg.Quiet {
		return exitcode.Success
	}
	output.FormatList(out, tasks)
	return exitcode.Success
}
