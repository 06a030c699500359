package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return []string{"?"} }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "help" }
func (c *HelpCmd) Mutates() bool     { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  list [--open]        List tasks (alias: ls)
  add <title...>       Create a task (aliases: create, new)
  toggle <id>          Flip a task between open and completed (aliases: done, check)
  rm <id>              Delete a task (aliases: delete, del)
  help                 Print usage
  version              Print version
  quit                 Leave the shell (alias: exit)

Common flags:
  --quiet              Suppress informational output

Tasks are addressed by id, as printed in the first column of list.
`
