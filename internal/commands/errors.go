package commands

import (
	"errors"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/service"
)

// reportError prints err on errOut and maps it to an exit code.
func reportError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.NotFound
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
}

// reportTaskIDError prints a ParseTaskID failure.
func reportTaskIDError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}
