// Package cli parses command lines and runs them against a screen's service,
// either once or as an interactive line shell.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"todo/internal/exitcode"
	"todo/internal/output"
)

// Prompt is written before each line the shell reads.
const Prompt = "> "

// Shell reads command lines from in and dispatches them one at a time.
type Shell struct {
	dispatcher *Dispatcher
	prompt     bool
}

// NewShell creates a shell. When prompt is false no prompt is written,
// which suits piped input.
func NewShell(d *Dispatcher, prompt bool) *Shell {
	return &Shell{dispatcher: d, prompt: prompt}
}

// Run renders the list, then dispatches lines until quit, exit, end of input
// or ctx cancellation. It returns the exit code of the last dispatched
// command, or Success if none ran.
func (s *Shell) Run(ctx context.Context, in io.Reader, out, errOut io.Writer) (int, error) {
	if !s.dispatcher.cfg.Quiet {
		output.FormatList(out, s.dispatcher.svc.List())
	}

	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(in, done)

	last := exitcode.Success
	for {
		if err := ctx.Err(); err != nil {
			return last, nil
		}
		if s.prompt {
			fmt.Fprint(out, Prompt)
		}

		var line string
		select {
		case <-ctx.Done():
			return last, nil
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return last, fmt.Errorf("read input: %w", err)
				}
				return last, nil
			}
			line = l
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			return last, nil
		}
		last = s.dispatcher.Run(ctx, args, out, errOut)
	}
}

// readLines scans in on its own goroutine so a blocked read never holds up
// cancellation. lines is closed at end of input, after the scan error (nil
// on a clean end) has been sent on the second channel. Closing done stops
// delivery; a read already in progress finishes when in yields or closes.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}
