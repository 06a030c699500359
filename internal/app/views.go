package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/exitcode"
	"todo/internal/httpapi"
	"todo/internal/screen"
	"todo/internal/tui"
)

// openScreen creates the screen every view runs on.
func openScreen(o *options, logger *slog.Logger) (*screen.Screen, error) {
	scr, err := screen.New(o.cfg, logger)
	if err != nil {
		return nil, &exitError{code: exitcode.ConfigError, err: err}
	}
	logger.Debug("screen opened", "session", scr.ID())
	return scr, nil
}

func runTUI(ctx context.Context, o *options, stdin io.Reader, stdout io.Writer) error {
	// The terminal belongs to the UI; logs go to a file or nowhere.
	logOut := io.Discard
	if o.cfg.Debug {
		if err := o.cfg.EnsureDir(); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		f, err := os.OpenFile(o.cfg.LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(o.cfg, logOut)

	scr, err := openScreen(o, logger)
	if err != nil {
		return err
	}
	defer scr.Close()

	return tui.Run(ctx, scr, stdin, stdout)
}

func newShellCmd(o *options, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Edit the task list line by line",
		Long: `shell reads commands such as "add Buy milk", "toggle 3" or "rm 2"
from standard input and prints the list after every change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(o.cfg, stderr)
			scr, err := openScreen(o, logger)
			if err != nil {
				return err
			}
			defer scr.Close()

			d := cli.NewDispatcher(commands.DefaultRegistry, o.cfg, scr)
			code, err := cli.NewShell(d, isTerminal(stdin)).Run(cmd.Context(), stdin, stdout, stderr)
			if err != nil {
				return &exitError{code: exitcode.UserError, err: err}
			}
			if code != exitcode.Success {
				return &exitError{code: code}
			}
			return nil
		},
	}
}

func newServeCmd(o *options, stderr io.Writer) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task list over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = o.cfg.Listen()
			}
			logger := newLogger(o.cfg, stderr)
			scr, err := openScreen(o, logger)
			if err != nil {
				return err
			}
			defer scr.Close()

			handler := httpapi.NewTaskHandler(scr, logger)
			return serve(cmd.Context(), o, listen, httpapi.NewRouter(handler, logger), logger)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default from config, else :8080)")
	return cmd
}

// serve runs an HTTP server until ctx is done, then shuts it down within
// the configured timeout.
func serve(ctx context.Context, o *options, addr string, h http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Addr:    addr,
		Handler: h,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shut down signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), o.cfg.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("shut down gracefully")
	return nil
}
