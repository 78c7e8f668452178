// Package main is the entry point for the quill editor.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/commands"
	"github.com/dshills/quill/internal/logging"
	"github.com/dshills/quill/internal/preferences"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	logLevel string
	logFile  string
	logJSON  bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "quill [flags] [directory] [files...]",
		Short: "A modal terminal text editor",
		Long: `quill is a modal terminal text editor.

A leading directory argument becomes the workspace root. Remaining
arguments are opened as buffers; files that do not exist yet are
created on save.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f, args)
		},
	}

	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.logFile, "log-file", logging.DefaultFile(), "file to append logs to, empty to discard")
	cmd.Flags().BoolVar(&f.logJSON, "log-json", false, "write logs as JSON")
	return cmd
}

func run(ctx context.Context, f flags, args []string) error {
	logger, closer, err := logging.New(logging.Config{
		Level: logging.ParseLevel(f.logLevel),
		File:  f.logFile,
		JSON:  f.logJSON,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	store := openPreferences(logger)
	defer store.Close()

	handler, err := commands.NewHandler(store.Get(), logger)
	if err != nil {
		return err
	}

	application, err := app.New(append([]string{"quill"}, args...),
		app.WithLogger(logger),
		app.WithPreferences(store),
		app.WithInputHandler(handler),
	)
	if err != nil {
		logger.WithError(err).Error("initialization failed")
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = application.Run(ctx)
	logMetrics(logger, application.Metrics())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// openPreferences loads the preferences once for both the keymap and the
// application, and keeps them current while the editor runs.
func openPreferences(logger logrus.FieldLogger) *preferences.Store {
	p, err := preferences.LoadOrDefault()
	if err != nil {
		logger.WithError(err).Warn("loading preferences, using defaults")
	}

	store := preferences.NewStore(p)
	err = store.Watch(func(err error) {
		if err != nil {
			logger.WithError(err).Warn("reloading preferences")
			return
		}
		logger.Info("preferences reloaded")
	})
	if err != nil {
		logger.WithError(err).Debug("preferences watch unavailable")
	}
	return store
}

func logMetrics(logger logrus.FieldLogger, s app.MetricsSnapshot) {
	logger.WithFields(logrus.Fields{
		"frames":          s.Frames,
		"avg_frame":       s.AvgFrameTime,
		"max_frame":       s.MaxFrameTime,
		"render_failures": s.RenderFailures,
		"events":          s.Events,
		"event_errors":    s.EventErrors,
		"stale_indexes":   s.StaleIndexes,
		"uptime":          s.Uptime,
	}).Info("session metrics")
}
