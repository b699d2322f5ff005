package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfkit/internal/logger"
	"github.com/Faultbox/gltfkit/internal/validator"
)

var validateWatch bool

var validateCmd = &cobra.Command{
	Use:   "validate <file.gltf|file.glb>",
	Short: "Run the external schema validator against an asset",
	Long: `Runs the Khronos glTF validator binary (configurable via the
validator.binary config key) against the file and summarizes its JSON
report. With --watch, validation re-runs whenever the file changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false, "re-validate whenever the file changes")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	runner := &validator.Runner{Binary: cfg.Validator.Binary}

	if !validateWatch {
		return validateOnce(cmd, runner, args[0])
	}
	return watchAndValidate(cmd, runner, args[0])
}

func validateOnce(cmd *cobra.Command, runner *validator.Runner, path string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Validator.Timeout)
	defer cancel()

	report, err := runner.Run(ctx, path)
	if err != nil {
		return err
	}

	for _, msg := range report.Issues.Messages {
		where := msg.Pointer
		if where == "" {
			where = "-"
		}
		cmd.Printf("%-8s %-40s %s (%s)\n", validator.SeverityName(msg.Severity), msg.Code, msg.Text, where)
	}
	cmd.Printf("%s: %d errors, %d warnings, %d infos, %d hints\n",
		path, report.Issues.NumErrors, report.Issues.NumWarnings,
		report.Issues.NumInfos, report.Issues.NumHints)

	if !report.Valid() {
		return fmt.Errorf("validation failed with %d errors", report.Issues.NumErrors)
	}
	return nil
}

// watchAndValidate re-runs validation every time the file is rewritten,
// until interrupted. Editors typically replace files via rename, so the
// watch is on the parent directory rather than the file itself.
func watchAndValidate(cmd *cobra.Command, runner *validator.Runner, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	// Initial run; failures are reported but the watch keeps going.
	if err := validateOnce(cmd, runner, path); err != nil {
		logger.Warn("validation failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(watchErr))
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("file changed, re-validating", zap.String("file", path))
			if err := validateOnce(cmd, runner, path); err != nil {
				logger.Warn("validation failed", zap.Error(err))
			}
		}
	}
}
