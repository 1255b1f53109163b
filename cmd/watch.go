package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/madstone-tech/loko/internal/adapters/cli"
	"github.com/madstone-tech/loko/internal/adapters/filesystem"
	"github.com/madstone-tech/loko/internal/adapters/logging"
)

// WatchCommand watches the project for changes and recompiles main.md on
// every debounced batch.
type WatchCommand struct {
	projectRoot string
	debounceMs  int
}

// NewWatchCommand creates a new watch command.
func NewWatchCommand(projectRoot string) *WatchCommand {
	return &WatchCommand{
		projectRoot: projectRoot,
		debounceMs:  500,
	}
}

// WithDebounce sets the debounce delay in milliseconds.
func (c *WatchCommand) WithDebounce(ms int) *WatchCommand {
	c.debounceMs = ms
	return c
}

// Execute runs the watch command.
func (c *WatchCommand) Execute(ctx context.Context) error {
	watcher, err := filesystem.NewFileWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	events, err := watcher.Watch(ctx, c.projectRoot)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Println("👁  Watching for changes...")
	fmt.Printf("   Project: %s\n", c.projectRoot)
	fmt.Println("   Press Ctrl+C to stop")
	fmt.Println()

	logger := logging.New(logging.LevelInfo)
	progress := cli.NewProgressReporter()

	debounceTimer := time.NewTimer(time.Duration(c.debounceMs) * time.Millisecond)
	debounceTimer.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	progress.ReportInfo("Initial compile...")
	c.recompile(ctx, logger, progress)

	for {
		select {
		case <-sigChan:
			fmt.Println("\n✓ Watch stopped")
			return nil

		case event := <-events:
			if event.Path == "" {
				return nil
			}
			debounceTimer.Reset(time.Duration(c.debounceMs) * time.Millisecond)
			progress.ReportInfo(fmt.Sprintf("Change detected: %s", event.Path))

		case <-debounceTimer.C:
			progress.ReportInfo("Recompiling...")
			c.recompile(ctx, logger, progress)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *WatchCommand) recompile(ctx context.Context, logger *logging.Logger, progress *cli.ProgressReporter) {
	start := time.Now()
	doc, _, err := runCompile(ctx, c.projectRoot, logger)
	if err != nil {
		progress.ReportError(err)
		return
	}
	progress.ReportSuccess(fmt.Sprintf("Compiled %s (%d pages, %v)", narrativeEntryPoint, len(doc.Pages), time.Since(start).Round(10*time.Millisecond)))
}
