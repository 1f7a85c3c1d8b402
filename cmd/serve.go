package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Mida-Energy/report-generator/internal/contract"
)

// serveCmd runs the background generation loop.
var serveCmd = &cobra.Command{
	Use:   "serve [data-dir]",
	Short: "Run the scheduler and generate reports on an interval.",
	Long: `Start the background scheduler and generate a report every interval.

Each cycle collects the configured analysis window, analyzes it, renders the
PDF and registers it in the history catalog. The next fire time is computed
from the previous completion, so a slow cycle delays the following one rather
than overlapping it. Only one cycle runs at a time.

Stop with Ctrl+C; an in-flight cycle finishes before exit is forced.

Examples:
  # Generate a daily report from CSV exports in ./exports
  midareport serve ./exports

  # Hourly reports over a 24h sliding window
  midareport serve --interval 1h --window 24h`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cat, err := openCatalog()
		if err != nil {
			contract.LogFatal("Cannot open catalog", err)
		}
		defer func() { _ = cat.Close() }()

		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sched := buildScheduler(cat)
		fmt.Printf("Scheduler started: interval %s, window %s\n", cfg.Interval, cfg.Window)
		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			contract.LogFatal("Scheduler stopped", err)
		}
	},
}
