package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/internal/outwriter"
)

// generateCmd runs one report generation cycle.
var generateCmd = &cobra.Command{
	Use:   "generate [data-dir]",
	Short: "Generate one report from the telemetry in the analysis window.",
	Long: `Run a single generation cycle: collect telemetry samples, analyze them,
render the PDF report and register it in the history catalog.

The analysis window defaults to the last 30 days anchored at now; use
--start/--end for an explicit range or --window for a relative one.

Examples:
  # Report on the last 30 days of CSV exports in the current directory
  midareport generate

  # Report on a week of data for two meters
  midareport generate ./exports --devices shellyem-a1,shellyem-b2 --window 7d

  # Explicit range with a custom title
  midareport generate --start 2025-06-01T00:00:00Z --end 2025-06-30T23:59:59Z --title "June Consumption"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cat, err := openCatalog()
		if err != nil {
			contract.LogFatal("Cannot open catalog", err)
		}
		defer func() { _ = cat.Close() }()

		sched := buildScheduler(cat)
		record, err := sched.TriggerNow(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot generate report", err)
		}

		if err := outwriter.NewOutWriter().WriteRecord(*record, cfg); err != nil {
			contract.LogFatal("Cannot write record", err)
		}
	},
}
