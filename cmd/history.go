package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/internal/outwriter"
)

// historyCmd groups the catalog inspection subcommands.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage the report history catalog",
	Long: `Inspect the durable history of generated reports.

Every completed or failed generation cycle leaves a catalog record with its
device set, timestamp, status and artifact size. Records survive restarts and
are only removed by an explicit delete.

Subcommands:
  list   - Show cataloged reports, most recent first
  fetch  - Write a report's PDF artifact to a file
  delete - Remove a record and its artifact

Examples:
  # Show the last 10 reports
  midareport history list --limit 10

  # Save a report's PDF locally
  midareport history fetch 5f0c6f0a-... --output-file june.pdf`,
}

// historySetupWrapper provides PreRunE for history commands. The full shared
// setup applies so backend flags and output options resolve the same way as
// for generation.
func historySetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, nil)
}

// historyListCmd lists catalog records.
var historyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show cataloged reports, most recent first.",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cat, err := openCatalog()
		if err != nil {
			contract.LogFatal("Cannot open catalog", err)
		}
		defer func() { _ = cat.Close() }()

		records, err := cat.List()
		if err != nil {
			contract.LogFatal("Cannot list reports", err)
		}
		if err := outwriter.NewOutWriter().WriteHistory(records, cfg); err != nil {
			contract.LogFatal("Cannot write history", err)
		}
	},
}

// historyFetchCmd retrieves a record and its PDF artifact.
var historyFetchCmd = &cobra.Command{
	Use:     "fetch <report-id>",
	Short:   "Show a report record and write its PDF artifact to --output-file.",
	Args:    cobra.ExactArgs(1),
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		cat, err := openCatalog()
		if err != nil {
			contract.LogFatal("Cannot open catalog", err)
		}
		defer func() { _ = cat.Close() }()

		record, err := cat.Get(args[0])
		if err != nil {
			contract.LogFatal("Cannot fetch report", err)
		}

		// The detail view goes to stdout; the artifact only leaves the
		// catalog when an explicit destination is given.
		detailCfg := cfg.Clone()
		detailCfg.OutputFile = ""
		if err := outwriter.NewOutWriter().WriteRecord(record, detailCfg); err != nil {
			contract.LogFatal("Cannot write record", err)
		}

		if cfg.OutputFile != "" {
			artifact, err := cat.ReadArtifact(record.ID)
			if err != nil {
				contract.LogFatal("Cannot read artifact", err)
			}
			if err := os.WriteFile(cfg.OutputFile, artifact, 0o644); err != nil {
				contract.LogFatal("Cannot write artifact", err)
			}
			fmt.Printf("Wrote artifact to %s\n", cfg.OutputFile)
		}
	},
}

// historyDeleteCmd removes a record and its artifact.
var historyDeleteCmd = &cobra.Command{
	Use:     "delete <report-id>",
	Short:   "Remove a report record and its PDF artifact.",
	Args:    cobra.ExactArgs(1),
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		cat, err := openCatalog()
		if err != nil {
			contract.LogFatal("Cannot open catalog", err)
		}
		defer func() { _ = cat.Close() }()

		if err := cat.Delete(args[0]); err != nil {
			contract.LogFatal("Cannot delete report", err)
		}
		fmt.Printf("Deleted report %s\n", args[0])
	},
}
