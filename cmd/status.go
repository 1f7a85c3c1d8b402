package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/internal/outwriter"
)

// statusCmd probes the history catalog.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display catalog statistics and connection details",
	Long: `Show detailed information about the history catalog.

Displays:
- Backend type and connection status
- Total number of cataloged reports
- Last report timestamp
- Artifacts directory

Use this to:
- Verify the catalog backend is reachable
- Monitor report accumulation over time
- Check where artifacts are stored

Examples:
  # Check catalog status
  midareport status

  # Machine-readable probe for monitoring
  midareport status --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cat, err := openCatalog()
		if err != nil {
			contract.LogFatal("Cannot open catalog", err)
		}
		defer func() { _ = cat.Close() }()

		status, err := cat.GetStatus()
		if err != nil {
			contract.LogFatal("Cannot get catalog status", err)
		}
		// No scheduler runs in one-shot mode, so the probe is catalog-only.
		if err := outwriter.NewOutWriter().WriteStatus(status, nil, cfg); err != nil {
			contract.LogFatal("Cannot write status", err)
		}
	},
}
