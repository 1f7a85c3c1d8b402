package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Mida-Energy/report-generator/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the midareport MCP server",
	Long:  `Launch an MCP server that allows AI agents to generate and inspect reports via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Stdio carries the protocol, so setup must not write to stdout.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		defer func() { _ = cat.Close() }()

		sched := buildScheduler(cat)
		return mcp.StartMCPServer(rootCtx, cfg, sched, cat)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
