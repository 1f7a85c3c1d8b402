// Package cmd defines the command-line interface for midareport.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyFetchCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	// Add the export subcommands to the parent export command
	exportCmd.AddCommand(exportReportsCmd)
	exportCmd.AddCommand(exportSamplesCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("devices", "d", "", "Comma-separated list of device IDs to include (empty = all)")
	rootCmd.PersistentFlags().String("start", "", "Start date in ISO8601")
	rootCmd.PersistentFlags().String("end", "", "End date in ISO8601")
	rootCmd.PersistentFlags().StringP("window", "w", "30d", "Analysis window when start/end are not given (e.g. 12h, 7d, 4w)")
	rootCmd.PersistentFlags().String("data-dir", ".", "Directory scanned for telemetry CSV exports")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of history records to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("catalog-backend", string(schema.SQLiteBackend), "Catalog backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("catalog-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("artifacts-dir", "", "Directory for PDF artifacts and the sqlite catalog (default ~/.midareport)")
	rootCmd.PersistentFlags().Float64("sigma", 0, "Anomaly sensitivity in standard deviations (0 = default)")
	rootCmd.PersistentFlags().Float64("night-ratio", 0, "Night alert threshold as fraction of peak power (0 = default)")
	rootCmd.PersistentFlags().Float64("emission-factor", 0, "CO2 emission factor in kg per kWh (0 = default)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of generateCmd to Viper
	generateCmd.Flags().String("title", "", "Report title printed on the cover page")
	if err := viper.BindPFlags(generateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding generate flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("interval", "24h", "Scheduler fire interval (e.g. 1h, 24h, 7d)")
	serveCmd.Flags().String("cycle-timeout", "10m", "Advisory cycle duration; slower cycles log a warning")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of migrateCmd to Viper
	migrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(migrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding migrate flags", err)
	}
}
