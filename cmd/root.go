package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Mida-Energy/report-generator/internal/catalog"
	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/internal/report"
	"github.com/Mida-Energy/report-generator/internal/scheduler"
	"github.com/Mida-Energy/report-generator/internal/telemetry"
	"github.com/Mida-Energy/report-generator/schema"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg is the validated configuration shared by every command.
var cfg = &contract.Config{}

// input receives the raw values Viper resolves from file, env and flags
// before validation turns them into cfg.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "midareport",
	Short:              "Analyze energy telemetry and generate consumption reports.",
	Long:               `Midareport turns raw meter telemetry into statistical analysis, recommendations and cataloged PDF reports.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig locates the config file and registers environment and defaults.
func initConfig() {
	// An explicit --config wins over the search path
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".midareport") // Without extension
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Environment variables: MIDA_DATA_DIR overrides data-dir, etc.
	viper.SetEnvPrefix("MIDA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("window", "30d")
	viper.SetDefault("data-dir", ".")
	viper.SetDefault("catalog-backend", schema.SQLiteBackend)
	viper.SetDefault("catalog-db-connect", "")
	viper.SetDefault("interval", "24h")
	viper.SetDefault("cycle-timeout", "10m")
	viper.SetDefault("emoji", "yes")
	viper.SetDefault("color", "yes")
}

// sharedSetup resolves all config sources into cfg and validates the result.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// A missing config file is not an error; defaults, env and flags remain.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// Viper never sees positional arguments
	if len(args) == 1 {
		input.DataDir = args[0]
	}

	return contract.ProcessAndValidate(cfg, input)
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile is the minimal file-only load used by setups that must not
// touch the catalog or validate the full config, such as migrate.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".midareport")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// openCatalog connects the history catalog from the validated config.
func openCatalog() (contract.Catalog, error) {
	store, err := catalog.NewStore(cfg.CatalogBackend, cfg.CatalogDBConnect, cfg.ArtifactsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return store, nil
}

// buildScheduler wires a scheduler around the configured collaborators.
func buildScheduler(cat contract.Catalog) *scheduler.Scheduler {
	source := telemetry.NewCSVSource(cfg.DataDir)
	renderer := report.NewPDFRenderer()
	return scheduler.New(cfg, source, renderer, cat)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
