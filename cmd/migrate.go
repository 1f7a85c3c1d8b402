package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Mida-Energy/report-generator/internal/catalog"
	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/schema"
)

// migrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the catalog or create
// tables, allowing migrations to run on a fresh database.
func migrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("catalog-backend")
	connStr := viper.GetString("catalog-db-connect")

	// Handle empty backend as the sqlite default
	var backend schema.CatalogBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.CatalogBackend(strings.ToLower(backendStr))
	}
	if _, ok := schema.ValidCatalogBackends[backend]; !ok {
		return fmt.Errorf("invalid catalog backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CatalogBackend = backend
	cfg.CatalogDBConnect = connStr
	cfg.ArtifactsDir = viper.GetString("artifacts-dir")
	if cfg.ArtifactsDir == "" {
		cfg.ArtifactsDir = contract.GetDefaultArtifactsDir()
	}
	return nil
}

// migrateSetupWrapper wraps migrateSetup to provide PreRunE for the migrate command.
func migrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return migrateSetup()
}

// migrateCmd runs database migrations for the history catalog.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run catalog schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history catalog.

Migrations allow:
- Upgrading to new schema versions when midareport is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  midareport migrate

  # Migrate to specific version
  midareport migrate --target-version 1

  # Rollback to initial state
  midareport migrate --target-version 0`,
	PreRunE: migrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := catalog.Migrate(cfg.CatalogBackend, cfg.CatalogDBConnect, cfg.ArtifactsDir, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
