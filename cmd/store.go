package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/benchboard/core"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/internal/iostore"
	"github.com/huangsam/benchboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeBackendConfig reads and validates the store settings only.
func storeBackendConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("store-backend")))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, memory", backend)
	}
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	backend, connStr, err := storeBackendConfig()
	if err != nil {
		return err
	}
	if err := iostore.InitStores(backend, connStr); err != nil {
		return err
	}
	storeManager = iostore.Manager

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads the store settings without opening the store,
// so migrations can run on a fresh or rolled back database.
func storeMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := storeBackendConfig()
	if err != nil {
		return err
	}
	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetDBFilePath()
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	return nil
}

// storeCmd focused on store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by leaderboard commands. This skips variant and
// output validation for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the leaderboard record store",
	Long: `Manage the database that holds every leaderboard.

Supported backends: SQLite (default), MySQL, PostgreSQL, or Memory (process lifetime only)

Subcommands:
  status  - Show connection info, schema version and table sizes
  clear   - Remove all records
  migrate - Upgrade or roll back the schema
  seed    - Load records from a YAML file

Examples:
  # Check store status
  benchboard store status

  # Load demo records
  benchboard store seed examples/seed.yaml`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show the backend, its redacted target, the schema version and the
number of records of every leaderboard table.

Examples:
  benchboard store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetRecordStore().GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iostore.PrintStoreStatus(status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all leaderboard records",
	Long: `Delete all records from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Deletes every row and keeps the schema

Examples:
  # Clear SQLite store (default)
  benchboard store clear

  # Clear MySQL store (set connection string via env variable)
  BENCHBOARD_STORE_BACKEND=mysql BENCHBOARD_STORE_DB_CONNECT="..." benchboard store clear`,
	PreRunE: storeMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		// storeMigrateSetup defaults the SQLite connection string to the database file
		if err := iostore.ClearRecords(cfg.StoreBackend, cfg.StoreDBConnect, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the record store.

Each leaderboard table is one migration: 1 models, 2 logickor, 3 rag.
By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  benchboard store migrate

  # Migrate to specific version
  benchboard store migrate --target-version 2

  # Rollback to initial state
  benchboard store migrate --target-version 0`,
	PreRunE: storeMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion, true); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// storeSeedCmd loads records from a seed file.
var storeSeedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Load leaderboard records from a YAML seed file",
	Long: `Submit every entry of a YAML seed file. Entries go through the same
validation as 'benchboard submit' and get new IDs. Loading stops at the
first invalid entry.

The file maps leaderboard names to lists of form values:

  models:
    - model: gpt-4o
      ifeval: 80.6
      ...

Examples:
  benchboard store seed examples/seed.yaml`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		data, err := iostore.LoadSeedFile(args[0])
		if err != nil {
			contract.LogFatal("Failed to read seed file", err)
		}
		count, err := core.ApplySeed(rootCtx, storeManager.GetRecordStore(), data)
		if err != nil {
			contract.LogFatal(fmt.Sprintf("Seeding stopped after %d records", count), err)
		}
		fmt.Printf("Seeded %d records.\n", count)
	},
}
