package cmd

import (
	"fmt"
	"os"

	"github.com/bikecast/bikecast/internal/contract"
	"github.com/bikecast/bikecast/internal/history"
	"github.com/bikecast/bikecast/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads config and opens the history store.
// History commands fail early when no backend is configured.
func historySetup(_ *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if cfg.HistoryBackend == schema.NoneBackend {
		return fmt.Errorf("no history backend configured; set --history-backend or BIKECAST_HISTORY_BACKEND")
	}
	if err := history.InitHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	return nil
}

// historyMigrateSetup loads config without opening the store,
// allowing migrations to run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if cfg.HistoryBackend == schema.NoneBackend {
		return fmt.Errorf("no history backend configured; set --history-backend or BIKECAST_HISTORY_BACKEND")
	}
	// For SQLite backend with empty connection string, use default path
	if cfg.HistoryBackend == schema.SQLiteBackend && cfg.HistoryDBConnect == "" {
		cfg.HistoryDBConnect = contract.GetHistoryDBFilePath()
	}
	return nil
}

// historyCmd focused on prediction history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded prediction history",
	Long: `Manage the history of served predictions.

When a backend is configured, every prediction served by the API, the CLI
or the MCP server is recorded with its inputs, result and source.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show history statistics
  export  - Export predictions to Parquet
  clear   - Remove all history data
  migrate - Run database schema migrations

Examples:
  # Check history status
  bikecast history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  bikecast history export --history-backend sqlite --output-file predictions.parquet`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history statistics and connection details",
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := history.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded predictions",
	Long: `Delete all recorded predictions from the configured backend.

For SQLite the database file is removed. For MySQL and PostgreSQL the
predictions and migration tables are dropped.

WARNING: This action cannot be undone. Consider exporting data first.`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ClearHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("Prediction history cleared successfully.")
	},
}

// historyExportCmd exports predictions to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded predictions to Parquet",
	Long: `Export every recorded prediction to a Parquet file for analytics tools.

Requires: --output-file parameter

Examples:
  bikecast history export --history-backend sqlite --output-file predictions.parquet
  duckdb -c "SELECT source, avg(prediction) FROM read_parquet('predictions.parquet') GROUP BY 1"`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if _, err := history.ExportPredictions(os.Stdout, history.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --to for specific versions.

Examples:
  # Migrate to latest version (default)
  bikecast history migrate --history-backend sqlite

  # Rollback to initial state
  bikecast history migrate --history-backend sqlite --to 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, viper.GetInt("to")); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
