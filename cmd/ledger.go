package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/willshacklett/godscore/internal/contract"
	"github.com/willshacklett/godscore/internal/ledger"
	"github.com/willshacklett/godscore/internal/parquet"
	"github.com/willshacklett/godscore/schema"
)

// ledgerSetup loads minimal configuration needed for ledger operations.
// This is used by commands that need ledger access without full shared
// setup (no git repo resolution, no policy parsing).
func ledgerSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := schema.ParseLedgerBackend(viper.GetString("ledger-backend"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("ledger-db-connect")
	if err := contract.ValidateLedgerConnectionString(backend, connStr); err != nil {
		return err
	}

	if err := ledger.InitLedger(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize ledger: %w", err)
	}

	cfg.LedgerBackend = backend
	cfg.LedgerConnect = connStr
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.UseColors = true

	return nil
}

// ledgerSetupWrapper wraps ledgerSetup to provide PreRunE for ledger commands.
func ledgerSetupWrapper(_ *cobra.Command, _ []string) error {
	return ledgerSetup()
}

// ledgerMigrateSetup loads minimal configuration needed for migrate
// operations. It does NOT initialize the ledger or create tables,
// allowing migrations to run on a fresh database.
func ledgerMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := schema.ParseLedgerBackend(viper.GetString("ledger-backend"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("ledger-db-connect")
	if err := contract.ValidateLedgerConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.LedgerBackend = backend
	cfg.LedgerConnect = connStr

	return nil
}

// ledgerMigrateSetupWrapper wraps ledgerMigrateSetup to provide PreRunE for the migrate command.
func ledgerMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return ledgerMigrateSetup()
}

// ledgerCmd focused on history ledger management.
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Manage the append-only score history ledger",
	Long: `Manage the append-only history ledger that records every evaluation.

Each gate run appends one record: lineage, identity, score, GV, the
feature snapshot and the verdict. Records are never mutated or deleted
by the engine; the ledger is the baseline for regression detection.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  history - Show recent records for a lineage
  status  - Show ledger statistics and connection health
  export  - Export records to Parquet for analytics
  migrate - Run database schema migrations

Examples:
  # Inspect the last runs on this branch
  godscore ledger history --lineage main

  # Export for analysis in pandas/DuckDB
  godscore ledger export --output-file godscore-history.parquet`,
}

// ledgerHistoryCmd shows recent ledger records.
var ledgerHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Display recent evaluation records for a lineage",
	Long: `Show recent ledger records for a lineage, oldest first.

Displays each record's score, GV, verdict and mode alongside the
identity it was evaluated under. This is the same window the regression
detector compares against.

Examples:
  # Last 10 runs on the current lineage
  godscore ledger history

  # Last 25 runs on main as JSON
  godscore ledger history --lineage main --limit 25 --output json`,
	PreRunE: ledgerSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		led := ledger.GetLedger()
		if led == nil {
			contract.LogFatal("Failed to access ledger", errors.New("ledger is not initialized"))
		}

		lineage := viper.GetString("history-lineage")
		if lineage == "" {
			lineage = "default"
		}
		limit := viper.GetInt("limit")
		if limit <= 0 || limit > schema.MaxWindowSize {
			limit = schema.DefaultWindowSize
		}

		records, err := led.RecentWindow(rootCtx, lineage, limit)
		if err != nil {
			contract.LogFatal("Failed to read history", err)
		}
		if err := out.WriteHistory(records, cfg); err != nil {
			contract.LogFatal("Failed to write history", err)
		}
	},
}

// ledgerStatusCmd shows ledger status.
var ledgerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display ledger statistics and connection details",
	Long: `Show detailed information about the history ledger.

Displays:
- Backend type and connection status
- Total number of records and lineages stored
- Oldest and latest append timestamps

Use this to verify history tracking is enabled and working before
turning on enforce mode, which fails safe when the ledger is down.

Examples:
  # Check ledger status
  godscore ledger status`,
	PreRunE: ledgerSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		led := ledger.GetLedger()
		if led == nil {
			contract.LogFatal("Failed to access ledger", errors.New("ledger is not initialized"))
		}

		status, err := led.Status(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get ledger status", err)
		}
		if err := out.WriteStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write ledger status", err)
		}
	},
}

// ledgerExportCmd exports ledger records to a Parquet file.
var ledgerExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history records to Parquet for BI tools and analytics",
	Long: `Export all ledger records to Parquet format for use with analytics tools.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all records
  godscore ledger export --output-file godscore-history.parquet

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('godscore-history.parquet') LIMIT 10"`,
	PreRunE: ledgerSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		outputFile := viper.GetString("output-file")
		if outputFile == "" {
			contract.LogFatal("Failed to export history", errors.New("--output-file is required"))
		}

		led := ledger.GetLedger()
		if led == nil {
			contract.LogFatal("Failed to access ledger", errors.New("ledger is not initialized"))
		}

		records, err := led.AllRecords(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to read history records", err)
		}
		rows := parquet.ConvertHistoryRecords(records)
		if err := parquet.WriteHistoryParquet(rows, outputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
		fmt.Printf("Exported %d records to %s\n", len(rows), outputFile)
	},
}

// ledgerMigrateCmd runs database migrations for the history ledger.
var ledgerMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history ledger.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  godscore ledger migrate

  # Rollback to initial state
  godscore ledger migrate --target-version 0`,
	PreRunE: ledgerMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := ledger.MigrateLedger(cfg.LedgerBackend, cfg.LedgerConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
