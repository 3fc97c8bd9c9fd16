// Package cmd defines the command-line interface for godscore.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/willshacklett/godscore/internal/contract"
	"github.com/willshacklett/godscore/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(gateCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(ledgerCmd)

	// Add the ledger subcommands to the parent ledger command
	ledgerCmd.AddCommand(ledgerHistoryCmd)
	ledgerCmd.AddCommand(ledgerStatusCmd)
	ledgerCmd.AddCommand(ledgerExportCmd)
	ledgerCmd.AddCommand(ledgerMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json")
	rootCmd.PersistentFlags().String("json-file", "", "Optional path to write the JSON report artifact to")
	rootCmd.PersistentFlags().String("ledger-backend", string(schema.SQLiteBackend), "History ledger backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("ledger-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of gateCmd to Viper
	gateCmd.Flags().String("score", "", "Score override: 'auto' or a number on the 0..1 or 0..100 scale")
	gateCmd.Flags().String("threshold", "", "Minimum passing score on either scale (wins over min-score)")
	gateCmd.Flags().String("min-score", "", "Alias for threshold, kept for workflow compatibility")
	gateCmd.Flags().String("mode", string(schema.InformMode), "Policy mode: inform or enforce")
	gateCmd.Flags().String("enforce", "", "Boolean override that promotes inform to enforce")
	gateCmd.Flags().String("lineage", "", "History axis for regression comparison (defaults to current branch)")
	gateCmd.Flags().String("identity", "", "Run identity recorded in the ledger (defaults to head commit)")
	gateCmd.Flags().String("base-ref", "", "Base Git reference for the change diff")
	gateCmd.Flags().String("target-ref", "HEAD", "Target Git reference for the change diff")
	gateCmd.Flags().Float64("sensitivity", schema.DefaultSensitivity, "Relative drop fraction for regression flagging")
	gateCmd.Flags().Int("window", schema.DefaultWindowSize, "Baseline window length for regression comparison")
	gateCmd.Flags().Bool("github-outputs", false, "Force writing GitHub Actions outputs even outside a workflow")
	if err := viper.BindPFlags(gateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding gate flags", err)
	}

	// Bind ledgerHistoryCmd flags individually: gate also registers a
	// --lineage flag, so the history copy needs its own viper key or the
	// later BindPFlags call would shadow the gate binding.
	ledgerHistoryCmd.Flags().String("lineage", "", "Lineage to read (defaults to 'default')")
	ledgerHistoryCmd.Flags().Int("limit", schema.DefaultWindowSize, "Number of records to display")
	if err := viper.BindPFlag("history-lineage", ledgerHistoryCmd.Flags().Lookup("lineage")); err != nil {
		contract.LogFatal("Error binding history flags", err)
	}
	if err := viper.BindPFlag("limit", ledgerHistoryCmd.Flags().Lookup("limit")); err != nil {
		contract.LogFatal("Error binding history flags", err)
	}

	// Bind all flags of ledgerExportCmd to Viper
	ledgerExportCmd.Flags().String("output-file", "", "Path to write the Parquet export to")
	if err := viper.BindPFlags(ledgerExportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}

	// Bind all flags of ledgerMigrateCmd to Viper
	ledgerMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(ledgerMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding ledger migrate flags", err)
	}
}
