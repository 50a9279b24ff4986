// Package cmd defines the command-line interface for benchboard.
package cmd

import (
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeSeedCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", 0, "Decimal precision for numeric columns (0 = leaderboard default)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("locale", contract.DefaultLocale, "Locale used to order names and labels")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or memory")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Show badge emojis next to the top three ranks (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored ranks in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// View flags are bound to Viper when the command runs, since board and browse share them
	for _, c := range []*cobra.Command{boardCmd, browseCmd} {
		c.Flags().String("sort", "", "Sort field (default: rank)")
		c.Flags().String("direction", "", "Sort direction: asc or desc (default depends on the field)")
		c.Flags().StringP("search", "q", "", "Case-insensitive search over the name fields")
		c.Flags().StringP("filter", "f", "", "Filter type: all or top10 or a category value")
		c.Flags().Bool("remote-order", false, "Ask the store to order rows by the sort field")
	}

	// Bind all flags of submitCmd to Viper
	submitCmd.Flags().StringArray("field", nil, "Form value as key=value (repeatable)")
	submitCmd.Flags().BoolP("interactive", "i", false, "Fill in the submission form interactively")

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Address to listen on")
	serveCmd.Flags().String("cors-origins", "", "Comma-separated list of allowed CORS origins (* for any)")
	serveCmd.Flags().Float64("submit-rate", contract.DefaultSubmitRate, "Score submissions per second per client")
	serveCmd.Flags().Int("submit-burst", contract.DefaultSubmitBurst, "Score submission burst per client")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Server commands share the logger flag
	for _, c := range []*cobra.Command{serveCmd, mcpCmd} {
		c.Flags().Bool("verbose", false, "Log at debug level")
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
