// Package cmd defines the command-line interface for fundboard.
package cmd

import (
	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(histogramCmd)
	rootCmd.AddCommand(contributorsCmd)
	rootCmd.AddCommand(countriesCmd)
	rootCmd.AddCommand(sdgCmd)
	rootCmd.AddCommand(ndcCmd)
	rootCmd.AddCommand(oilCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the datasets subcommands to the parent datasets command
	datasetsCmd.AddCommand(datasetsListCmd)
	datasetsCmd.AddCommand(datasetsShowCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("api-base", contract.DefaultAPIBase, "Base URL of the dashboard backend serving /api/<dataset>")
	rootCmd.PersistentFlags().String("source", string(schema.HTTPSource), "Dataset source: http or sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("source-db-connect", "", "Database connection string for sqlite/mysql/postgresql sources")
	rootCmd.PersistentFlags().String("oil-url", contract.DefaultOilURL, "URL of the oil production CSV export")
	rootCmd.PersistentFlags().String("timeout", "", "Per-request timeout such as 10s (empty = wait indefinitely)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet or html or svg or png")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Per-command flags are bound to Viper in sharedSetup, where the invoked command is known
	histogramCmd.Flags().String("dataset", string(schema.DepositedColumn), "Dataset holding the column to bin")
	histogramCmd.Flags().String("column", schema.ColDeposited, "Numeric column to bin")
	histogramCmd.Flags().Int("bins", schema.DefaultBinCount, "Number of equal-width bins")

	for _, c := range []*cobra.Command{contributorsCmd, countriesCmd} {
		c.Flags().Bool("clean", false, "Use the datasets with normalized names")
		c.Flags().Bool("math", false, "Print the per-entry totals table instead of the ranking")
	}

	sdgCmd.Flags().Bool("all", false, "Show every country instead of the contributor order")

	ndcCmd.Flags().Bool("oil", false, "Also show oil production aligned to the NDC country order")
	dashboardCmd.Flags().Bool("oil", false, "Add the oil production views")
	dashboardCmd.Flags().Int("bins", schema.DefaultBinCount, "Number of bins for the deposit histogram")
}
