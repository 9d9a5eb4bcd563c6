package cmd

import (
	"github.com/cfudash/fundboard/core"
	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/schema"
	"github.com/spf13/cobra"
)

// datasetsCmd is the parent for commands that inspect raw backend tables.
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Inspect the datasets served by the dashboard backend",
	Long:  `List the known dataset names or print one dataset as a table.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// datasetsListCmd prints the dataset registry without contacting the backend.
var datasetsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List every known dataset and its API path",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteListDatasets(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list datasets", err)
		}
	},
}

// datasetsShowCmd fetches one dataset and prints its records.
var datasetsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Fetch one dataset and print it",
	Long: `Fetch one dataset from the configured source and print its records.

Examples:
  # Print the NDC status table
  fundboard datasets show ndc_status_table

  # Export raw data to Parquet
  fundboard datasets show raw_data --output parquet --output-file raw.parquet`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := contract.ValidateDatasetName(schema.DatasetName(args[0])); err != nil {
			return err
		}
		return sharedSetup(rootCtx, cmd, args)
	},
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteShowDataset(rootCtx, cfg, fetcher, schema.DatasetName(args[0])); err != nil {
			contract.LogFatal("Cannot show dataset", err)
		}
	},
}
