package cmd

import (
	"github.com/cfudash/fundboard/core"
	"github.com/cfudash/fundboard/internal/contract"
	"github.com/spf13/cobra"
)

// histogramCmd bins a numeric dataset column.
var histogramCmd = &cobra.Command{
	Use:   "histogram",
	Short: "Bin a numeric column into an equal-width histogram",
	Long: `Fetch a dataset and bin one numeric column into equal-width buckets.

Non-numeric values are dropped before binning. When every value is equal
the bin width is 1 and all values land in the first bin. A column with
nothing numeric prints "No data available." and is not an error.

Examples:
  # Distribution of deposits in 20 bins
  fundboard histogram

  # Coarser view rendered as a standalone chart
  fundboard histogram --bins 5 --output svg --output-file deposits.svg`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistogram(rootCtx, cfg, fetcher); err != nil {
			contract.LogFatal("Cannot run histogram", err)
		}
	},
}

// contributorsCmd ranks contributors by deposits.
var contributorsCmd = &cobra.Command{
	Use:     "contributors",
	Short:   "Rank contributors by deposited amount",
	Long:    `Show contributors ordered by deposited amount, or the per-contributor totals table with --math.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteContributors(rootCtx, cfg, fetcher); err != nil {
			contract.LogFatal("Cannot run contributors", err)
		}
	},
}

// countriesCmd ranks recipient countries by deposits.
var countriesCmd = &cobra.Command{
	Use:     "countries",
	Short:   "Rank recipient countries by deposited amount",
	Long:    `Show recipient countries ordered by deposited amount, or the per-country totals table with --math.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCountries(rootCtx, cfg, fetcher); err != nil {
			contract.LogFatal("Cannot run countries", err)
		}
	},
}

// sdgCmd shows SDG counts aligned to the contributor order.
var sdgCmd = &cobra.Command{
	Use:   "sdg",
	Short: "Show SDG counts per country in contributor order",
	Long: `Look up the SDG count of every contributor in the contributor ranking order.

Contributors without an SDG entry are shown with 0. Use --all to list every
country from the SDG dataset instead.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSDG(rootCtx, cfg, fetcher); err != nil {
			contract.LogFatal("Cannot run sdg", err)
		}
	},
}

// ndcCmd shows NDC status points with color buckets.
var ndcCmd = &cobra.Command{
	Use:   "ndc",
	Short: "Show NDC status points per country with color buckets",
	Long: `Show the NDC status points of every country sorted ascending.

Points map to colors: 1 green, 0.75 yellow, 0.5 orange, 0.25 red, anything else gray.
With --oil the oil production of the same countries is shown in the same order;
a failure to fetch the oil data only affects that view.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteNDC(rootCtx, cfg, fetcher, oilSource); err != nil {
			contract.LogFatal("Cannot run ndc", err)
		}
	},
}

// oilCmd shows the top oil producers.
var oilCmd = &cobra.Command{
	Use:     "oil",
	Short:   "Show the top oil producing countries by latest year",
	Long:    `Fetch the oil production CSV, keep the latest year of each country and rank the top producers.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOil(rootCtx, cfg, oilSource); err != nil {
			contract.LogFatal("Cannot run oil", err)
		}
	},
}

// dashboardCmd loads every dataset together and prints all views.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Load every dashboard dataset and print all views",
	Long: `Fetch every dashboard dataset concurrently and print each view.

The load is all-or-nothing: the first failing dataset fails the whole
dashboard. Views with no data are shown as empty.

Examples:
  # Every view in the terminal
  fundboard dashboard

  # Interactive HTML page with the oil views
  fundboard dashboard --oil --output html --output-file dashboard.html`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDashboard(rootCtx, cfg, fetcher, oilSource); err != nil {
			contract.LogFatal("Cannot run dashboard", err)
		}
	},
}
