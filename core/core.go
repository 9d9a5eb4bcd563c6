// Package core has core logic for loading, binning, aligning and ranking dashboard data.
package core

import (
	"context"

	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/internal/outwriter"
	"github.com/cfudash/fundboard/schema"
)

// ExecutorFunc defines the function signature for commands that only need datasets.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher) error

// ExecuteListDatasets prints the dataset registry.
func ExecuteListDatasets(_ context.Context, cfg *contract.Config) error {
	return outwriter.WriteDatasetList(schema.ListDatasets(), cfg)
}

// ExecuteShowDataset loads one dataset and prints it as a table.
func ExecuteShowDataset(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, name schema.DatasetName) error {
	ds, duration, err := GetDatasetResult(ctx, cfg, fetcher, name)
	if err != nil {
		return err
	}
	return outwriter.WriteTable(string(name), ds, cfg, duration)
}

// ExecuteHistogram runs the histogram view and prints results.
// It serves as the main entry point for the 'histogram' command.
func ExecuteHistogram(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher) error {
	hist, duration, err := GetHistogramResult(ctx, cfg, fetcher)
	if err != nil {
		return err
	}
	return outwriter.WriteHistogram(hist, cfg, duration)
}

// ExecuteContributors prints deposits by contributor, or the totals table with cfg.Math.
func ExecuteContributors(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher) error {
	return executeRanking(ctx, cfg, fetcher, ContributorRanking)
}

// ExecuteCountries prints deposits by country, or the totals table with cfg.Math.
func ExecuteCountries(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher) error {
	return executeRanking(ctx, cfg, fetcher, CountryRanking)
}

func executeRanking(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, kind RankingKind) error {
	if cfg.Math {
		table, duration, err := GetMathTableResult(ctx, cfg, fetcher, kind)
		if err != nil {
			return err
		}
		name, _ := rankingSource(kind, cfg.Clean, true)
		return outwriter.WriteTable(string(name), table, cfg, duration)
	}
	bars, duration, err := GetRankingResult(ctx, cfg, fetcher, kind)
	if err != nil {
		return err
	}
	return outwriter.WriteBars(bars, cfg, duration)
}

// ExecuteSDG prints SDG counts aligned to the contributor order.
func ExecuteSDG(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher) error {
	bars, duration, err := GetSDGResult(ctx, cfg, fetcher)
	if err != nil {
		return err
	}
	return outwriter.WriteBars(bars, cfg, duration)
}

// ExecuteNDC prints NDC status points with their color buckets.
func ExecuteNDC(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, oil contract.OilSource) error {
	views, duration, err := GetNDCResult(ctx, cfg, fetcher, oil)
	if err != nil {
		return err
	}
	return outwriter.WriteViews(views, cfg, duration)
}

// ExecuteOil prints the top oil producers by latest year.
func ExecuteOil(ctx context.Context, cfg *contract.Config, oil contract.OilSource) error {
	bars, duration, err := GetOilResult(ctx, cfg, oil)
	if err != nil {
		return err
	}
	return outwriter.WriteBars(bars, cfg, duration)
}

// ExecuteDashboard loads every dashboard dataset together and prints all views.
func ExecuteDashboard(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, oil contract.OilSource) error {
	views, duration, err := GetDashboardResult(ctx, cfg, fetcher, oil)
	if err != nil {
		return err
	}
	return outwriter.WriteViews(views, cfg, duration)
}
