package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cfudash/fundboard/core/agg"
	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/schema"
)

// Dashboard view names in display order.
const (
	ViewRawData                = "All deposit records"
	ViewDepositedTable         = "Deposited amounts"
	ViewDepositedHistogram     = "Deposited amount distribution"
	ViewByContributor          = "Deposits by contributor"
	ViewByContributorMath      = "Contributor totals"
	ViewByContributorClean     = "Deposits by contributor (clean names)"
	ViewByContributorCleanMath = "Contributor totals (clean names)"
	ViewSDGByContributor       = "SDG count by contributor"
	ViewSDGAllCountries        = "SDG count by country"
	ViewNDCPoints              = "NDC status points"
	ViewOilTop                 = "Top oil producers"
	ViewOilByNDC               = "Oil production in NDC order"
)

func isNoValues(err error) bool {
	return errors.Is(err, agg.ErrNoValues)
}

// logLoadHeader prints a one-line header describing the load to stderr.
func logLoadHeader(ctx context.Context, cfg *contract.Config, names []schema.DatasetName) {
	if shouldSuppressHeader(ctx) {
		return
	}
	source := cfg.APIBase
	if cfg.Source != schema.HTTPSource {
		source = string(cfg.Source) + " database"
	}
	_, _ = fmt.Fprintf(os.Stderr, "🔎 Source: %s (%d datasets)\n", source, len(names))
}

// loadWithHeader logs the header and runs a fresh one-shot load.
func loadWithHeader(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, names ...schema.DatasetName) (*Snapshot, error) {
	logLoadHeader(ctx, cfg, names)
	return LoadAll(ctx, fetcher, names)
}

// GetHistogramResult loads the configured dataset and bins its configured column.
// A column with nothing numeric yields a nil histogram and no error.
func GetHistogramResult(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher) (*schema.Histogram, time.Duration, error) {
	start := time.Now()
	snap, err := loadWithHeader(ctx, cfg, fetcher, cfg.Dataset)
	if err != nil {
		return nil, 0, err
	}
	hist, err := HistogramView(snap, cfg.Dataset, cfg.Column, cfg.Bins)
	if isNoValues(err) {
		return nil, time.Since(start), nil
	}
	if err != nil {
		return nil, 0, err
	}
	return hist, time.Since(start), nil
}

// GetRankingResult loads and returns deposits per contributor or country.
func GetRankingResult(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, kind RankingKind) (schema.BarSeries, time.Duration, error) {
	start := time.Now()
	name, _ := rankingSource(kind, cfg.Clean, false)
	snap, err := loadWithHeader(ctx, cfg, fetcher, name)
	if err != nil {
		return schema.BarSeries{}, 0, err
	}
	bars, err := RankingView(snap, kind, cfg.Clean)
	if err != nil {
		return schema.BarSeries{}, 0, err
	}
	return bars, time.Since(start), nil
}

// GetMathTableResult loads and returns the totals table with entry breakdowns.
func GetMathTableResult(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, kind RankingKind) (schema.Dataset, time.Duration, error) {
	start := time.Now()
	name, _ := rankingSource(kind, cfg.Clean, true)
	snap, err := loadWithHeader(ctx, cfg, fetcher, name)
	if err != nil {
		return nil, 0, err
	}
	table, err := MathTable(snap, kind, cfg.Clean)
	if err != nil {
		return nil, 0, err
	}
	return table, time.Since(start), nil
}

// GetSDGResult returns SDG counts in contributor order, or for all countries with cfg.All.
func GetSDGResult(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher) (schema.BarSeries, time.Duration, error) {
	start := time.Now()
	names := []schema.DatasetName{schema.ByContributorClean, schema.SDGCountByCountry}
	if cfg.All {
		names = names[1:]
	}
	snap, err := loadWithHeader(ctx, cfg, fetcher, names...)
	if err != nil {
		return schema.BarSeries{}, 0, err
	}
	var bars schema.BarSeries
	if cfg.All {
		bars, err = SDGAllCountriesView(snap)
	} else {
		bars, err = SDGByContributorView(snap)
	}
	if err != nil {
		return schema.BarSeries{}, 0, err
	}
	return bars, time.Since(start), nil
}

// GetAlignedResult loads both datasets of req together and aligns their values.
func GetAlignedResult(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, req AlignRequest) (schema.AlignedSeries, time.Duration, error) {
	start := time.Now()
	snap, err := loadWithHeader(ctx, cfg, fetcher, req.KeysDataset, req.ValuesDataset)
	if err != nil {
		return schema.AlignedSeries{}, 0, err
	}
	aligned, err := AlignedView(snap, req)
	if err != nil {
		return schema.AlignedSeries{}, 0, err
	}
	return aligned, time.Since(start), nil
}

// GetNDCResult returns the colored NDC points view and, with cfg.WithOil, oil production in the same order.
func GetNDCResult(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, oil contract.OilSource) ([]schema.View, time.Duration, error) {
	start := time.Now()
	snap, err := loadWithHeader(ctx, cfg, fetcher, schema.NDCStatusPointsChart)
	if err != nil {
		return nil, 0, err
	}
	bars, err := NDCPointsView(snap)
	views := []schema.View{barsView(ViewNDCPoints, bars, err)}
	if cfg.WithOil {
		views = append(views, oilByNDCView(ctx, snap, oil))
	}
	return views, time.Since(start), nil
}

// GetOilResult fetches the oil table and returns the top producers.
func GetOilResult(ctx context.Context, cfg *contract.Config, oil contract.OilSource) (schema.BarSeries, time.Duration, error) {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		_, _ = fmt.Fprintf(os.Stderr, "🛢️  Source: %s\n", cfg.OilURL)
	}
	ds, err := fetchOil(ctx, oil)
	if err != nil {
		return schema.BarSeries{}, 0, err
	}
	return OilTopView(ds, cfg.Limit), time.Since(start), nil
}

// GetDatasetResult loads a single dataset as-is.
func GetDatasetResult(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, name schema.DatasetName) (schema.Dataset, time.Duration, error) {
	start := time.Now()
	snap, err := loadWithHeader(ctx, cfg, fetcher, name)
	if err != nil {
		return nil, 0, err
	}
	ds, _ := snap.Dataset(name)
	return ds, time.Since(start), nil
}

// GetDashboardResult loads every dashboard dataset at once and builds all views.
// Any failed dataset fails the whole load. The oil views are only added with
// cfg.WithOil and report their own error state.
func GetDashboardResult(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, oil contract.OilSource) ([]schema.View, time.Duration, error) {
	start := time.Now()
	snap, err := loadWithHeader(ctx, cfg, fetcher, schema.DashboardDatasets...)
	if err != nil {
		return nil, 0, err
	}
	views := BuildDashboardViews(snap, cfg.Bins)
	if cfg.WithOil {
		views = append(views, oilViews(ctx, cfg, snap, oil)...)
	}
	return views, time.Since(start), nil
}

// BuildDashboardViews derives every dashboard view from a loaded snapshot.
func BuildDashboardViews(snap *Snapshot, bins int) []schema.View {
	raw, err := snap.dataset(schema.RawData)
	views := []schema.View{tableView(ViewRawData, raw.Clone(), err)}

	deposited, err := snap.dataset(schema.DepositedColumn)
	views = append(views, tableView(ViewDepositedTable, deposited.Clone(), err))

	hist, err := HistogramView(snap, schema.DepositedColumn, schema.ColDeposited, bins)
	views = append(views, histogramView(ViewDepositedHistogram, hist, err))

	bars, err := RankingView(snap, ContributorRanking, false)
	views = append(views, barsView(ViewByContributor, bars, err))

	table, err := MathTable(snap, ContributorRanking, false)
	views = append(views, tableView(ViewByContributorMath, table, err))

	bars, err = RankingView(snap, ContributorRanking, true)
	views = append(views, barsView(ViewByContributorClean, bars, err))

	table, err = MathTable(snap, ContributorRanking, true)
	views = append(views, tableView(ViewByContributorCleanMath, table, err))

	bars, err = SDGByContributorView(snap)
	views = append(views, barsView(ViewSDGByContributor, bars, err))

	bars, err = SDGAllCountriesView(snap)
	views = append(views, barsView(ViewSDGAllCountries, bars, err))

	bars, err = NDCPointsView(snap)
	views = append(views, barsView(ViewNDCPoints, bars, err))
	return views
}

// errNoOilSource is reported by the oil views when no source was wired.
var errNoOilSource = errors.New("no oil source configured")

func fetchOil(ctx context.Context, oil contract.OilSource) (schema.Dataset, error) {
	if oil == nil {
		return nil, errNoOilSource
	}
	return oil.FetchOil(ctx)
}

func oilViews(ctx context.Context, cfg *contract.Config, snap *Snapshot, oil contract.OilSource) []schema.View {
	ds, err := fetchOil(ctx, oil)
	if err != nil {
		return []schema.View{
			barsView(ViewOilTop, schema.BarSeries{}, err),
			barsView(ViewOilByNDC, schema.BarSeries{}, err),
		}
	}
	aligned, alignErr := OilByNDCView(snap, ds)
	return []schema.View{
		barsView(ViewOilTop, OilTopView(ds, cfg.Limit), nil),
		barsView(ViewOilByNDC, aligned, alignErr),
	}
}

func oilByNDCView(ctx context.Context, snap *Snapshot, oil contract.OilSource) schema.View {
	ds, err := fetchOil(ctx, oil)
	if err != nil {
		return barsView(ViewOilByNDC, schema.BarSeries{}, err)
	}
	bars, err := OilByNDCView(snap, ds)
	return barsView(ViewOilByNDC, bars, err)
}
