package core

import (
	"github.com/cfudash/fundboard/core/agg"
	"github.com/cfudash/fundboard/core/algo"
	"github.com/cfudash/fundboard/schema"
)

// RankingKind selects the label column of a ranking chart.
type RankingKind string

// Ranking kinds backed by the by_* datasets.
const (
	ContributorRanking RankingKind = "contributor"
	CountryRanking     RankingKind = "country"
)

// rankingSource resolves the dataset and label column for a ranking.
func rankingSource(kind RankingKind, clean, math bool) (schema.DatasetName, string) {
	switch kind {
	case CountryRanking:
		switch {
		case clean && math:
			return schema.ByCountryCleanMath, schema.ColCountryClean
		case clean:
			return schema.ByCountryClean, schema.ColCountryClean
		case math:
			return schema.ByCountryMath, schema.ColCountry
		}
		return schema.ByCountry, schema.ColCountry
	default:
		switch {
		case clean && math:
			return schema.ByContributorCleanMath, schema.ColContributorClean
		case clean:
			return schema.ByContributorClean, schema.ColContributorClean
		case math:
			return schema.ByContributorMath, schema.ColContributor
		}
		return schema.ByContributor, schema.ColContributor
	}
}

// HistogramView bins a numeric column of a loaded dataset.
func HistogramView(snap *Snapshot, name schema.DatasetName, column string, bins int) (*schema.Histogram, error) {
	ds, err := snap.dataset(name)
	if err != nil {
		return nil, err
	}
	return agg.Histogram(ds, column, bins)
}

// RankingView returns deposits per label in backend order.
func RankingView(snap *Snapshot, kind RankingKind, clean bool) (schema.BarSeries, error) {
	name, labelCol := rankingSource(kind, clean, false)
	ds, err := snap.dataset(name)
	if err != nil {
		return schema.BarSeries{}, err
	}
	return barsFrom(ds, labelCol, schema.ColDeposited, "Deposits by "+string(kind), "USD million"), nil
}

// MathTable returns the per-label totals with their entry breakdown.
func MathTable(snap *Snapshot, kind RankingKind, clean bool) (schema.Dataset, error) {
	name, _ := rankingSource(kind, clean, true)
	ds, err := snap.dataset(name)
	if err != nil {
		return nil, err
	}
	return ds.Clone(), nil
}

// AlignRequest names a reference key order and the dataset whose values follow it.
type AlignRequest struct {
	KeysDataset   schema.DatasetName
	KeyColumn     string
	ValuesDataset schema.DatasetName
	MatchColumn   string
	ValueColumn   string
}

// SDGAlignment lines SDG counts up with the cleaned contributor order.
var SDGAlignment = AlignRequest{
	KeysDataset:   schema.ByContributorClean,
	KeyColumn:     schema.ColContributorClean,
	ValuesDataset: schema.SDGCountByCountry,
	MatchColumn:   schema.ColCountry,
	ValueColumn:   schema.ColSDGCount,
}

// AlignedView looks up req.ValueColumn for every key of the reference dataset.
// Keys with no match get 0.
func AlignedView(snap *Snapshot, req AlignRequest) (schema.AlignedSeries, error) {
	order, err := snap.dataset(req.KeysDataset)
	if err != nil {
		return schema.AlignedSeries{}, err
	}
	values, err := snap.dataset(req.ValuesDataset)
	if err != nil {
		return schema.AlignedSeries{}, err
	}
	keys := agg.Keys(order, req.KeyColumn)
	return agg.AlignByKey(keys, values, req.MatchColumn, req.ValueColumn), nil
}

// SDGByContributorView aligns SDG counts to the cleaned contributor order.
// Without any SDG rows there is nothing to align and the series is empty.
func SDGByContributorView(snap *Snapshot) (schema.BarSeries, error) {
	aligned, err := AlignedView(snap, SDGAlignment)
	if err != nil {
		return schema.BarSeries{}, err
	}
	if values, _ := snap.Dataset(SDGAlignment.ValuesDataset); len(values) == 0 {
		return schema.BarSeries{}, nil
	}
	return schema.BarSeries{
		Title:      "SDG count by contributor",
		SeriesName: "SDG count",
		Labels:     aligned.Keys,
		Values:     aligned.Values,
	}, nil
}

// SDGAllCountriesView returns SDG counts for every country in backend order.
func SDGAllCountriesView(snap *Snapshot) (schema.BarSeries, error) {
	ds, err := snap.dataset(schema.SDGCountByCountry)
	if err != nil {
		return schema.BarSeries{}, err
	}
	return barsFrom(ds, schema.ColCountry, schema.ColSDGCount, "SDG count by country", "SDG count"), nil
}

// NDCPointsView sorts countries by NDC points ascending and colors each bar.
func NDCPointsView(snap *Snapshot) (schema.BarSeries, error) {
	ds, err := snap.dataset(schema.NDCStatusPointsChart)
	if err != nil {
		return schema.BarSeries{}, err
	}
	return ndcBars(ds), nil
}

func ndcBars(ds schema.Dataset) schema.BarSeries {
	sorted := algo.SortByColumn(ds, schema.ColPoints, true)
	bars := barsFrom(sorted, schema.ColCountry, schema.ColPoints, "NDC status points", "Points")
	bars.Colors = make([]string, len(sorted))
	for i, bucket := range algo.Buckets(sorted, schema.ColPoints) {
		bars.Colors[i] = bucket.Hex
	}
	yMin, yMax := 0.0, 1.0
	bars.YMin, bars.YMax = &yMin, &yMax
	return bars
}

// OilTopView reduces the oil table to the latest year per country and keeps the top producers.
func OilTopView(oil schema.Dataset, limit int) schema.BarSeries {
	latest := agg.LatestByEntity(oil, schema.ColEntity, schema.ColYear)
	top := algo.TopN(latest, schema.ColOilProduction, limit)
	return barsFrom(top, schema.ColEntity, schema.ColOilProduction, "Top oil producers (latest year)", "TWh")
}

// OilByNDCView aligns the latest oil production to the NDC points country order.
func OilByNDCView(snap *Snapshot, oil schema.Dataset) (schema.BarSeries, error) {
	ds, err := snap.dataset(schema.NDCStatusPointsChart)
	if err != nil {
		return schema.BarSeries{}, err
	}
	sorted := algo.SortByColumn(ds, schema.ColPoints, true)
	keys := agg.Keys(sorted, schema.ColCountry)
	latest := agg.LatestByEntity(oil, schema.ColEntity, schema.ColYear)
	aligned := agg.AlignByKey(keys, latest, schema.ColEntity, schema.ColOilProduction)
	return schema.BarSeries{
		Title:      "Oil production in NDC order",
		SeriesName: "TWh",
		Labels:     aligned.Keys,
		Values:     aligned.Values,
	}, nil
}

// barsFrom reads a label and a value column; non-numeric values become 0.
func barsFrom(ds schema.Dataset, labelCol, valueCol, title, series string) schema.BarSeries {
	bars := schema.BarSeries{
		Title:      title,
		SeriesName: series,
		Labels:     make([]string, len(ds)),
		Values:     make([]float64, len(ds)),
	}
	for i, rec := range ds {
		bars.Labels[i] = agg.KeyString(rec[labelCol])
		bars.Values[i], _ = agg.ToNumber(rec[valueCol])
	}
	return bars
}

// barsView wraps a bar series with its presentation state.
func barsView(name string, bars schema.BarSeries, err error) schema.View {
	switch {
	case err != nil:
		return schema.View{Name: name, Status: schema.ViewError, Error: err.Error()}
	case bars.Len() == 0:
		return schema.View{Name: name, Status: schema.ViewEmpty}
	}
	return schema.View{Name: name, Status: schema.ViewReady, Bars: &bars}
}

// histogramView wraps a histogram with its presentation state.
func histogramView(name string, hist *schema.Histogram, err error) schema.View {
	switch {
	case err != nil && isNoValues(err):
		return schema.View{Name: name, Status: schema.ViewEmpty}
	case err != nil:
		return schema.View{Name: name, Status: schema.ViewError, Error: err.Error()}
	}
	return schema.View{Name: name, Status: schema.ViewReady, Hist: hist}
}

// tableView wraps a table with its presentation state.
func tableView(name string, table schema.Dataset, err error) schema.View {
	switch {
	case err != nil:
		return schema.View{Name: name, Status: schema.ViewError, Error: err.Error()}
	case len(table) == 0:
		return schema.View{Name: name, Status: schema.ViewEmpty}
	}
	return schema.View{Name: name, Status: schema.ViewReady, Table: table}
}
