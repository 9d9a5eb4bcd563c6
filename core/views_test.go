package core

import (
	"errors"
	"testing"

	"github.com/cfudash/fundboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	data := map[schema.DatasetName]schema.Dataset{
		schema.RawData: {
			{schema.ColContributor: "Norway", schema.ColCountry: "Kenya", schema.ColDeposited: 10.0},
			{schema.ColContributor: "Germany (BMU)", schema.ColCountry: "Peru", schema.ColDeposited: "20"},
		},
		schema.DepositedColumn: {
			{schema.ColDeposited: 10.0},
			{schema.ColDeposited: "20"},
			{schema.ColDeposited: nil},
			{schema.ColDeposited: 30.0},
		},
		schema.ByContributor: {
			{schema.ColContributor: "Germany (BMU)", schema.ColDeposited: 100.0},
			{schema.ColContributor: "Norway", schema.ColDeposited: 250.0},
		},
		schema.ByContributorMath: {
			{schema.ColContributor: "Norway", schema.ColTotal: 250.0, schema.ColEntries: []any{100.0, 150.0}},
		},
		schema.ByContributorClean: {
			{schema.ColContributorClean: "Germany", schema.ColDeposited: 100.0},
			{schema.ColContributorClean: "Norway", schema.ColDeposited: 250.0},
			{schema.ColContributorClean: "Japan", schema.ColDeposited: 300.0},
		},
		schema.ByContributorCleanMath: {},
		schema.SDGCountByCountry: {
			{schema.ColCountry: "Norway", schema.ColSDGCount: 4.0},
			{schema.ColCountry: "Germany", schema.ColSDGCount: 2.0},
			{schema.ColCountry: "Kenya", schema.ColSDGCount: 9.0},
		},
		schema.NDCStatusPointsChart: {
			{schema.ColCountry: "Kenya", schema.ColPoints: 0.75},
			{schema.ColCountry: "Chad", schema.ColPoints: 0.25},
			{schema.ColCountry: "Peru", schema.ColPoints: 1.0},
			{schema.ColCountry: "Fiji", schema.ColPoints: 0.6},
		},
	}
	return NewSnapshot(data, schema.DashboardDatasets)
}

func testOil() schema.Dataset {
	return schema.Dataset{
		{schema.ColEntity: "Kenya", schema.ColYear: "2022", schema.ColOilProduction: "0"},
		{schema.ColEntity: "Norway", schema.ColYear: "2022", schema.ColOilProduction: "1000"},
		{schema.ColEntity: "Norway", schema.ColYear: "2023", schema.ColOilProduction: "1100"},
		{schema.ColEntity: "Peru", schema.ColYear: "2023", schema.ColOilProduction: "50"},
		{schema.ColEntity: "Chad", schema.ColYear: "2023", schema.ColOilProduction: ""},
	}
}

func TestHistogramView(t *testing.T) {
	hist, err := HistogramView(testSnapshot(), schema.DepositedColumn, schema.ColDeposited, schema.DefaultBinCount)
	require.NoError(t, err)
	assert.Equal(t, 3, hist.Total)
	assert.Len(t, hist.Counts, schema.DefaultBinCount)

	_, err = HistogramView(testSnapshot(), schema.ByCountry, schema.ColDeposited, 20)
	assert.Error(t, err)
}

func TestRankingView(t *testing.T) {
	bars, err := RankingView(testSnapshot(), ContributorRanking, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Germany (BMU)", "Norway"}, bars.Labels)
	assert.Equal(t, []float64{100, 250}, bars.Values)

	bars, err = RankingView(testSnapshot(), ContributorRanking, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Germany", "Norway", "Japan"}, bars.Labels)

	_, err = RankingView(testSnapshot(), CountryRanking, false)
	assert.Error(t, err)
}

func TestRankingSource(t *testing.T) {
	tests := []struct {
		kind        RankingKind
		clean, math bool
		name        schema.DatasetName
		col         string
	}{
		{ContributorRanking, false, false, schema.ByContributor, schema.ColContributor},
		{ContributorRanking, true, false, schema.ByContributorClean, schema.ColContributorClean},
		{ContributorRanking, false, true, schema.ByContributorMath, schema.ColContributor},
		{ContributorRanking, true, true, schema.ByContributorCleanMath, schema.ColContributorClean},
		{CountryRanking, false, false, schema.ByCountry, schema.ColCountry},
		{CountryRanking, true, false, schema.ByCountryClean, schema.ColCountryClean},
		{CountryRanking, false, true, schema.ByCountryMath, schema.ColCountry},
		{CountryRanking, true, true, schema.ByCountryCleanMath, schema.ColCountryClean},
	}
	for _, tt := range tests {
		name, col := rankingSource(tt.kind, tt.clean, tt.math)
		assert.Equal(t, tt.name, name)
		assert.Equal(t, tt.col, col)
	}
}

func TestSDGByContributorView(t *testing.T) {
	bars, err := SDGByContributorView(testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, []string{"Germany", "Norway", "Japan"}, bars.Labels)
	assert.Equal(t, []float64{2, 4, 0}, bars.Values)
}

func TestSDGByContributorViewWithoutSDGRows(t *testing.T) {
	snap := NewSnapshot(map[schema.DatasetName]schema.Dataset{
		schema.ByContributorClean: {
			{schema.ColContributorClean: "Germany", schema.ColDeposited: 100.0},
			{schema.ColContributorClean: "Norway", schema.ColDeposited: 250.0},
		},
		schema.SDGCountByCountry: {},
	}, nil)

	bars, err := SDGByContributorView(snap)
	require.NoError(t, err)
	assert.Equal(t, 0, bars.Len())
	assert.Equal(t, schema.ViewEmpty, barsView(ViewSDGByContributor, bars, err).Status)
}

func TestSDGAllCountriesView(t *testing.T) {
	bars, err := SDGAllCountriesView(testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, []string{"Norway", "Germany", "Kenya"}, bars.Labels)
	assert.Equal(t, []float64{4, 2, 9}, bars.Values)
}

func TestNDCPointsView(t *testing.T) {
	bars, err := NDCPointsView(testSnapshot())
	require.NoError(t, err)

	assert.Equal(t, []string{"Chad", "Fiji", "Kenya", "Peru"}, bars.Labels)
	assert.Equal(t, []float64{0.25, 0.6, 0.75, 1}, bars.Values)
	assert.Equal(t, []string{
		schema.RedBucket.Hex, schema.GrayBucket.Hex, schema.YellowBucket.Hex, schema.GreenBucket.Hex,
	}, bars.Colors)
	require.NotNil(t, bars.YMin)
	require.NotNil(t, bars.YMax)
	assert.Equal(t, 0.0, *bars.YMin)
	assert.Equal(t, 1.0, *bars.YMax)
}

func TestOilTopView(t *testing.T) {
	bars := OilTopView(testOil(), 2)
	assert.Equal(t, []string{"Norway", "Peru"}, bars.Labels)
	assert.Equal(t, []float64{1100, 50}, bars.Values)
}

func TestOilByNDCView(t *testing.T) {
	bars, err := OilByNDCView(testSnapshot(), testOil())
	require.NoError(t, err)
	assert.Equal(t, []string{"Chad", "Fiji", "Kenya", "Peru"}, bars.Labels)
	assert.Equal(t, []float64{0, 0, 0, 50}, bars.Values)
}

func TestMathTable(t *testing.T) {
	table, err := MathTable(testSnapshot(), ContributorRanking, false)
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, []any{100.0, 150.0}, table[0][schema.ColEntries])
}

func TestBuildDashboardViews(t *testing.T) {
	views := BuildDashboardViews(testSnapshot(), schema.DefaultBinCount)
	require.Len(t, views, 10)
	assert.Equal(t, ViewRawData, views[0].Name)
	assert.Equal(t, ViewDepositedTable, views[1].Name)
	assert.Equal(t, ViewSDGAllCountries, views[8].Name)
	assert.Equal(t, ViewNDCPoints, views[9].Name)

	byName := make(map[string]schema.View)
	for _, v := range views {
		byName[v.Name] = v
	}
	assert.Equal(t, schema.ViewReady, byName[ViewRawData].Status)
	assert.Len(t, byName[ViewRawData].Table, 2)
	assert.Equal(t, schema.ViewReady, byName[ViewDepositedTable].Status)
	assert.Len(t, byName[ViewDepositedTable].Table, 4)
	assert.Equal(t, schema.ViewReady, byName[ViewDepositedHistogram].Status)
	assert.NotNil(t, byName[ViewDepositedHistogram].Hist)
	assert.Equal(t, schema.ViewReady, byName[ViewByContributor].Status)
	assert.Equal(t, schema.ViewReady, byName[ViewByContributorMath].Status)
	assert.Equal(t, schema.ViewEmpty, byName[ViewByContributorCleanMath].Status)
	assert.Equal(t, schema.ViewReady, byName[ViewSDGByContributor].Status)
	assert.Equal(t, schema.ViewReady, byName[ViewSDGAllCountries].Status)
	require.NotNil(t, byName[ViewSDGAllCountries].Bars)
	assert.Equal(t, []string{"Norway", "Germany", "Kenya"}, byName[ViewSDGAllCountries].Bars.Labels)
	assert.Equal(t, schema.ViewReady, byName[ViewNDCPoints].Status)
}

func TestBuildDashboardViewsEmptyTables(t *testing.T) {
	snap := NewSnapshot(map[schema.DatasetName]schema.Dataset{
		schema.RawData:         {},
		schema.DepositedColumn: {},
	}, nil)
	views := BuildDashboardViews(snap, schema.DefaultBinCount)

	assert.Equal(t, schema.ViewEmpty, views[0].Status)
	assert.Equal(t, schema.ViewEmpty, views[1].Status)
	assert.Equal(t, schema.ViewEmpty, views[2].Status)
}

func TestViewStatusWrappers(t *testing.T) {
	v := barsView("x", schema.BarSeries{}, errors.New("bad"))
	assert.Equal(t, schema.ViewError, v.Status)
	assert.Equal(t, "bad", v.Error)

	v = barsView("x", schema.BarSeries{}, nil)
	assert.Equal(t, schema.ViewEmpty, v.Status)

	_, err := HistogramView(NewSnapshot(map[schema.DatasetName]schema.Dataset{
		schema.DepositedColumn: {{schema.ColDeposited: "n/a"}},
	}, nil), schema.DepositedColumn, schema.ColDeposited, 20)
	v = histogramView("h", nil, err)
	assert.Equal(t, schema.ViewEmpty, v.Status)

	v = tableView("t", schema.Dataset{{"a": 1.0}}, nil)
	assert.Equal(t, schema.ViewReady, v.Status)
}
