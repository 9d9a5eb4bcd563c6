package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// SourceBackend represents where datasets are fetched from.
	SourceBackend string

	// DatasetName identifies one precomputed table exposed by the backend.
	DatasetName string

	// LoadState is the lifecycle state of a dashboard load.
	LoadState string

	// ViewStatus is the presentation state of a single derived view.
	ViewStatus string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	HTMLOut    OutputMode = "html"
	SVGOut     OutputMode = "svg"
	PNGOut     OutputMode = "png"
)

// All source backends supported.
const (
	HTTPSource       SourceBackend = "http" // default
	SQLiteSource     SourceBackend = "sqlite"
	MySQLSource      SourceBackend = "mysql"
	PostgreSQLSource SourceBackend = "postgresql"
)

// Load states. Ready and Error are terminal.
const (
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateError   LoadState = "error"
)

// View states. Exactly one applies to any rendered view.
const (
	ViewLoading ViewStatus = "loading"
	ViewError   ViewStatus = "error"
	ViewEmpty   ViewStatus = "empty"
	ViewReady   ViewStatus = "ready"
)

// Datasets served under /api/<name>.
const (
	RawData                                   DatasetName = "raw_data"
	DepositedColumn                           DatasetName = "deposited_column"
	ByContributor                             DatasetName = "by_contributor"
	ByContributorMath                         DatasetName = "by_contributor_math"
	ByContributorClean                        DatasetName = "by_contributor_clean"
	ByContributorCleanMath                    DatasetName = "by_contributor_clean_math"
	SDGCountByCountry                         DatasetName = "sdg_count_by_country"
	ByCountry                                 DatasetName = "by_country"
	ByCountryMath                             DatasetName = "by_country_math"
	ByCountryClean                            DatasetName = "by_country_clean"
	ByCountryCleanMath                        DatasetName = "by_country_clean_math"
	NDCStatusTable                            DatasetName = "ndc_status_table"
	NDCStatusPointsChart                      DatasetName = "ndc_status_points_chart"
	DepositedByNDCStatusCountries             DatasetName = "deposited_by_ndc_status_countries"
	NDCStatusPointsChartOverlap               DatasetName = "ndc_status_points_chart_overlap"
	DepositedByNDCStatusCountriesOverlapOrder DatasetName = "deposited_by_ndc_status_countries_overlap_order"
)

// Column names shared by the backend datasets.
const (
	ColDeposited        = "Deposited (USD million current)"
	ColContributor      = "Contributor"
	ColContributorClean = "Contributor_clean"
	ColCountry          = "Country"
	ColCountryClean     = "Country_clean"
	ColSDGCount         = "SDG_Count"
	ColPoints           = "Points"
	ColEntries          = "Entries"
	ColSumMath          = "Sum Math"
	ColTotal            = "Total"
)

// Columns of the Our World in Data oil production CSV.
const (
	ColEntity        = "Entity"
	ColCode          = "Code"
	ColYear          = "Year"
	ColOilProduction = "Oil production (TWh)"
)

// DefaultBinCount is the number of histogram bins used by the dashboard.
const DefaultBinCount = 20

// DashboardDatasets is the set loaded together by the dashboard, in display order.
var DashboardDatasets = []DatasetName{
	RawData,
	DepositedColumn,
	ByContributor,
	ByContributorMath,
	ByContributorClean,
	ByContributorCleanMath,
	SDGCountByCountry,
	NDCStatusPointsChart,
}

// KnownDatasets maps every dataset to a one-line description.
var KnownDatasets = map[DatasetName]string{
	RawData:                                   "Full fund deposits table",
	DepositedColumn:                           "Deposited amounts only",
	ByContributor:                             "Deposits summed per contributor",
	ByContributorMath:                         "Per-contributor totals with entry breakdown",
	ByContributorClean:                        "Deposits per contributor with cleaned names",
	ByContributorCleanMath:                    "Cleaned per-contributor totals with entry breakdown",
	SDGCountByCountry:                         "Number of SDG-tagged deposits per country",
	ByCountry:                                 "Deposits summed per country",
	ByCountryMath:                             "Per-country totals with entry breakdown",
	ByCountryClean:                            "Deposits per country with cleaned names",
	ByCountryCleanMath:                        "Cleaned per-country totals with entry breakdown",
	NDCStatusTable:                            "NDC status per country",
	NDCStatusPointsChart:                      "NDC status points per country",
	DepositedByNDCStatusCountries:             "Deposits for countries with an NDC status",
	NDCStatusPointsChartOverlap:               "NDC points for countries that also deposit",
	DepositedByNDCStatusCountriesOverlapOrder: "Overlap deposits in NDC points order",
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
	HTMLOut:    {},
	SVGOut:     {},
	PNGOut:     {},
}

// ValidSourceBackends lists all valid source backends.
var ValidSourceBackends = map[SourceBackend]struct{}{
	HTTPSource:       {},
	SQLiteSource:     {},
	MySQLSource:      {},
	PostgreSQLSource: {},
}

// Path returns the backend path for the dataset.
func (n DatasetName) Path() string {
	return "/api/" + string(n)
}

// Known reports whether the dataset is part of the backend registry.
func (n DatasetName) Known() bool {
	_, ok := KnownDatasets[n]
	return ok
}
