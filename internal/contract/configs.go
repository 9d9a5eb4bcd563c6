package contract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cfudash/fundboard/schema"
)

// Default values for configuration.
const (
	DefaultAPIBase     = "http://localhost:5050"
	DefaultResultLimit = 10
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	MaxBinCount        = 200
)

// DefaultOilURL is the public Our World in Data oil production export.
const DefaultOilURL = "https://ourworldindata.org/grapher/oil-production-by-country.csv?v=1&csvType=full&useColumnShortNames=false"

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a dashboard run.
// This struct is the "final, validated" config.
type Config struct {
	APIBase         string
	Source          schema.SourceBackend
	SourceDBConnect string // Please use env var as this is plaintext
	OilURL          string
	Timeout         time.Duration // Zero means no client timeout

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	Dataset schema.DatasetName
	Column  string
	Bins    int
	Limit   int

	Clean   bool // Use the *_clean datasets
	Math    bool // Use the *_math datasets
	All     bool // Show every country instead of the contributor order
	WithOil bool // Overlay oil production on NDC views
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	APIBase         string `mapstructure:"api-base"`
	Source          string `mapstructure:"source"`
	SourceDBConnect string `mapstructure:"source-db-connect"`
	OilURL          string `mapstructure:"oil-url"`
	Timeout         string `mapstructure:"timeout"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Precision       int    `mapstructure:"precision"`
	Width           int    `mapstructure:"width"`
	Color           string `mapstructure:"color"`
	Limit           int    `mapstructure:"limit"`

	// --- Fields from histogramCmd.Flags() ---
	Dataset string `mapstructure:"dataset"`
	Column  string `mapstructure:"column"`
	Bins    int    `mapstructure:"bins"`

	// --- Fields from the ranking commands ---
	Clean bool `mapstructure:"clean"`
	Math  bool `mapstructure:"math"`
	All   bool `mapstructure:"all"`
	Oil   bool `mapstructure:"oil"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateSourceConfig(cfg, input); err != nil {
		return err
	}
	if err := validateHistogramInputs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for the SQL source backends.
func ValidateDatabaseConnectionString(backend schema.SourceBackend, connStr string) error {
	switch backend {
	case schema.HTTPSource:
		return nil
	case schema.SQLiteSource:
		if connStr == "" {
			return fmt.Errorf("source-db-connect must name a database file when using %s source", backend)
		}
	case schema.MySQLSource:
		if connStr == "" {
			return fmt.Errorf("source-db-connect is required when using %s source", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLSource:
		if connStr == "" {
			return fmt.Errorf("source-db-connect is required when using %s source", backend)
		}
		if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
			return nil
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ValidateBaseURL checks that a base URL is absolute http(s) and strips any trailing slash.
func ValidateBaseURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("url %q must use http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("url %q has no host", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// validateSourceConfig validates where datasets come from.
func validateSourceConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = schema.SourceBackend(strings.ToLower(input.Source))
	if cfg.Source == "" {
		cfg.Source = schema.HTTPSource
	}
	if _, ok := schema.ValidSourceBackends[cfg.Source]; !ok {
		return fmt.Errorf("invalid source '%s'. must be http, sqlite, mysql, postgresql", input.Source)
	}
	cfg.SourceDBConnect = input.SourceDBConnect
	if err := ValidateDatabaseConnectionString(cfg.Source, cfg.SourceDBConnect); err != nil {
		return err
	}

	apiBase := input.APIBase
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	base, err := ValidateBaseURL(apiBase)
	if err != nil {
		return fmt.Errorf("invalid --api-base: %w", err)
	}
	cfg.APIBase = base

	oilURL := input.OilURL
	if oilURL == "" {
		oilURL = DefaultOilURL
	}
	if _, err := ValidateBaseURL(oilURL); err != nil {
		return fmt.Errorf("invalid --oil-url: %w", err)
	}
	cfg.OilURL = oilURL

	cfg.Timeout = 0
	if t := strings.TrimSpace(input.Timeout); t != "" && t != "0" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("invalid --timeout value: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("timeout cannot be negative (received %s)", d)
		}
		cfg.Timeout = d
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Clean = input.Clean
	cfg.Math = input.Math
	cfg.All = input.All
	cfg.WithOil = input.Oil

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Limit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, html, svg, png", input.Output)
	}
	if (cfg.Output == schema.ParquetOut || cfg.Output == schema.PNGOut) && cfg.OutputFile == "" {
		return fmt.Errorf("%s output requires --output-file", cfg.Output)
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	return nil
}

// validateHistogramInputs validates the histogram dataset, column and bin count.
func validateHistogramInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Dataset = schema.DatasetName(input.Dataset)
	if cfg.Dataset == "" {
		cfg.Dataset = schema.DepositedColumn
	}
	if err := ValidateDatasetName(cfg.Dataset); err != nil {
		return err
	}

	cfg.Column = input.Column
	if cfg.Column == "" {
		cfg.Column = schema.ColDeposited
	}

	cfg.Bins = input.Bins
	if cfg.Bins == 0 {
		cfg.Bins = schema.DefaultBinCount
	}
	if cfg.Bins < 1 || cfg.Bins > MaxBinCount {
		return fmt.Errorf("bins must be between 1 and %d (received %d)", MaxBinCount, input.Bins)
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
