package contract

import (
	"testing"
	"time"

	"github.com/cfudash/fundboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Limit:     10,
		Precision: 1,
		Output:    "text",
		Color:     "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:        "valid minimal config",
			mutate:      func(*ConfigRawInput) {},
			expectError: false,
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "limit too large",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: true,
		},
		{
			name:        "zero limit",
			mutate:      func(in *ConfigRawInput) { in.Limit = 0 },
			expectError: true,
		},
		{
			name:        "precision out of range",
			mutate:      func(in *ConfigRawInput) { in.Precision = 3 },
			expectError: true,
		},
		{
			name:        "bad color",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: true,
		},
		{
			name:        "parquet without output file",
			mutate:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: true,
		},
		{
			name: "parquet with output file",
			mutate: func(in *ConfigRawInput) {
				in.Output = "parquet"
				in.OutputFile = "out.parquet"
			},
			expectError: false,
		},
		{
			name:        "unknown source",
			mutate:      func(in *ConfigRawInput) { in.Source = "mongo" },
			expectError: true,
		},
		{
			name:        "sqlite source without file",
			mutate:      func(in *ConfigRawInput) { in.Source = "sqlite" },
			expectError: true,
		},
		{
			name: "sqlite source with file",
			mutate: func(in *ConfigRawInput) {
				in.Source = "sqlite"
				in.SourceDBConnect = "/tmp/fund.db"
			},
			expectError: false,
		},
		{
			name:        "bad api base",
			mutate:      func(in *ConfigRawInput) { in.APIBase = "ftp://example.com" },
			expectError: true,
		},
		{
			name:        "bad timeout",
			mutate:      func(in *ConfigRawInput) { in.Timeout = "soon" },
			expectError: true,
		},
		{
			name:        "negative timeout",
			mutate:      func(in *ConfigRawInput) { in.Timeout = "-5s" },
			expectError: true,
		},
		{
			name:        "unknown dataset",
			mutate:      func(in *ConfigRawInput) { in.Dataset = "nope" },
			expectError: true,
		},
		{
			name:        "too many bins",
			mutate:      func(in *ConfigRawInput) { in.Bins = MaxBinCount + 1 },
			expectError: true,
		},
		{
			name:        "negative bins",
			mutate:      func(in *ConfigRawInput) { in.Bins = -1 },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, schema.HTTPSource, cfg.Source)
	assert.Equal(t, DefaultAPIBase, cfg.APIBase)
	assert.Equal(t, DefaultOilURL, cfg.OilURL)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, schema.DepositedColumn, cfg.Dataset)
	assert.Equal(t, schema.ColDeposited, cfg.Column)
	assert.Equal(t, schema.DefaultBinCount, cfg.Bins)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateOverrides(t *testing.T) {
	input := validInput()
	input.APIBase = "https://fund.example.org/"
	input.Timeout = "30s"
	input.Output = "JSON"
	input.Bins = 10
	input.Clean = true
	input.Oil = true

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "https://fund.example.org", cfg.APIBase)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, 10, cfg.Bins)
	assert.True(t, cfg.Clean)
	assert.True(t, cfg.WithOil)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.SourceBackend
		conn    string
		wantErr bool
	}{
		{"http ignores conn", schema.HTTPSource, "", false},
		{"sqlite path", schema.SQLiteSource, "fund.db", false},
		{"sqlite empty", schema.SQLiteSource, "", true},
		{"mysql valid", schema.MySQLSource, "user:pass@tcp(localhost:3306)/fund", false},
		{"mysql missing tcp", schema.MySQLSource, "user:pass@localhost/fund", true},
		{"mysql empty", schema.MySQLSource, "", true},
		{"postgres keyword", schema.PostgreSQLSource, "host=localhost port=5432 dbname=fund", false},
		{"postgres url", schema.PostgreSQLSource, "postgres://u:p@localhost:5432/fund", false},
		{"postgres missing dbname", schema.PostgreSQLSource, "host=localhost", true},
		{"postgres empty", schema.PostgreSQLSource, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{APIBase: "http://a", Bins: 20}
	clone := cfg.Clone()
	clone.Bins = 5
	assert.Equal(t, 20, cfg.Bins)
	assert.Equal(t, "http://a", clone.APIBase)
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "run"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "run", profile.Prefix)
}
