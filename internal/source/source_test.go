package source

import (
	"testing"
	"time"

	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFetcher_HTTP(t *testing.T) {
	cfg := &contract.Config{Source: schema.HTTPSource, APIBase: "http://localhost:5050", Timeout: time.Second}
	f, closer, err := NewFetcher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &HTTPFetcher{}, f)
	assert.NoError(t, closer())
}

func TestNewFetcher_SQLite(t *testing.T) {
	cfg := &contract.Config{Source: schema.SQLiteSource, SourceDBConnect: seedSQLite(t)}
	f, closer, err := NewFetcher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &SQLFetcher{}, f)
	assert.NoError(t, closer())
}

func TestNewFetcher_Unsupported(t *testing.T) {
	_, _, err := NewFetcher(&contract.Config{Source: "mongodb"})
	assert.Error(t, err)
}

func TestNewOilSource(t *testing.T) {
	src := NewOilSource(&contract.Config{OilURL: "http://example.invalid/oil.csv"})
	oil, ok := src.(*OilFetcher)
	require.True(t, ok)
	assert.Equal(t, "http://example.invalid/oil.csv", oil.url)
}
