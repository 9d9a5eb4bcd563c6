// Package source fetches dashboard datasets from the configured backend.
package source

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/schema"
)

// Closer releases resources held by a fetcher.
type Closer func() error

func noopCloser() error { return nil }

// NewFetcher builds the dataset fetcher selected by cfg.Source.
// The returned closer must be called once the fetcher is no longer needed.
func NewFetcher(cfg *contract.Config) (contract.Fetcher, Closer, error) {
	switch cfg.Source {
	case schema.HTTPSource, "":
		return NewHTTPFetcher(cfg.APIBase, cfg.Timeout), noopCloser, nil
	case schema.SQLiteSource, schema.MySQLSource, schema.PostgreSQLSource:
		f, err := NewSQLFetcher(cfg.Source, cfg.SourceDBConnect)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported source: %s. Must be http, sqlite, mysql, or postgresql", cfg.Source)
	}
}

// NewOilSource builds the fetcher for the external oil production CSV.
func NewOilSource(cfg *contract.Config) contract.OilSource {
	return NewOilFetcher(cfg.OilURL, cfg.Timeout)
}

// newHTTPClient returns a client; a zero timeout means the request may wait indefinitely.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
