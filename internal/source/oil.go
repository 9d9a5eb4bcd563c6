package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/schema"
)

// OilFetcher downloads the Our World in Data oil production CSV.
type OilFetcher struct {
	url    string
	client *http.Client
}

var _ contract.OilSource = &OilFetcher{} // Compile-time check

// NewOilFetcher creates a fetcher for the oil CSV at url.
func NewOilFetcher(url string, timeout time.Duration) *OilFetcher {
	return &OilFetcher{url: url, client: newHTTPClient(timeout)}
}

// FetchOil downloads and parses the CSV in a single attempt.
func (f *OilFetcher) FetchOil(ctx context.Context) (schema.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch oil production: build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch oil production: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("fetch oil production: unexpected status %s: %s", resp.Status, errorMessage(body))
	}

	ds, err := ParseOilCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch oil production: %w", err)
	}
	return ds, nil
}

// ParseOilCSV reads the CSV into records keyed by header name.
// Every cell stays a string; the Entity, Year and production columns are required.
func ParseOilCSV(r io.Reader) (schema.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty CSV")
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	for _, required := range []string{schema.ColEntity, schema.ColYear, schema.ColOilProduction} {
		if !slices.Contains(header, required) {
			return nil, fmt.Errorf("CSV is missing column %q", required)
		}
	}

	ds := schema.Dataset{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		rec := make(schema.Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = nil
			}
		}
		ds = append(ds, rec)
	}
	return ds, nil
}
