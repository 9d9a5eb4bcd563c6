// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/cfudash/fundboard/schema"
)

// ErrUnknownDataset is returned when a dataset name is not in the registry.
var ErrUnknownDataset = errors.New("unknown dataset")

// Fetcher retrieves one named dataset from a backend.
// Each call is a single attempt; implementations never retry.
type Fetcher interface {
	// Fetch returns the records of the named dataset in backend order.
	Fetch(ctx context.Context, name schema.DatasetName) (schema.Dataset, error)
}

// OilSource retrieves the external oil production table.
type OilSource interface {
	// FetchOil returns one record per (Entity, Year) row of the source CSV.
	FetchOil(ctx context.Context) (schema.Dataset, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, name schema.DatasetName) (schema.Dataset, error)

// Fetch implements the Fetcher interface.
func (f FetcherFunc) Fetch(ctx context.Context, name schema.DatasetName) (schema.Dataset, error) {
	return f(ctx, name)
}

// ValidateDatasetName rejects names outside the registry before any I/O happens.
func ValidateDatasetName(name schema.DatasetName) error {
	if !name.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	return nil
}
