package contract

import (
	"context"

	"github.com/cfudash/fundboard/schema"
	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock implementation of Fetcher for testing.
type MockFetcher struct {
	mock.Mock
}

var _ Fetcher = &MockFetcher{} // Compile-time check

// Fetch implements the Fetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, name schema.DatasetName) (schema.Dataset, error) {
	args := m.Called(ctx, name)
	ds, _ := args.Get(0).(schema.Dataset)
	return ds, args.Error(1)
}

// MockOilSource is a mock implementation of OilSource for testing.
type MockOilSource struct {
	mock.Mock
}

var _ OilSource = &MockOilSource{} // Compile-time check

// FetchOil implements the OilSource interface.
func (m *MockOilSource) FetchOil(ctx context.Context) (schema.Dataset, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).(schema.Dataset)
	return ds, args.Error(1)
}
