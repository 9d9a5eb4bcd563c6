package core

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoadAllSuccess(t *testing.T) {
	ctx := context.Background()
	fetcher := &contract.MockFetcher{}
	fetcher.On("Fetch", ctx, schema.DepositedColumn).Return(schema.Dataset{{schema.ColDeposited: 1.0}}, nil)
	fetcher.On("Fetch", ctx, schema.ByContributor).Return(schema.Dataset{{schema.ColContributor: "Norway"}}, nil)

	model := NewDashboardModel(fetcher)
	assert.Equal(t, schema.StateLoading, model.State())

	snap, err := model.LoadAll(ctx, []schema.DatasetName{schema.DepositedColumn, schema.ByContributor})
	require.NoError(t, err)

	assert.Equal(t, schema.StateReady, model.State())
	assert.NoError(t, model.Err())
	assert.Same(t, snap, model.Snapshot())
	assert.Equal(t, []schema.DatasetName{schema.DepositedColumn, schema.ByContributor}, snap.Names())
	assert.True(t, snap.Has(schema.ByContributor))

	ds, ok := snap.Dataset(schema.ByContributor)
	require.True(t, ok)
	assert.Equal(t, "Norway", ds[0][schema.ColContributor])
	fetcher.AssertExpectations(t)
}

func TestLoadAllFirstFailureWins(t *testing.T) {
	ctx := context.Background()
	fetcher := &contract.MockFetcher{}
	boom := errors.New("500 Internal Server Error")
	fetcher.On("Fetch", ctx, schema.DepositedColumn).Return(schema.Dataset{{"x": 1.0}}, nil)
	fetcher.On("Fetch", ctx, schema.SDGCountByCountry).Return(nil, boom)
	fetcher.On("Fetch", ctx, schema.ByContributor).Return(schema.Dataset{}, nil)

	model := NewDashboardModel(fetcher)
	snap, err := model.LoadAll(ctx, []schema.DatasetName{schema.DepositedColumn, schema.SDGCountByCountry, schema.ByContributor})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), string(schema.SDGCountByCountry))
	assert.Nil(t, snap)
	assert.Nil(t, model.Snapshot())
	assert.Equal(t, schema.StateError, model.State())
	assert.ErrorIs(t, model.Err(), boom)
	// Siblings still ran to completion.
	fetcher.AssertNumberOfCalls(t, "Fetch", 3)
}

func TestLoadAllIsOneShot(t *testing.T) {
	ctx := context.Background()
	fetcher := &contract.MockFetcher{}
	fetcher.On("Fetch", ctx, schema.DepositedColumn).Return(schema.Dataset{}, nil).Once()

	model := NewDashboardModel(fetcher)
	_, err := model.LoadAll(ctx, []schema.DatasetName{schema.DepositedColumn})
	require.NoError(t, err)

	_, err = model.LoadAll(ctx, []schema.DatasetName{schema.DepositedColumn})
	assert.ErrorIs(t, err, ErrAlreadyLoaded)
	assert.Equal(t, schema.StateReady, model.State())
	fetcher.AssertExpectations(t)
}

func TestLoadAllErrorIsTerminal(t *testing.T) {
	ctx := context.Background()
	fetcher := &contract.MockFetcher{}
	fetcher.On("Fetch", ctx, schema.DepositedColumn).Return(nil, errors.New("down"))

	model := NewDashboardModel(fetcher)
	_, err := model.LoadAll(ctx, []schema.DatasetName{schema.DepositedColumn})
	require.Error(t, err)

	_, err = model.LoadAll(ctx, []schema.DatasetName{schema.DepositedColumn})
	assert.ErrorIs(t, err, ErrAlreadyLoaded)
	assert.Equal(t, schema.StateError, model.State())
}

func TestLoadAllUnknownDataset(t *testing.T) {
	fetcher := &contract.MockFetcher{}
	_, err := LoadAll(context.Background(), fetcher, []schema.DatasetName{"secrets"})
	assert.ErrorIs(t, err, contract.ErrUnknownDataset)
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestLoadAllDeduplicatesNames(t *testing.T) {
	ctx := context.Background()
	fetcher := &contract.MockFetcher{}
	fetcher.On("Fetch", ctx, schema.ByCountry).Return(schema.Dataset{}, nil).Once()

	snap, err := LoadAll(ctx, fetcher, []schema.DatasetName{schema.ByCountry, schema.ByCountry})
	require.NoError(t, err)
	assert.Equal(t, []schema.DatasetName{schema.ByCountry}, snap.Names())
	fetcher.AssertExpectations(t)
}

func TestLoadAllRunsConcurrently(t *testing.T) {
	var inFlight, peak atomic.Int32
	fetcher := contract.FetcherFunc(func(_ context.Context, _ schema.DatasetName) (schema.Dataset, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		return schema.Dataset{}, nil
	})

	_, err := LoadAll(context.Background(), fetcher, schema.DashboardDatasets)
	require.NoError(t, err)
	assert.Greater(t, peak.Load(), int32(1))
}

func TestSnapshotIsImmutable(t *testing.T) {
	ctx := context.Background()
	fetcher := &contract.MockFetcher{}
	fetcher.On("Fetch", ctx, schema.ByContributor).Return(schema.Dataset{{schema.ColContributor: "Norway"}}, nil)

	snap, err := LoadAll(ctx, fetcher, []schema.DatasetName{schema.ByContributor})
	require.NoError(t, err)

	ds, _ := snap.Dataset(schema.ByContributor)
	ds[0][schema.ColContributor] = "changed"
	names := snap.Names()
	names[0] = "changed"

	again, _ := snap.Dataset(schema.ByContributor)
	assert.Equal(t, "Norway", again[0][schema.ColContributor])
	assert.Equal(t, schema.ByContributor, snap.Names()[0])

	_, ok := snap.Dataset(schema.RawData)
	assert.False(t, ok)
}

func TestLoadAllNilDatasetBecomesEmpty(t *testing.T) {
	ctx := context.Background()
	fetcher := &contract.MockFetcher{}
	fetcher.On("Fetch", ctx, schema.ByCountry).Return(nil, nil)

	snap, err := LoadAll(ctx, fetcher, []schema.DatasetName{schema.ByCountry})
	require.NoError(t, err)
	ds, ok := snap.Dataset(schema.ByCountry)
	assert.True(t, ok)
	assert.NotNil(t, ds)
	assert.Empty(t, ds)
}
