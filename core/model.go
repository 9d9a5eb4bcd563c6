package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/schema"
	"golang.org/x/sync/errgroup"
)

// ErrAlreadyLoaded is returned when LoadAll is called twice on one model.
var ErrAlreadyLoaded = errors.New("dashboard model already loaded")

// DashboardModel loads a set of datasets exactly once.
// Its state moves from loading to either ready or error and then never changes.
type DashboardModel struct {
	fetcher contract.Fetcher

	mu       sync.Mutex
	started  bool
	state    schema.LoadState
	err      error
	snapshot *Snapshot
}

// NewDashboardModel creates a model that fetches through the given fetcher.
func NewDashboardModel(fetcher contract.Fetcher) *DashboardModel {
	return &DashboardModel{fetcher: fetcher, state: schema.StateLoading}
}

// LoadAll fetches every named dataset concurrently and waits for all of them.
// The first failure wins and partial results are discarded. A failing fetch does
// not cancel its siblings. Duplicate names are fetched once.
func (m *DashboardModel) LoadAll(ctx context.Context, names []schema.DatasetName) (*Snapshot, error) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return nil, ErrAlreadyLoaded
	}
	m.started = true
	m.mu.Unlock()

	snap, err := m.load(ctx, names)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = schema.StateError
		m.err = err
		return nil, err
	}
	m.state = schema.StateReady
	m.snapshot = snap
	return snap, nil
}

func (m *DashboardModel) load(ctx context.Context, names []schema.DatasetName) (*Snapshot, error) {
	start := time.Now()
	unique := dedupeNames(names)
	for _, name := range unique {
		if err := contract.ValidateDatasetName(name); err != nil {
			return nil, err
		}
	}

	results := make([]schema.Dataset, len(unique))
	var g errgroup.Group
	for i, name := range unique {
		g.Go(func() error {
			ds, err := m.fetcher.Fetch(ctx, name)
			if err != nil {
				return fmt.Errorf("dataset %s: %w", name, err)
			}
			results[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := make(map[schema.DatasetName]schema.Dataset, len(unique))
	for i, name := range unique {
		ds := results[i]
		if ds == nil {
			ds = schema.Dataset{}
		}
		data[name] = ds
	}
	return &Snapshot{names: unique, data: data, duration: time.Since(start)}, nil
}

// State returns the current load state.
func (m *DashboardModel) State() schema.LoadState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the load error once the model is in the error state.
func (m *DashboardModel) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Snapshot returns the loaded snapshot once the model is ready, or nil.
func (m *DashboardModel) Snapshot() *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// LoadAll runs a fresh one-shot model over the given names.
func LoadAll(ctx context.Context, fetcher contract.Fetcher, names []schema.DatasetName) (*Snapshot, error) {
	return NewDashboardModel(fetcher).LoadAll(ctx, names)
}

func dedupeNames(names []schema.DatasetName) []schema.DatasetName {
	out := make([]schema.DatasetName, 0, len(names))
	for _, n := range names {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

// Snapshot is the immutable result of a successful load.
type Snapshot struct {
	names    []schema.DatasetName
	data     map[schema.DatasetName]schema.Dataset
	duration time.Duration
}

// NewSnapshot builds a snapshot from already loaded datasets, keeping the given order.
func NewSnapshot(datasets map[schema.DatasetName]schema.Dataset, order []schema.DatasetName) *Snapshot {
	data := make(map[schema.DatasetName]schema.Dataset, len(datasets))
	for name, ds := range datasets {
		data[name] = ds.Clone()
	}
	return &Snapshot{names: slices.Clone(order), data: data}
}

// Names returns the loaded dataset names in request order.
func (s *Snapshot) Names() []schema.DatasetName {
	return slices.Clone(s.names)
}

// Has reports whether the dataset was loaded.
func (s *Snapshot) Has(name schema.DatasetName) bool {
	_, ok := s.data[name]
	return ok
}

// Dataset returns a copy of a loaded dataset.
func (s *Snapshot) Dataset(name schema.DatasetName) (schema.Dataset, bool) {
	ds, ok := s.data[name]
	if !ok {
		return nil, false
	}
	return ds.Clone(), true
}

// Duration is how long the load took.
func (s *Snapshot) Duration() time.Duration {
	return s.duration
}

// dataset returns the shared dataset for read-only use inside this package.
func (s *Snapshot) dataset(name schema.DatasetName) (schema.Dataset, error) {
	ds, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("dataset %s was not loaded", name)
	}
	return ds, nil
}
