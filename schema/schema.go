// Package schema has the models shared by every part of fundboard.
package schema

import "slices"

// Record is one row of a dataset keyed by column name.
// Values are JSON scalars (float64, string, bool, nil) or []any for multi-value cells.
type Record map[string]any

// Dataset is an ordered sequence of records. Order is significant.
type Dataset []Record

// Clone returns a deep copy of the dataset so callers can't mutate a snapshot.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	for i, rec := range d {
		out[i] = rec.Clone()
	}
	return out
}

// Columns returns the column names in first-seen order, sorted within each record.
func (d Dataset) Columns() []string {
	var cols []string
	seen := make(map[string]struct{})
	for _, rec := range d {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	return cols
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		if list, ok := v.([]any); ok {
			v = slices.Clone(list)
		}
		out[k] = v
	}
	return out
}

// Histogram is the binned distribution of a numeric column.
type Histogram struct {
	Column   string   `json:"column"`
	BinCount int      `json:"bin_count"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	Width    float64  `json:"width"`
	Labels   []string `json:"labels"`
	Counts   []int    `json:"counts"`
	Total    int      `json:"total"`
}

// AlignedSeries pairs a reference key order with values looked up from another dataset.
type AlignedSeries struct {
	Keys   []string  `json:"keys"`
	Values []float64 `json:"values"`
}

// Len returns the number of aligned points.
func (a AlignedSeries) Len() int {
	return len(a.Keys)
}

// ColorBucket is a named display color.
type ColorBucket struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Color buckets used for NDC status points.
var (
	GreenBucket  = ColorBucket{Name: "green", Hex: "#2ecc40"}
	YellowBucket = ColorBucket{Name: "yellow", Hex: "#ffe066"}
	OrangeBucket = ColorBucket{Name: "orange", Hex: "#ffa502"}
	RedBucket    = ColorBucket{Name: "red", Hex: "#ff4136"}
	GrayBucket   = ColorBucket{Name: "gray", Hex: "#888888"}
)

// BarSeries is the chart-ready shape every renderer consumes.
// Colors is either empty or the same length as Labels.
type BarSeries struct {
	Title      string    `json:"title"`
	SeriesName string    `json:"series"`
	Labels     []string  `json:"labels"`
	Values     []float64 `json:"values"`
	Colors     []string  `json:"colors,omitempty"`
	YMin       *float64  `json:"y_min,omitempty"`
	YMax       *float64  `json:"y_max,omitempty"`
}

// Len returns the number of bars.
func (b BarSeries) Len() int {
	return len(b.Labels)
}

// View is a titled chart or table with its presentation state.
type View struct {
	Name   string     `json:"name"`
	Status ViewStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
	Bars   *BarSeries `json:"bars,omitempty"`
	Hist   *Histogram `json:"histogram,omitempty"`
	Table  Dataset    `json:"table,omitempty"`
}

// DatasetInfo describes a registry entry.
type DatasetInfo struct {
	Name        DatasetName `json:"name"`
	Path        string      `json:"path"`
	Description string      `json:"description"`
}

// ListDatasets returns every known dataset sorted by name.
func ListDatasets() []DatasetInfo {
	out := make([]DatasetInfo, 0, len(KnownDatasets))
	for name, desc := range KnownDatasets {
		out = append(out, DatasetInfo{Name: name, Path: name.Path(), Description: desc})
	}
	slices.SortFunc(out, func(a, b DatasetInfo) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out
}
