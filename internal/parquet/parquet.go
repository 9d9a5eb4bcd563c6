// Package parquet provides data structures and functions for exporting dashboard
// views to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"

	"github.com/cfudash/fundboard/core/agg"
	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/schema"
	"github.com/parquet-go/parquet-go"
)

// HistogramBin is one bin of a histogram.
type HistogramBin struct {
	// Column is the dataset column that was binned
	Column string `parquet:"column,snappy"`

	// BinIndex is the zero-based bin position
	BinIndex int32 `parquet:"bin_index,snappy"`

	// Label is the "{lo}-{hi}" display label
	Label string `parquet:"label,snappy"`

	// Lo is the inclusive lower bound of the bin
	Lo float64 `parquet:"lo,snappy"`

	// Hi is the upper bound of the bin
	Hi float64 `parquet:"hi,snappy"`

	// Count is the number of values that fell into the bin
	Count int32 `parquet:"count,snappy"`
}

// BarPoint is one bar of a chart-ready series.
type BarPoint struct {
	// Series names the chart the bar belongs to
	Series string `parquet:"series,snappy"`

	// Position is the zero-based bar order
	Position int32 `parquet:"position,snappy"`

	// Label is the category label on the x axis
	Label string `parquet:"label,snappy"`

	// Value is the bar height
	Value float64 `parquet:"value,snappy"`

	// Color is the bucket color as a hex string (nullable)
	Color *string `parquet:"color,optional,snappy"`
}

// Cell is one value of a dataset in long format.
type Cell struct {
	// Dataset is the registry name of the source dataset
	Dataset string `parquet:"dataset,snappy"`

	// RowIndex is the zero-based record position
	RowIndex int32 `parquet:"row_index,snappy"`

	// Column is the record key
	Column string `parquet:"column,snappy"`

	// Text is the display form of the value (nullable when the value is null)
	Text *string `parquet:"text,optional,snappy"`

	// Number is the numeric form of the value (nullable when not numeric)
	Number *float64 `parquet:"number,optional,snappy"`
}

// writeRows encodes rows with a schema inferred from the struct tags of T.
func writeRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteHistogram writes histogram bins to w.
func WriteHistogram(w io.Writer, data []HistogramBin) error {
	return writeRows(w, data)
}

// WriteBars writes bar points to w.
func WriteBars(w io.Writer, data []BarPoint) error {
	return writeRows(w, data)
}

// WriteCells writes dataset cells to w.
func WriteCells(w io.Writer, data []Cell) error {
	return writeRows(w, data)
}

// ConvertHistogram flattens a histogram into one row per bin.
func ConvertHistogram(hist *schema.Histogram) []HistogramBin {
	if hist == nil {
		return nil
	}
	result := make([]HistogramBin, len(hist.Counts))
	for i, count := range hist.Counts {
		lo := hist.Min + float64(i)*hist.Width
		result[i] = HistogramBin{
			Column:   hist.Column,
			BinIndex: int32(i),
			Label:    hist.Labels[i],
			Lo:       lo,
			Hi:       lo + hist.Width,
			Count:    int32(count),
		}
	}
	return result
}

// ConvertBars flattens a bar series into one row per bar.
func ConvertBars(bars schema.BarSeries) []BarPoint {
	result := make([]BarPoint, bars.Len())
	for i, label := range bars.Labels {
		point := BarPoint{
			Series:   bars.SeriesName,
			Position: int32(i),
			Label:    label,
			Value:    bars.Values[i],
		}
		if i < len(bars.Colors) {
			color := bars.Colors[i]
			point.Color = &color
		}
		result[i] = point
	}
	return result
}

// ConvertDataset flattens records into cells in column order.
// Missing keys produce no cell; null values keep both nullable fields empty.
func ConvertDataset(name string, ds schema.Dataset) []Cell {
	cols := ds.Columns()
	var result []Cell
	for i, rec := range ds {
		for _, col := range cols {
			v, ok := rec[col]
			if !ok {
				continue
			}
			cell := Cell{Dataset: name, RowIndex: int32(i), Column: col}
			if v != nil {
				text := contract.FormatCell(v, -1)
				cell.Text = &text
			}
			if n, ok := agg.ToNumber(v); ok {
				cell.Number = &n
			}
			result = append(result, cell)
		}
	}
	return result
}
