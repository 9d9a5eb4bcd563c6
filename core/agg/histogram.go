package agg

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/cfudash/fundboard/schema"
)

// ErrNoValues is returned when a column has nothing numeric to bin.
var ErrNoValues = errors.New("no values")

// Histogram bins the numeric values of a column into binCount equal-width bins.
// Non-numeric values are dropped silently. The width falls back to 1 when
// every value is equal, and the maximum lands in the last bin.
func Histogram(ds schema.Dataset, column string, binCount int) (*schema.Histogram, error) {
	if binCount <= 0 {
		return nil, fmt.Errorf("bin count must be positive (received %d)", binCount)
	}
	values := Values(ds, column)
	if len(values) == 0 {
		return nil, fmt.Errorf("column %q: %w", column, ErrNoValues)
	}
	return BinValues(values, binCount, column), nil
}

// BinValues bins a non-empty slice of finite values.
func BinValues(values []float64, binCount int, column string) *schema.Histogram {
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}

	// Dividing before subtracting keeps the span of extreme values finite.
	n := float64(binCount)
	width := maxV/n - minV/n
	switch {
	case width == 0:
		width = 1
	case math.IsInf(width, 1):
		width = math.MaxFloat64
	}

	counts := make([]int, binCount)
	for _, v := range values {
		pos := math.Floor(v/width - minV/width)
		idx := 0
		if pos > 0 {
			idx = int(math.Min(pos, n-1))
		}
		counts[idx]++
	}

	labels := make([]string, binCount)
	for i := range labels {
		lo := minV + float64(i)*width
		hi := lo + width
		labels[i] = formatBound(lo) + "-" + formatBound(hi)
	}

	return &schema.Histogram{
		Column:   column,
		BinCount: binCount,
		Min:      minV,
		Max:      maxV,
		Width:    width,
		Labels:   labels,
		Counts:   counts,
		Total:    len(values),
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
