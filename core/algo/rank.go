package algo

import (
	"cmp"
	"slices"

	"github.com/cfudash/fundboard/core/agg"
	"github.com/cfudash/fundboard/schema"
)

// SortByColumn returns a copy of the dataset stably sorted by a numeric column.
// Records whose value is not numeric keep their relative order after all numeric ones.
func SortByColumn(ds schema.Dataset, column string, ascending bool) schema.Dataset {
	out := slices.Clone(ds)
	slices.SortStableFunc(out, func(a, b schema.Record) int {
		av, aok := agg.ToNumber(a[column])
		bv, bok := agg.ToNumber(b[column])
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		if ascending {
			return cmp.Compare(av, bv)
		}
		return cmp.Compare(bv, av)
	})
	return out
}

// TopN returns the records with the largest numeric values of a column in
// descending order, truncated to limit. Non-numeric records are dropped.
// If limit is greater than the number of records, all of them are returned.
func TopN(ds schema.Dataset, column string, limit int) schema.Dataset {
	numeric := make(schema.Dataset, 0, len(ds))
	for _, rec := range ds {
		if _, ok := agg.ToNumber(rec[column]); ok {
			numeric = append(numeric, rec)
		}
	}
	sorted := SortByColumn(numeric, column, false)
	if limit >= 0 && len(sorted) > limit {
		return sorted[:limit]
	}
	return sorted
}
