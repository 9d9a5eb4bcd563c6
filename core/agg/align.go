package agg

import (
	"github.com/cfudash/fundboard/schema"
)

// AlignByKey builds the value of each reference key from a secondary dataset.
// The lookup map is built once; when a key repeats, the last record wins.
// Keys absent from the secondary dataset, or mapped to a non-numeric value, yield 0.
func AlignByKey(keys []string, secondary schema.Dataset, keyColumn, valueColumn string) schema.AlignedSeries {
	lookup := make(map[string]float64, len(secondary))
	for _, rec := range secondary {
		raw, ok := rec[keyColumn]
		if !ok || raw == nil {
			continue
		}
		f, _ := ToNumber(rec[valueColumn])
		lookup[KeyString(raw)] = f
	}

	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = lookup[k]
	}

	out := schema.AlignedSeries{Keys: make([]string, len(keys)), Values: values}
	copy(out.Keys, keys)
	return out
}

// LatestByEntity keeps the record with the highest year for each entity.
// Entities keep the order of their first appearance; on equal years the
// earlier record wins. Records without a numeric year are skipped.
func LatestByEntity(ds schema.Dataset, entityColumn, yearColumn string) schema.Dataset {
	index := make(map[string]int)
	years := make([]float64, 0)
	out := make(schema.Dataset, 0)
	for _, rec := range ds {
		year, ok := ToNumber(rec[yearColumn])
		if !ok {
			continue
		}
		entity := KeyString(rec[entityColumn])
		if entity == "" {
			continue
		}
		i, seen := index[entity]
		if !seen {
			index[entity] = len(out)
			out = append(out, rec)
			years = append(years, year)
			continue
		}
		if year > years[i] {
			out[i] = rec
			years[i] = year
		}
	}
	return out
}
