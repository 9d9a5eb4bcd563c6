// Package agg has aggregation logic for tabular dashboard datasets.
package agg

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cfudash/fundboard/schema"
)

// ToNumber coerces a record value to a finite float64.
// Numeric strings are parsed after trimming; nil, bools, empty strings,
// NaN and infinities are reported as non-numeric.
func ToNumber(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int32:
		f = float64(val)
	case int64:
		f = float64(val)
	case uint64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case []byte:
		return ToNumber(string(val))
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Values extracts every numeric value of a column in record order.
// Records missing the column or holding non-numeric values are skipped.
func Values(ds schema.Dataset, column string) []float64 {
	out := make([]float64, 0, len(ds))
	for _, rec := range ds {
		if f, ok := ToNumber(rec[column]); ok {
			out = append(out, f)
		}
	}
	return out
}

// KeyString renders a value as a join key.
func KeyString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

// Keys extracts a column as a reference key sequence, keeping record order.
// Records with no value for the column contribute an empty key.
func Keys(ds schema.Dataset, column string) []string {
	out := make([]string, len(ds))
	for i, rec := range ds {
		out[i] = KeyString(rec[column])
	}
	return out
}
