// Package algo has ranking and classification logic for dashboard views.
package algo

import (
	"github.com/cfudash/fundboard/core/agg"
	"github.com/cfudash/fundboard/schema"
)

// Bucket maps an NDC status score to its display color.
// Only the exact scores 1, 0.75, 0.5 and 0.25 have a color; everything else is gray.
func Bucket(score float64) schema.ColorBucket {
	switch score {
	case 1:
		return schema.GreenBucket
	case 0.75:
		return schema.YellowBucket
	case 0.5:
		return schema.OrangeBucket
	case 0.25:
		return schema.RedBucket
	default:
		return schema.GrayBucket
	}
}

// BucketOf classifies a raw record value; non-numeric values are gray.
func BucketOf(v any) schema.ColorBucket {
	f, ok := agg.ToNumber(v)
	if !ok {
		return schema.GrayBucket
	}
	return Bucket(f)
}

// Buckets classifies every value of a column in record order.
func Buckets(ds schema.Dataset, column string) []schema.ColorBucket {
	out := make([]schema.ColorBucket, len(ds))
	for i, rec := range ds {
		out[i] = BucketOf(rec[column])
	}
	return out
}
