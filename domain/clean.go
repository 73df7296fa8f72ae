package domain

import "math"

// CleanFloat converts a possibly undefined statistic into an optional
// value: NaN and Inf become nil so the boundary serializes them as null.
func CleanFloat(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
