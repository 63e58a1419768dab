// Package analysis derives distributional summaries from population
// usage samples: percentiles, histograms, tier occupancy, and decile
// impact attribution. Pure transforms; inputs are never mutated.
package analysis

import (
	"math"
	"sort"
)

// PercentileSorted returns the q-quantile (q in [0,1]) of an ascending
// slice using linear interpolation between order statistics.
func PercentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Percentile sorts a copy of xs and returns its q-quantile.
func Percentile(xs []float64, q float64) float64 {
	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	return PercentileSorted(cp, q)
}
