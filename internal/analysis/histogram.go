package analysis

import "math"

// HistogramBin is one fixed-width usage bucket. PopulationShare is the
// fraction of individuals whose usage lands in the bin; VolumeShare is the
// fraction of total usage volume they account for. The last bin is
// open-ended and absorbs everything at or above the cutoff.
type HistogramBin struct {
	Lower           float64
	Upper           float64
	Count           int
	PopulationShare float64
	VolumeShare     float64
}

// BuildUsageHistogram buckets usage samples into fixed-width bins up to
// maxUsage. Degenerate parameters (non-positive width or cutoff, empty
// input) yield an empty slice.
func BuildUsageHistogram(usages []float64, binWidth, maxUsage float64) []HistogramBin {
	if len(usages) == 0 || binWidth <= 0 || maxUsage <= 0 {
		return nil
	}
	nBins := int(maxUsage / binWidth)
	if float64(nBins)*binWidth < maxUsage {
		nBins++
	}
	// One extra open-ended bin for usage >= maxUsage.
	bins := make([]HistogramBin, nBins+1)
	for i := range bins {
		bins[i].Lower = float64(i) * binWidth
		bins[i].Upper = float64(i+1) * binWidth
	}
	bins[nBins].Lower = float64(nBins) * binWidth
	bins[nBins].Upper = math.Inf(1)

	volume := make([]float64, nBins+1)
	totalVolume := 0.0
	for _, u := range usages {
		idx := int(u / binWidth)
		if u < 0 {
			idx = 0
		}
		if idx > nBins {
			idx = nBins
		}
		bins[idx].Count++
		volume[idx] += u
		totalVolume += u
	}

	n := float64(len(usages))
	for i := range bins {
		bins[i].PopulationShare = float64(bins[i].Count) / n
		if totalVolume > 0 {
			bins[i].VolumeShare = volume[i] / totalVolume
		}
	}
	return bins
}
