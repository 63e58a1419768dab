package analysis

import "sort"

// DecileImpact attributes the system-wide usage change to one decile of
// customers ranked by baseline usage. The ten DeltaMG values sum to the
// total usage delta between the two runs.
type DecileImpact struct {
	// Decile is 1 (lightest baseline users) through 10 (heaviest).
	Decile int
	Count  int
	// BaselineMeanUsage is the decile's mean baseline usage, kgal.
	BaselineMeanUsage float64
	// DeltaMG is the decile's contribution to the system usage change,
	// millions of gallons.
	DeltaMG float64
	// ShareOfDelta is DeltaMG over the total delta; 0 when the total is 0.
	ShareOfDelta float64
}

// ComputeDecileImpacts answers "which usage segment drives the aggregate
// change" between a baseline and a proposal run over the same synthetic
// population. Individuals are ranked by baseline usage into ten
// equal-count groups; each group's usage delta is scaled to system terms
// by connections/sampleSize/1000.
func ComputeDecileImpacts(baselineUsages, proposalUsages []float64, connections int) []DecileImpact {
	n := len(baselineUsages)
	if n == 0 || len(proposalUsages) != n {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return baselineUsages[order[a]] < baselineUsages[order[b]]
	})

	scale := float64(connections) / float64(n) / 1000
	out := make([]DecileImpact, 10)
	total := 0.0
	for d := 0; d < 10; d++ {
		lo := d * n / 10
		hi := (d + 1) * n / 10
		imp := DecileImpact{Decile: d + 1, Count: hi - lo}
		baseSum := 0.0
		for _, idx := range order[lo:hi] {
			baseSum += baselineUsages[idx]
			imp.DeltaMG += (proposalUsages[idx] - baselineUsages[idx]) * scale
		}
		if imp.Count > 0 {
			imp.BaselineMeanUsage = baseSum / float64(imp.Count)
		}
		total += imp.DeltaMG
		out[d] = imp
	}
	if total != 0 {
		for i := range out {
			out[i].ShareOfDelta = out[i].DeltaMG / total
		}
	}
	return out
}
