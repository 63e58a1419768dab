package analysis

import (
	"water-rates/internal/model"
)

// TierOccupancy is the share of a population whose usage falls inside one
// tier's interval.
type TierOccupancy struct {
	Tier  model.Tier
	Count int
	Share float64
}

// ComputeTierOccupancy reports, per tier, the fraction of individuals
// whose usage lands in that tier's [lower, upper) band. Usage beyond every
// finite bound counts toward the open-ended top tier.
func ComputeTierOccupancy(ts model.TierSet, usages []float64) []TierOccupancy {
	out := make([]TierOccupancy, len(ts.Tiers))
	for i, t := range ts.Tiers {
		out[i].Tier = t
	}
	if len(usages) == 0 || len(out) == 0 {
		return out
	}
	last := len(out) - 1
	for _, u := range usages {
		placed := false
		for i, t := range ts.Tiers {
			if t.Contains(u) {
				out[i].Count++
				placed = true
				break
			}
		}
		if !placed {
			out[last].Count++
		}
	}
	n := float64(len(usages))
	for i := range out {
		out[i].Share = float64(out[i].Count) / n
	}
	return out
}
