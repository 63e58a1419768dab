package demand

import (
	"math"

	"water-rates/internal/billing"
	"water-rates/internal/model"
)

const (
	// SolveTol is the successive-iterate gap at which the fixed point is
	// accepted, kgal.
	SolveTol = 0.0005
	// MaxIterations bounds the fixed-point loop. The last iterate is
	// accepted regardless of convergence; this is a modeling
	// approximation, not a guaranteed root-find.
	MaxIterations = 18
)

// SolveParams are the per-solve inputs. BaselineUsage/BaselinePrice anchor
// the constant-elasticity response; Tiers/BaseFee/Alpha/BillSalience shape
// the perceived price.
type SolveParams struct {
	Tiers         model.TierSet
	Elasticity    float64
	BaselineUsage float64
	BaselinePrice float64
	BaseFee       float64
	Alpha         float64
	BillSalience  float64
}

// SolveResult is the equilibrium plus the prices and bill evaluated at it.
type SolveResult struct {
	Usage          float64
	MarginalPrice  float64
	AveragePrice   float64
	PerceivedPrice float64
	Bill           float64
	Iterations     int
	Converged      bool
}

// SolveEquilibrium finds usage q* satisfying
//
//	q* = q0 * (perceivedPrice(q*) / p0)^elasticity
//
// by fixed-point iteration from q0. Under tiered pricing the price a
// customer reacts to depends on their own usage, so price and usage are
// mutually determined; iterating the demand law to a fixed point captures
// that without a closed-form inversion. Iterates are clamped to
// [MinUsage, MaxUsage].
func SolveEquilibrium(p SolveParams) SolveResult {
	q0 := clampUsage(p.BaselineUsage)
	p0 := math.Max(p.BaselinePrice, MinPrice)

	q := q0
	iterations := 0
	converged := false
	for i := 0; i < MaxIterations; i++ {
		iterations = i + 1
		price := math.Max(PerceivedPrice(q, p.Tiers, p.BaseFee, p.Alpha, p.BillSalience), MinPrice)
		next := clampUsage(q0 * math.Pow(price/p0, p.Elasticity))
		if math.Abs(next-q) < SolveTol {
			q = next
			converged = true
			break
		}
		q = next
	}

	return SolveResult{
		Usage:          q,
		MarginalPrice:  billing.MarginalPrice(q, p.Tiers),
		AveragePrice:   billing.AveragePrice(q, p.Tiers),
		PerceivedPrice: PerceivedPrice(q, p.Tiers, p.BaseFee, p.Alpha, p.BillSalience),
		Bill:           billing.Bill(q, p.Tiers, p.BaseFee),
		Iterations:     iterations,
		Converged:      converged,
	}
}

func clampUsage(q float64) float64 {
	if math.IsNaN(q) {
		return MinUsage
	}
	if q < MinUsage {
		return MinUsage
	}
	if q > MaxUsage {
		return MaxUsage
	}
	return q
}
