// Package demand solves for the usage level consistent with the price
// signal customers perceive under a tiered rate schedule. Everything here
// is pure; callers own all state.
package demand

import (
	"math"

	"water-rates/internal/billing"
	"water-rates/internal/model"
)

// Operating range of the model, kgal per connection. Solved usage is
// clamped here; landing on a bound is surfaced as a warning upstream.
const (
	MinUsage = 0.1
	MaxUsage = 60.0
)

// MinPrice floors the perceived price so the elasticity power law never
// divides by a vanishing signal.
const MinPrice = 0.01

// PerceivedPrice blends the marginal and average rates with a base-fee
// salience term into the single scalar customers react to:
//
//	alpha*marginal + (1-alpha)*average + salience*(baseFee/usage)
//
// alpha is how much the marginal rate dominates the blended rate actually
// paid; salience is how much the fixed fee, amortized per unit of current
// usage, intrudes on the decision.
func PerceivedPrice(usage float64, ts model.TierSet, baseFee, alpha, billSalience float64) float64 {
	marginal := billing.MarginalPrice(usage, ts)
	average := billing.AveragePrice(usage, ts)
	amortized := baseFee / math.Max(usage, MinUsage)
	return alpha*marginal + (1-alpha)*average + billSalience*amortized
}

// FreezeBaseline captures the reference point elasticity responses are
// measured against. Call it once when the user pins a baseline and reuse
// the anchor across scenario edits.
func FreezeBaseline(currentUsage, currentPrice float64) model.BaselineAnchor {
	return model.BaselineAnchor{
		Usage:          math.Max(currentUsage, MinUsage),
		PerceivedPrice: math.Max(currentPrice, MinPrice),
	}
}
