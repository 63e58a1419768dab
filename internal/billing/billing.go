// Package billing computes volumetric charges against a tiered rate
// schedule. All functions are pure and O(number of tiers).
package billing

import (
	"math"

	"water-rates/internal/model"
)

// MarginalPrice returns the rate applied to the next unit of usage: the
// price of the tier whose [lower, upper) interval contains usage. Usage at
// or beyond every finite upper bound lands in the open-ended top tier.
func MarginalPrice(usage float64, ts model.TierSet) float64 {
	if len(ts.Tiers) == 0 {
		return 0
	}
	for _, t := range ts.Tiers {
		if t.Contains(usage) {
			return t.Price
		}
	}
	return ts.Tiers[len(ts.Tiers)-1].Price
}

// VolumetricCharge is the piecewise-linear progressive bill for usage:
// each tier contributes price times the slice of usage it covers.
// Continuous and non-decreasing in usage.
func VolumetricCharge(usage float64, ts model.TierSet) float64 {
	if usage <= 0 {
		return 0
	}
	total := 0.0
	for _, t := range ts.Tiers {
		span := math.Min(usage, t.Upper) - t.Lower
		if span <= 0 {
			break
		}
		total += t.Price * span
		if usage <= t.Upper {
			break
		}
	}
	return total
}

// AveragePrice is the effective blended rate: volumetric charge over
// usage. Zero usage pays no volumetric charge, so the average is 0.
func AveragePrice(usage float64, ts model.TierSet) float64 {
	if usage <= 0 {
		return 0
	}
	return VolumetricCharge(usage, ts) / usage
}

// Bill is the full charge for one connection: base fee plus volumetric.
func Bill(usage float64, ts model.TierSet, baseFee float64) float64 {
	return baseFee + VolumetricCharge(usage, ts)
}
