package model

// DemandResult is the read-only snapshot produced by one evaluation,
// single-point or Monte Carlo. In Monte Carlo mode UsagePerConnection and
// BillPerConnection are population medians and the P5/P95 fields are set;
// single-point mode leaves them nil rather than reporting a degenerate
// confidence interval.
type DemandResult struct {
	// UsagePerConnection is the solved usage, kgal per connection.
	UsagePerConnection float64
	UsageP5            *float64
	UsageP95           *float64

	// Prices evaluated at the solved usage, $/kgal.
	MarginalPrice  float64
	AveragePrice   float64
	PerceivedPrice float64

	// BillPerConnection is base fee plus volumetric charge, $.
	BillPerConnection float64
	BillP5            *float64
	BillP95           *float64

	// UsageVolumeMG is system-wide usage in millions of gallons.
	UsageVolumeMG float64
	// Revenue is system-wide revenue, $.
	Revenue float64

	// Warnings carries advisory modeling concerns; never a hard failure.
	Warnings []string

	// Tiers is the schedule actually billed against (post-fallback).
	Tiers TierSet
	// TiersValid and ValidationMessage thread the tier validation outcome
	// through to the caller.
	TiersValid        bool
	ValidationMessage string
}

// Warning messages surfaced in DemandResult.Warnings. Keep these stable;
// callers match on them for display.
const (
	WarnElasticitySign = "elasticity is non-negative; usage will not fall as price rises"
	WarnUsageFloor     = "solved usage sits at the model's lower bound; results outside calibrated range"
	WarnUsageCeiling   = "solved usage sits at the model's upper bound; results outside calibrated range"
)
