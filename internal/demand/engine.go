package demand

import (
	"water-rates/internal/billing"
	"water-rates/internal/model"
)

// DefaultTypicalUsage seeds a synthetic baseline anchor when the caller
// hasn't frozen one, kgal per connection.
const DefaultTypicalUsage = 7.0

// boundEps decides whether a solved usage counts as pinned to a clamp
// bound for warning purposes.
const boundEps = 1e-9

// Evaluate runs one single-point scenario: validate the tier schedule,
// solve the usage equilibrium, and roll up system totals. It never fails;
// invalid inputs degrade to the fallback schedule or clamped scalars, with
// advisories in the result's Warnings.
func Evaluate(in model.DemandInputs) model.DemandResult {
	in = in.Sanitized()
	v := model.ValidateTiers(in.Tiers)

	anchor := in.Baseline
	if anchor == nil {
		a := SynthesizeBaseline(v.Tiers, in.BaseFee, in.Alpha, in.BillSalience)
		anchor = &a
	}

	sol := SolveEquilibrium(SolveParams{
		Tiers:         v.Tiers,
		Elasticity:    in.Elasticity,
		BaselineUsage: anchor.Usage,
		BaselinePrice: anchor.PerceivedPrice,
		BaseFee:       in.BaseFee,
		Alpha:         in.Alpha,
		BillSalience:  in.BillSalience,
	})

	conns := float64(in.Connections)
	res := model.DemandResult{
		UsagePerConnection: sol.Usage,
		MarginalPrice:      sol.MarginalPrice,
		AveragePrice:       sol.AveragePrice,
		PerceivedPrice:     sol.PerceivedPrice,
		BillPerConnection:  sol.Bill,
		UsageVolumeMG:      conns * sol.Usage / 1000,
		Revenue:            conns * (in.BaseFee + billing.VolumetricCharge(sol.Usage, v.Tiers)),
		Tiers:              v.Tiers,
		TiersValid:         v.Valid,
		ValidationMessage:  v.Message,
	}
	res.Warnings = BoundaryWarnings(in.Elasticity, sol.Usage, sol.Usage)
	return res
}

// SynthesizeBaseline builds an anchor from the default typical usage and
// the perceived price at that usage under the given schedule.
func SynthesizeBaseline(ts model.TierSet, baseFee, alpha, billSalience float64) model.BaselineAnchor {
	price := PerceivedPrice(DefaultTypicalUsage, ts, baseFee, alpha, billSalience)
	return FreezeBaseline(DefaultTypicalUsage, price)
}

// BoundaryWarnings flags the structural modeling concerns: a wrong-signed
// elasticity, and usage pinned at either clamp bound. lo/hi are the usage
// statistics to test against the bounds (equal in single-point mode; P5
// and P95 in population mode).
func BoundaryWarnings(elasticity, lo, hi float64) []string {
	var warnings []string
	if elasticity >= 0 {
		warnings = append(warnings, model.WarnElasticitySign)
	}
	if lo <= MinUsage+boundEps {
		warnings = append(warnings, model.WarnUsageFloor)
	}
	if hi >= MaxUsage-boundEps {
		warnings = append(warnings, model.WarnUsageCeiling)
	}
	return warnings
}
