package model

import "math"

// BaselineAnchor pins the elasticity response to a reference point: the
// usage customers exhibit today and the price signal they perceive at that
// usage. Capture it once (see demand.FreezeBaseline) and hold it fixed
// across scenario edits so usage changes are measured against current
// behavior rather than an arbitrary zero.
type BaselineAnchor struct {
	// Usage is reference per-connection usage, kgal.
	Usage float64
	// PerceivedPrice is the reference price signal, $/kgal.
	PerceivedPrice float64
}

// DemandInputs is one scenario's worth of inputs to the demand engine.
// Ephemeral: build a fresh value per evaluation.
type DemandInputs struct {
	// Connections is the number of billed accounts.
	Connections int
	// Elasticity is the price elasticity of demand; expected negative.
	Elasticity float64
	// BaseFee is the fixed monthly charge, $.
	BaseFee float64
	// Tiers is the raw rate schedule; the engine validates it.
	Tiers []Tier
	// Baseline anchors the elasticity response. When nil the engine
	// synthesizes one from the default typical usage.
	Baseline *BaselineAnchor
	// Alpha weights marginal vs average price in the perceived signal.
	// Zero means "use the default" (0.7).
	Alpha float64
	// BillSalience scales how much the amortized base fee intrudes on the
	// usage decision. Clamped to [0, 0.2].
	BillSalience float64
}

// Input coercion bounds. Out-of-range or non-finite values are clamped
// rather than rejected; the engine never errors on bad scalars.
const (
	DefaultAlpha    = 0.7
	MaxBillSalience = 0.2
	MinElasticity   = -2.0
	MaxElasticity   = 0.5
)

// Sanitized returns a copy with every scalar coerced into its safe range.
// Non-finite values fall back to defaults so a stray NaN from an upstream
// form can't poison the solve.
func (in DemandInputs) Sanitized() DemandInputs {
	out := in
	if out.Connections < 0 {
		out.Connections = 0
	}
	out.Elasticity = finiteOr(out.Elasticity, 0)
	out.Elasticity = clampRange(out.Elasticity, MinElasticity, MaxElasticity)
	out.BaseFee = math.Max(0, finiteOr(out.BaseFee, 0))
	out.Alpha = finiteOr(out.Alpha, DefaultAlpha)
	if out.Alpha == 0 {
		out.Alpha = DefaultAlpha
	}
	out.Alpha = clampRange(out.Alpha, 0, 1)
	out.BillSalience = clampRange(finiteOr(out.BillSalience, 0), 0, MaxBillSalience)
	if out.Baseline != nil {
		b := *out.Baseline
		if !isFinite(b.Usage) || b.Usage <= 0 || !isFinite(b.PerceivedPrice) || b.PerceivedPrice <= 0 {
			out.Baseline = nil
		} else {
			out.Baseline = &b
		}
	}
	return out
}

func finiteOr(x, def float64) float64 {
	if !isFinite(x) {
		return def
	}
	return x
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func clampRange(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
