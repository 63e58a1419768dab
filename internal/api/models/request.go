package models

import (
	"math"

	"water-rates/internal/model"
)

// TierPayload is one price band as sent over the wire. A null/omitted
// upper marks the open-ended top tier.
type TierPayload struct {
	Lower float64  `json:"lower"`
	Upper *float64 `json:"upper,omitempty"`
	Price float64  `json:"price"`
}

// BaselinePayload is a frozen baseline anchor.
type BaselinePayload struct {
	Usage          float64 `json:"usage"`
	PerceivedPrice float64 `json:"perceived_price"`
}

// ValidateTiersRequest is the body for POST /api/v1/tiers/validate.
type ValidateTiersRequest struct {
	Tiers []TierPayload `json:"tiers" binding:"required"`
}

// DemandRequest is the body for POST /api/v1/demand.
type DemandRequest struct {
	Connections  int              `json:"connections"`
	Elasticity   float64          `json:"elasticity"`
	BaseFee      float64          `json:"base_fee"`
	Alpha        float64          `json:"alpha,omitempty"`
	BillSalience float64          `json:"bill_salience,omitempty"`
	Tiers        []TierPayload    `json:"tiers" binding:"required"`
	Baseline     *BaselinePayload `json:"baseline,omitempty"`
}

// SimulateRequest is the body for POST /api/v1/simulate.
type SimulateRequest struct {
	DemandRequest
	UsageSigma float64 `json:"usage_sigma,omitempty"`
	SampleSize int     `json:"sample_size,omitempty"` // default 3000
	// Seed pins the synthetic population for reproducible runs; omitted
	// means OS entropy.
	Seed *uint64 `json:"seed,omitempty"`
	// IncludePopulation returns the per-individual samples (large).
	IncludePopulation bool `json:"include_population,omitempty"`
}

// CompareRequest evaluates two rate scenarios over the SAME synthetic
// population and attributes the usage change by baseline-usage decile.
type CompareRequest struct {
	Baseline   DemandRequest `json:"baseline" binding:"required"`
	Proposal   DemandRequest `json:"proposal" binding:"required"`
	UsageSigma float64       `json:"usage_sigma,omitempty"`
	SampleSize int           `json:"sample_size,omitempty"`
	Seed       *uint64       `json:"seed,omitempty"`
}

// DecilesRequest is the body for POST /api/v1/analytics/deciles.
type DecilesRequest struct {
	BaselineUsages []float64 `json:"baseline_usages" binding:"required"`
	ProposalUsages []float64 `json:"proposal_usages" binding:"required"`
	Connections    int       `json:"connections"`
}

// HistogramRequest is the body for POST /api/v1/analytics/histogram.
type HistogramRequest struct {
	Usages   []float64 `json:"usages" binding:"required"`
	BinWidth float64   `json:"bin_width"`
	MaxUsage float64   `json:"max_usage"`
}

// OccupancyRequest is the body for POST /api/v1/analytics/occupancy.
type OccupancyRequest struct {
	Tiers  []TierPayload `json:"tiers" binding:"required"`
	Usages []float64     `json:"usages" binding:"required"`
}

// ToModelInputs maps a demand request onto engine inputs.
func (r DemandRequest) ToModelInputs() model.DemandInputs {
	in := model.DemandInputs{
		Connections:  r.Connections,
		Elasticity:   r.Elasticity,
		BaseFee:      r.BaseFee,
		Alpha:        r.Alpha,
		BillSalience: r.BillSalience,
		Tiers:        TiersToModel(r.Tiers),
	}
	if r.Baseline != nil {
		in.Baseline = &model.BaselineAnchor{
			Usage:          r.Baseline.Usage,
			PerceivedPrice: r.Baseline.PerceivedPrice,
		}
	}
	return in
}

// TiersToModel converts wire tiers to model tiers (null upper -> +Inf).
func TiersToModel(tiers []TierPayload) []model.Tier {
	out := make([]model.Tier, len(tiers))
	for i, t := range tiers {
		upper := math.Inf(1)
		if t.Upper != nil {
			upper = *t.Upper
		}
		out[i] = model.Tier{Lower: t.Lower, Upper: upper, Price: t.Price}
	}
	return out
}
