package models

import (
	"math"

	"github.com/shopspring/decimal"

	"water-rates/internal/analysis"
	"water-rates/internal/model"
	"water-rates/internal/montecarlo"
)

// ValidateTiersResponse mirrors model.TierValidation on the wire.
type ValidateTiersResponse struct {
	Tiers   []TierPayload `json:"tiers"`
	IsValid bool          `json:"is_valid"`
	Message string        `json:"message,omitempty"`
}

// DemandResponse is the wire form of a DemandResult. Currency fields are
// rounded to cents; usage fields keep full precision.
type DemandResponse struct {
	UsagePerConnection float64  `json:"usage_per_connection"`
	UsageP5            *float64 `json:"usage_p5,omitempty"`
	UsageP95           *float64 `json:"usage_p95,omitempty"`

	MarginalPrice  float64 `json:"marginal_price"`
	AveragePrice   float64 `json:"average_price"`
	PerceivedPrice float64 `json:"perceived_price"`

	BillPerConnection float64  `json:"bill_per_connection"`
	BillP5            *float64 `json:"bill_p5,omitempty"`
	BillP95           *float64 `json:"bill_p95,omitempty"`

	UsageVolumeMG float64 `json:"usage_volume_mg"`
	Revenue       float64 `json:"revenue"`

	Warnings []string `json:"warnings,omitempty"`

	Tiers             []TierPayload `json:"tiers"`
	TiersValid        bool          `json:"tiers_valid"`
	ValidationMessage string        `json:"validation_message,omitempty"`
}

// PopulationPayload carries per-individual samples when requested.
type PopulationPayload struct {
	BaselineUsages []float64 `json:"baseline_usages"`
	Usages         []float64 `json:"usages"`
	Bills          []float64 `json:"bills"`
	Elasticities   []float64 `json:"elasticities"`
}

// SimulateResponse is the body for POST /api/v1/simulate.
type SimulateResponse struct {
	Result     DemandResponse     `json:"result"`
	Population *PopulationPayload `json:"population,omitempty"`
}

// CompareResponse is the body for POST /api/v1/simulate/compare.
type CompareResponse struct {
	Baseline DemandResponse    `json:"baseline"`
	Proposal DemandResponse    `json:"proposal"`
	Deciles  []DecileImpactRow `json:"deciles"`
}

// DecileImpactRow is one decile's contribution to the usage change.
type DecileImpactRow struct {
	Decile            int     `json:"decile"`
	Count             int     `json:"count"`
	BaselineMeanUsage float64 `json:"baseline_mean_usage"`
	DeltaMG           float64 `json:"delta_mg"`
	ShareOfDelta      float64 `json:"share_of_delta"`
}

// HistogramBinRow is one usage bucket.
type HistogramBinRow struct {
	Lower           float64  `json:"lower"`
	Upper           *float64 `json:"upper,omitempty"` // nil for the open-ended top bin
	Count           int      `json:"count"`
	PopulationShare float64  `json:"population_share"`
	VolumeShare     float64  `json:"volume_share"`
}

// HistogramResponse is the body for POST /api/v1/analytics/histogram.
type HistogramResponse struct {
	Bins []HistogramBinRow `json:"bins"`
}

// OccupancyRow is one tier's population share.
type OccupancyRow struct {
	Tier  TierPayload `json:"tier"`
	Count int         `json:"count"`
	Share float64     `json:"share"`
}

// OccupancyResponse is the body for POST /api/v1/analytics/occupancy.
type OccupancyResponse struct {
	Occupancy []OccupancyRow `json:"occupancy"`
}

// DecilesResponse is the body for POST /api/v1/analytics/deciles.
type DecilesResponse struct {
	Deciles []DecileImpactRow `json:"deciles"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FromDemandResult converts an engine result for the wire.
func FromDemandResult(r model.DemandResult) DemandResponse {
	return DemandResponse{
		UsagePerConnection: r.UsagePerConnection,
		UsageP5:            r.UsageP5,
		UsageP95:           r.UsageP95,
		MarginalPrice:      r.MarginalPrice,
		AveragePrice:       r.AveragePrice,
		PerceivedPrice:     r.PerceivedPrice,
		BillPerConnection:  roundCents(r.BillPerConnection),
		BillP5:             roundCentsPtr(r.BillP5),
		BillP95:            roundCentsPtr(r.BillP95),
		UsageVolumeMG:      r.UsageVolumeMG,
		Revenue:            roundCents(r.Revenue),
		Warnings:           r.Warnings,
		Tiers:              TiersFromModel(r.Tiers),
		TiersValid:         r.TiersValid,
		ValidationMessage:  r.ValidationMessage,
	}
}

// FromPopulation converts population samples for the wire.
func FromPopulation(pop montecarlo.Population) *PopulationPayload {
	return &PopulationPayload{
		BaselineUsages: pop.BaselineUsages,
		Usages:         pop.Usages,
		Bills:          pop.Bills,
		Elasticities:   pop.Elasticities,
	}
}

// FromDecileImpacts converts decile records for the wire.
func FromDecileImpacts(impacts []analysis.DecileImpact) []DecileImpactRow {
	out := make([]DecileImpactRow, len(impacts))
	for i, d := range impacts {
		out[i] = DecileImpactRow{
			Decile:            d.Decile,
			Count:             d.Count,
			BaselineMeanUsage: d.BaselineMeanUsage,
			DeltaMG:           d.DeltaMG,
			ShareOfDelta:      d.ShareOfDelta,
		}
	}
	return out
}

// FromHistogram converts histogram bins for the wire.
func FromHistogram(bins []analysis.HistogramBin) []HistogramBinRow {
	out := make([]HistogramBinRow, len(bins))
	for i, b := range bins {
		row := HistogramBinRow{
			Lower:           b.Lower,
			Count:           b.Count,
			PopulationShare: b.PopulationShare,
			VolumeShare:     b.VolumeShare,
		}
		if !isInf(b.Upper) {
			upper := b.Upper
			row.Upper = &upper
		}
		out[i] = row
	}
	return out
}

// FromOccupancy converts tier occupancy for the wire.
func FromOccupancy(occ []analysis.TierOccupancy) []OccupancyRow {
	out := make([]OccupancyRow, len(occ))
	for i, o := range occ {
		out[i] = OccupancyRow{
			Tier:  tierFromModel(o.Tier),
			Count: o.Count,
			Share: o.Share,
		}
	}
	return out
}

// TiersFromModel converts a tier set for the wire (+Inf upper -> null).
func TiersFromModel(ts model.TierSet) []TierPayload {
	out := make([]TierPayload, len(ts.Tiers))
	for i, t := range ts.Tiers {
		out[i] = tierFromModel(t)
	}
	return out
}

func tierFromModel(t model.Tier) TierPayload {
	p := TierPayload{Lower: t.Lower, Price: t.Price}
	if !t.Unbounded() {
		upper := t.Upper
		p.Upper = &upper
	}
	return p
}

func roundCents(x float64) float64 {
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

func roundCentsPtr(x *float64) *float64 {
	if x == nil {
		return nil
	}
	v := roundCents(*x)
	return &v
}

func isInf(x float64) bool {
	return math.IsInf(x, 1)
}
