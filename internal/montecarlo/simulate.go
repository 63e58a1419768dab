package montecarlo

import (
	"math"
	"sort"

	"water-rates/internal/analysis"
	"water-rates/internal/billing"
	"water-rates/internal/demand"
	"water-rates/internal/model"
)

// Population heterogeneity shape. Usage spread is user-controlled via
// Params.UsageSigma; elasticity diversity around the chosen mean is fixed.
const (
	ElasticitySigma = 0.05
	ElasticityMin   = -0.6
	ElasticityMax   = 0.0
	MaxUsageSigma   = 2.0
)

// Params configures one Monte Carlo run. Draws should come from a single
// GenerateDraws call shared across every run being compared.
type Params struct {
	Inputs model.DemandInputs
	Draws  Draws
	// UsageSigma is the log-normal spread of baseline usage across the
	// population ("usage variety"). 0 collapses everyone onto the anchor.
	UsageSigma float64
}

// Population holds the per-individual samples behind a simulation, in draw
// order so two runs over the same draws pair up individual-by-individual.
type Population struct {
	BaselineUsages []float64
	Usages         []float64
	Bills          []float64
	Elasticities   []float64
}

// Simulation bundles the aggregate result with the population that
// produced it; the analytics aggregators consume the population arrays.
type Simulation struct {
	Result     model.DemandResult
	Population Population
}

// Run evaluates the demand equilibrium for every synthetic individual and
// aggregates. Per-individual baseline usage is log-normal around the
// anchor, mean-preserving via the -sigma^2/2 correction;
// per-individual elasticity is normal around the scenario mean, clamped to
// [ElasticityMin, ElasticityMax]. The tier schedule, base fee, and
// salience are shared. Medians and 5th/95th percentiles replace the
// single-point estimate; totals weight each individual by connections/S.
func Run(p Params) Simulation {
	in := p.Inputs.Sanitized()
	v := model.ValidateTiers(in.Tiers)

	draws := p.Draws
	if draws.Len() == 0 {
		draws = GenerateDraws(DefaultSampleSize)
	}
	size := draws.Len()

	sigma := sanitizeSigma(p.UsageSigma)

	anchor := in.Baseline
	if anchor == nil {
		a := demand.SynthesizeBaseline(v.Tiers, in.BaseFee, in.Alpha, in.BillSalience)
		anchor = &a
	}

	pop := Population{
		BaselineUsages: make([]float64, size),
		Usages:         make([]float64, size),
		Bills:          make([]float64, size),
		Elasticities:   make([]float64, size),
	}

	// Log-normal baseline shifted by -sigma^2/2 so the population mean
	// stays at the anchor usage.
	logMean := math.Log(math.Max(anchor.Usage, demand.MinUsage)) - 0.5*sigma*sigma

	for i := 0; i < size; i++ {
		q0 := clamp(math.Exp(logMean+sigma*draws.Usage[i]), demand.MinUsage, demand.MaxUsage)
		eps := clamp(in.Elasticity+ElasticitySigma*draws.Elasticity[i], ElasticityMin, ElasticityMax)

		sol := demand.SolveEquilibrium(demand.SolveParams{
			Tiers:         v.Tiers,
			Elasticity:    eps,
			BaselineUsage: q0,
			BaselinePrice: anchor.PerceivedPrice,
			BaseFee:       in.BaseFee,
			Alpha:         in.Alpha,
			BillSalience:  in.BillSalience,
		})

		pop.BaselineUsages[i] = q0
		pop.Usages[i] = sol.Usage
		pop.Bills[i] = sol.Bill
		pop.Elasticities[i] = eps
	}

	weight := float64(in.Connections) / float64(size)
	totalUsage := 0.0
	totalBill := 0.0
	for i := 0; i < size; i++ {
		totalUsage += pop.Usages[i]
		totalBill += pop.Bills[i]
	}

	usageSorted := append([]float64(nil), pop.Usages...)
	sort.Float64s(usageSorted)
	billSorted := append([]float64(nil), pop.Bills...)
	sort.Float64s(billSorted)

	median := analysis.PercentileSorted(usageSorted, 0.5)
	usageP5 := analysis.PercentileSorted(usageSorted, 0.05)
	usageP95 := analysis.PercentileSorted(usageSorted, 0.95)
	billP5 := analysis.PercentileSorted(billSorted, 0.05)
	billP95 := analysis.PercentileSorted(billSorted, 0.95)

	res := model.DemandResult{
		UsagePerConnection: median,
		UsageP5:            &usageP5,
		UsageP95:           &usageP95,
		MarginalPrice:      billing.MarginalPrice(median, v.Tiers),
		AveragePrice:       billing.AveragePrice(median, v.Tiers),
		PerceivedPrice:     demand.PerceivedPrice(median, v.Tiers, in.BaseFee, in.Alpha, in.BillSalience),
		BillPerConnection:  analysis.PercentileSorted(billSorted, 0.5),
		BillP5:             &billP5,
		BillP95:            &billP95,
		UsageVolumeMG:      weight * totalUsage / 1000,
		Revenue:            weight * totalBill,
		Tiers:              v.Tiers,
		TiersValid:         v.Valid,
		ValidationMessage:  v.Message,
	}
	res.Warnings = demand.BoundaryWarnings(in.Elasticity, usageP5, usageP95)

	return Simulation{Result: res, Population: pop}
}

func sanitizeSigma(sigma float64) float64 {
	if math.IsNaN(sigma) || sigma < 0 {
		return 0
	}
	if sigma > MaxUsageSigma {
		return MaxUsageSigma
	}
	return sigma
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
