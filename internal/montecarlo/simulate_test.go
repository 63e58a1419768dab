package montecarlo

import (
	"math"
	"testing"

	"water-rates/internal/model"
)

func exampleInputs(connections int) model.DemandInputs {
	return model.DemandInputs{
		Connections: connections,
		Elasticity:  -0.15,
		BaseFee:     25,
		Tiers: []model.Tier{
			{Lower: 0, Upper: 5, Price: 3.50},
			{Lower: 5, Upper: 10, Price: 4.25},
			{Lower: 10, Upper: math.Inf(1), Price: 5.00},
		},
		Baseline:     &model.BaselineAnchor{Usage: 7, PerceivedPrice: 4.16},
		BillSalience: 0.05,
	}
}

func TestGenerateDrawsSeededReproducible(t *testing.T) {
	a := GenerateDrawsSeeded(500, 7)
	b := GenerateDrawsSeeded(500, 7)
	if len(a.Usage) != 500 || len(a.Elasticity) != 500 {
		t.Fatalf("wrong draw count: %d/%d", len(a.Usage), len(a.Elasticity))
	}
	for i := range a.Usage {
		if a.Usage[i] != b.Usage[i] || a.Elasticity[i] != b.Elasticity[i] {
			t.Fatalf("same seed diverged at %d", i)
		}
	}
	c := GenerateDrawsSeeded(500, 8)
	same := true
	for i := range a.Usage {
		if a.Usage[i] != c.Usage[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical draws")
	}
}

func TestDrawsRoughlyStandardNormal(t *testing.T) {
	d := GenerateDrawsSeeded(20000, 99)
	mean, m2 := 0.0, 0.0
	for _, z := range d.Usage {
		mean += z
	}
	mean /= float64(len(d.Usage))
	for _, z := range d.Usage {
		m2 += (z - mean) * (z - mean)
	}
	sd := math.Sqrt(m2 / float64(len(d.Usage)))
	if math.Abs(mean) > 0.05 {
		t.Errorf("mean %v too far from 0", mean)
	}
	if math.Abs(sd-1) > 0.05 {
		t.Errorf("stddev %v too far from 1", sd)
	}
}

func TestScaleInvarianceOfWeighting(t *testing.T) {
	draws := GenerateDrawsSeeded(2000, 42)
	one := Run(Params{Inputs: exampleInputs(1000), Draws: draws, UsageSigma: 0.35})
	two := Run(Params{Inputs: exampleInputs(2000), Draws: draws, UsageSigma: 0.35})

	if math.Abs(two.Result.UsageVolumeMG-2*one.Result.UsageVolumeMG) > 1e-9 {
		t.Errorf("usage volume not doubled: %v vs %v", two.Result.UsageVolumeMG, one.Result.UsageVolumeMG)
	}
	if math.Abs(two.Result.Revenue-2*one.Result.Revenue) > 1e-6 {
		t.Errorf("revenue not doubled: %v vs %v", two.Result.Revenue, one.Result.Revenue)
	}
	// Per-connection statistics are population properties and must not
	// move with connection count.
	if one.Result.UsagePerConnection != two.Result.UsagePerConnection {
		t.Errorf("median usage changed with connections: %v vs %v",
			one.Result.UsagePerConnection, two.Result.UsagePerConnection)
	}
}

func TestSameDrawsSameResult(t *testing.T) {
	draws := GenerateDrawsSeeded(1500, 11)
	a := Run(Params{Inputs: exampleInputs(1000), Draws: draws, UsageSigma: 0.35})
	b := Run(Params{Inputs: exampleInputs(1000), Draws: draws, UsageSigma: 0.35})
	if a.Result.UsageVolumeMG != b.Result.UsageVolumeMG || a.Result.Revenue != b.Result.Revenue {
		t.Fatal("identical draws and inputs must reproduce exactly")
	}
}

func TestZeroSigmaCollapsesPopulation(t *testing.T) {
	draws := GenerateDrawsSeeded(300, 3)
	in := exampleInputs(1000)
	sim := Run(Params{Inputs: in, Draws: draws, UsageSigma: 0})
	for i, q := range sim.Population.BaselineUsages {
		if math.Abs(q-7) > 1e-9 {
			t.Fatalf("sigma 0 should pin baseline usage to the anchor, got %v at %d", q, i)
		}
	}
}

func TestBaselineMeanPreserved(t *testing.T) {
	// The -sigma^2/2 shift keeps the population mean at the anchor even as
	// sigma spreads individuals multiplicatively.
	draws := GenerateDrawsSeeded(20000, 123)
	sim := Run(Params{Inputs: exampleInputs(1000), Draws: draws, UsageSigma: 0.4})
	sum := 0.0
	for _, q := range sim.Population.BaselineUsages {
		sum += q
	}
	mean := sum / float64(len(sim.Population.BaselineUsages))
	if math.Abs(mean-7) > 0.2 {
		t.Fatalf("mean baseline usage %v drifted from the 7 kgal anchor", mean)
	}
}

func TestElasticityDrawsClamped(t *testing.T) {
	draws := GenerateDrawsSeeded(5000, 55)
	sim := Run(Params{Inputs: exampleInputs(1000), Draws: draws, UsageSigma: 0.35})
	for i, e := range sim.Population.Elasticities {
		if e < ElasticityMin || e > ElasticityMax {
			t.Fatalf("elasticity %v at %d escaped [%v, %v]", e, i, ElasticityMin, ElasticityMax)
		}
	}
}

func TestPercentileFieldsPopulated(t *testing.T) {
	draws := GenerateDrawsSeeded(1000, 9)
	sim := Run(Params{Inputs: exampleInputs(1000), Draws: draws, UsageSigma: 0.35})
	r := sim.Result
	if r.UsageP5 == nil || r.UsageP95 == nil || r.BillP5 == nil || r.BillP95 == nil {
		t.Fatal("population mode must report percentile bounds")
	}
	if *r.UsageP5 > r.UsagePerConnection || r.UsagePerConnection > *r.UsageP95 {
		t.Errorf("median %v outside [P5 %v, P95 %v]", r.UsagePerConnection, *r.UsageP5, *r.UsageP95)
	}
}

func TestRunGeneratesDrawsWhenMissing(t *testing.T) {
	sim := Run(Params{Inputs: exampleInputs(100), UsageSigma: 0.2})
	if len(sim.Population.Usages) != DefaultSampleSize {
		t.Fatalf("expected default population of %d, got %d", DefaultSampleSize, len(sim.Population.Usages))
	}
}
