package analysis

import (
	"math"
	"testing"

	"water-rates/internal/model"
)

func TestPercentileSorted(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	cases := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 2},
		{0.5, 3},
		{0.625, 3.5}, // interpolates between order statistics
		{1, 5},
	}
	for _, tc := range cases {
		if got := PercentileSorted(xs, tc.q); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("percentile(%v) = %v, want %v", tc.q, got, tc.want)
		}
	}
	if got := PercentileSorted(nil, 0.5); got != 0 {
		t.Errorf("empty input should yield 0, got %v", got)
	}
}

func TestDecileImpactConservation(t *testing.T) {
	n := 3000
	baseline := make([]float64, n)
	proposal := make([]float64, n)
	for i := 0; i < n; i++ {
		baseline[i] = 2 + 20*float64(i%97)/97.0
		proposal[i] = baseline[i] * 0.93
	}
	connections := 1000

	impacts := ComputeDecileImpacts(baseline, proposal, connections)
	if len(impacts) != 10 {
		t.Fatalf("expected 10 deciles, got %d", len(impacts))
	}

	wantTotal := 0.0
	for i := 0; i < n; i++ {
		wantTotal += (proposal[i] - baseline[i]) * float64(connections) / float64(n) / 1000
	}
	gotTotal := 0.0
	shareTotal := 0.0
	count := 0
	for _, d := range impacts {
		gotTotal += d.DeltaMG
		shareTotal += d.ShareOfDelta
		count += d.Count
	}
	if math.Abs(gotTotal-wantTotal) > 1e-9 {
		t.Errorf("decile deltas sum %v, want total delta %v", gotTotal, wantTotal)
	}
	if math.Abs(shareTotal-1) > 1e-9 {
		t.Errorf("shares sum to %v, want 1", shareTotal)
	}
	if count != n {
		t.Errorf("decile counts sum to %d, want %d", count, n)
	}
}

func TestDecileImpactOrdering(t *testing.T) {
	// Heaviest baseline users shrink the most in absolute terms under a
	// proportional cut, so decile 10 must carry the largest magnitude.
	baseline := make([]float64, 100)
	proposal := make([]float64, 100)
	for i := range baseline {
		baseline[i] = float64(i + 1)
		proposal[i] = baseline[i] * 0.9
	}
	impacts := ComputeDecileImpacts(baseline, proposal, 1000)
	first := math.Abs(impacts[0].DeltaMG)
	last := math.Abs(impacts[9].DeltaMG)
	if last <= first {
		t.Fatalf("decile 10 |delta| %v should exceed decile 1 |delta| %v", last, first)
	}
	if impacts[0].BaselineMeanUsage >= impacts[9].BaselineMeanUsage {
		t.Error("deciles should be ranked by baseline usage")
	}
}

func TestDecileImpactMismatchedInputs(t *testing.T) {
	if got := ComputeDecileImpacts([]float64{1, 2}, []float64{1}, 10); got != nil {
		t.Fatalf("mismatched lengths should yield nil, got %v", got)
	}
}

func TestBuildUsageHistogram(t *testing.T) {
	usages := []float64{0.5, 1.5, 1.6, 2.5, 9.0, 25.0}
	bins := BuildUsageHistogram(usages, 1.0, 10.0)
	if len(bins) != 11 {
		t.Fatalf("expected 10 bins plus overflow, got %d", len(bins))
	}

	popTotal, volTotal := 0.0, 0.0
	for _, b := range bins {
		popTotal += b.PopulationShare
		volTotal += b.VolumeShare
	}
	if math.Abs(popTotal-1) > 1e-9 {
		t.Errorf("population shares sum to %v", popTotal)
	}
	if math.Abs(volTotal-1) > 1e-9 {
		t.Errorf("volume shares sum to %v", volTotal)
	}

	if bins[1].Count != 2 {
		t.Errorf("bin [1,2) should hold 2 samples, got %d", bins[1].Count)
	}
	over := bins[10]
	if over.Count != 1 || !math.IsInf(over.Upper, 1) {
		t.Errorf("overflow bin should be open-ended with 1 sample: %+v", over)
	}
	// 25 of 40.1 total volume lands in the overflow bin.
	if math.Abs(over.VolumeShare-25.0/40.1) > 1e-9 {
		t.Errorf("overflow volume share %v", over.VolumeShare)
	}

	if got := BuildUsageHistogram(nil, 1, 10); got != nil {
		t.Errorf("empty input should yield nil, got %v", got)
	}
	if got := BuildUsageHistogram(usages, 0, 10); got != nil {
		t.Errorf("zero bin width should yield nil, got %v", got)
	}
}

func TestComputeTierOccupancy(t *testing.T) {
	v := model.ValidateTiers([]model.Tier{
		{Lower: 0, Upper: 5, Price: 3.50},
		{Lower: 5, Upper: 10, Price: 4.25},
		{Lower: 10, Upper: math.Inf(1), Price: 5.00},
	})
	usages := []float64{1, 4.9, 5, 7, 12, 50}
	occ := ComputeTierOccupancy(v.Tiers, usages)
	if len(occ) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(occ))
	}
	wantCounts := []int{2, 2, 2}
	shareSum := 0.0
	for i, o := range occ {
		if o.Count != wantCounts[i] {
			t.Errorf("tier %d count %d, want %d", i+1, o.Count, wantCounts[i])
		}
		shareSum += o.Share
	}
	if math.Abs(shareSum-1) > 1e-9 {
		t.Errorf("shares sum to %v", shareSum)
	}
}

func TestElasticityProfileStride(t *testing.T) {
	xs := make([]float64, 1000)
	for i := range xs {
		xs[i] = float64(i)
	}
	prof := ElasticityProfile(xs, 100)
	if len(prof) != 100 {
		t.Fatalf("expected 100 points, got %d", len(prof))
	}
	// Stride-based: deterministic, evenly spaced, order-preserving.
	if prof[0] != 0 || prof[1] != 10 {
		t.Errorf("unexpected stride: %v, %v", prof[0], prof[1])
	}

	short := ElasticityProfile(xs[:50], 100)
	if len(short) != 50 {
		t.Errorf("small input should pass through, got %d points", len(short))
	}
	if got := ElasticityProfile(xs, 0); got != nil {
		t.Errorf("non-positive maxPoints should yield nil, got %v", got)
	}
}
