package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"water-rates/internal/api/models"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	demand := NewDemandHandler()
	simulate := NewSimulateHandler()
	analytics := NewAnalyticsHandler()
	api := r.Group("/api/v1")
	api.POST("/tiers/validate", demand.ValidateTiers)
	api.POST("/demand", demand.RunDemand)
	api.POST("/simulate", simulate.RunSimulation)
	api.POST("/simulate/compare", simulate.CompareScenarios)
	api.POST("/analytics/deciles", analytics.DecileImpacts)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response: %v\n%s", err, w.Body.String())
		}
	}
	return w
}

func five() *float64 { v := 5.0; return &v }
func ten() *float64  { v := 10.0; return &v }

func exampleTiers() []models.TierPayload {
	return []models.TierPayload{
		{Lower: 0, Upper: five(), Price: 3.50},
		{Lower: 5, Upper: ten(), Price: 4.25},
		{Lower: 10, Price: 5.00},
	}
}

func TestValidateTiersEndpoint(t *testing.T) {
	r := newRouter()

	var resp models.ValidateTiersResponse
	w := doJSON(t, r, "/api/v1/tiers/validate", models.ValidateTiersRequest{Tiers: exampleTiers()}, &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if !resp.IsValid || len(resp.Tiers) != 3 {
		t.Fatalf("valid schedule rejected: %+v", resp)
	}
	if resp.Tiers[2].Upper != nil {
		t.Error("open-ended tier should serialize with no upper")
	}

	bad := models.ValidateTiersRequest{Tiers: []models.TierPayload{
		{Lower: 0, Upper: five(), Price: 2},
		{Lower: 7, Price: 3},
	}}
	w = doJSON(t, r, "/api/v1/tiers/validate", bad, &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("validation failures are 200s with a message, got %d", w.Code)
	}
	if resp.IsValid || resp.Message == "" || len(resp.Tiers) != 1 {
		t.Fatalf("expected single-tier fallback with message: %+v", resp)
	}
}

func TestDemandEndpoint(t *testing.T) {
	r := newRouter()
	req := models.DemandRequest{
		Connections:  1000,
		Elasticity:   -0.15,
		BaseFee:      25,
		Tiers:        exampleTiers(),
		Baseline:     &models.BaselinePayload{Usage: 7, PerceivedPrice: 4.16},
		BillSalience: 0.05,
	}
	var resp models.DemandResponse
	w := doJSON(t, r, "/api/v1/demand", req, &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if resp.UsagePerConnection <= 0 || resp.Revenue <= 0 {
		t.Fatalf("degenerate result: %+v", resp)
	}
	if resp.UsageP5 != nil {
		t.Error("single-point response must omit percentiles")
	}
}

func TestDemandEndpointRejectsMissingTiers(t *testing.T) {
	r := newRouter()
	w := doJSON(t, r, "/api/v1/demand", map[string]any{"connections": 10}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing tiers, got %d", w.Code)
	}
}

func TestSimulateEndpointSeeded(t *testing.T) {
	r := newRouter()
	seed := uint64(42)
	req := models.SimulateRequest{
		DemandRequest: models.DemandRequest{
			Connections:  1000,
			Elasticity:   -0.15,
			BaseFee:      25,
			Tiers:        exampleTiers(),
			Baseline:     &models.BaselinePayload{Usage: 7, PerceivedPrice: 4.16},
			BillSalience: 0.05,
		},
		UsageSigma: 0.35,
		SampleSize: 500,
		Seed:       &seed,
	}
	var a, b models.SimulateResponse
	if w := doJSON(t, r, "/api/v1/simulate", req, &a); w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, "/api/v1/simulate", req, &b); w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if a.Result.UsageVolumeMG != b.Result.UsageVolumeMG {
		t.Error("same seed must reproduce the same population result")
	}
	if a.Result.UsageP5 == nil || a.Result.UsageP95 == nil {
		t.Error("simulation response must carry percentile bounds")
	}
	if a.Population != nil {
		t.Error("population omitted unless requested")
	}

	req.IncludePopulation = true
	var c models.SimulateResponse
	doJSON(t, r, "/api/v1/simulate", req, &c)
	if c.Population == nil || len(c.Population.Usages) != 500 {
		t.Fatalf("expected 500 population samples, got %+v", c.Population)
	}
}

func TestCompareEndpointDecileConservation(t *testing.T) {
	r := newRouter()
	seed := uint64(7)
	proposal := exampleTiers()
	for i := range proposal {
		proposal[i].Price *= 1.2
	}
	base := models.DemandRequest{
		Connections:  1000,
		Elasticity:   -0.2,
		BaseFee:      25,
		Tiers:        exampleTiers(),
		Baseline:     &models.BaselinePayload{Usage: 7, PerceivedPrice: 4.16},
		BillSalience: 0.05,
	}
	prop := base
	prop.Tiers = proposal

	var resp models.CompareResponse
	w := doJSON(t, r, "/api/v1/simulate/compare", models.CompareRequest{
		Baseline:   base,
		Proposal:   prop,
		UsageSigma: 0.35,
		SampleSize: 1000,
		Seed:       &seed,
	}, &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if len(resp.Deciles) != 10 {
		t.Fatalf("expected 10 deciles, got %d", len(resp.Deciles))
	}
	total := 0.0
	for _, d := range resp.Deciles {
		total += d.DeltaMG
	}
	wantTotal := resp.Proposal.UsageVolumeMG - resp.Baseline.UsageVolumeMG
	if diff := total - wantTotal; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("decile deltas sum %v, want system delta %v", total, wantTotal)
	}
	if resp.Proposal.UsageVolumeMG >= resp.Baseline.UsageVolumeMG {
		t.Error("a 20% price increase should reduce system usage")
	}
}

func TestDecilesEndpointLengthMismatch(t *testing.T) {
	r := newRouter()
	w := doJSON(t, r, "/api/v1/analytics/deciles", models.DecilesRequest{
		BaselineUsages: []float64{1, 2, 3},
		ProposalUsages: []float64{1, 2},
		Connections:    10,
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for mismatched populations, got %d", w.Code)
	}
}
