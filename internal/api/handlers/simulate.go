package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"water-rates/internal/analysis"
	"water-rates/internal/api/models"
	"water-rates/internal/montecarlo"
)

// SimulateHandler handles Monte Carlo simulation requests.
type SimulateHandler struct{}

// NewSimulateHandler creates a new simulate handler
func NewSimulateHandler() *SimulateHandler {
	return &SimulateHandler{}
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	sim := montecarlo.Run(montecarlo.Params{
		Inputs:     req.ToModelInputs(),
		Draws:      drawsFor(req.SampleSize, req.Seed),
		UsageSigma: req.UsageSigma,
	})

	resp := models.SimulateResponse{Result: models.FromDemandResult(sim.Result)}
	if req.IncludePopulation {
		resp.Population = models.FromPopulation(sim.Population)
	}
	c.JSON(http.StatusOK, resp)
}

// CompareScenarios handles POST /api/v1/simulate/compare.
// Both scenarios run over the same frozen draws so the per-individual
// usage deltas, and the decile attribution built from them, compare the
// same synthetic population under two rate schedules.
func (h *SimulateHandler) CompareScenarios(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	draws := drawsFor(req.SampleSize, req.Seed)

	base := montecarlo.Run(montecarlo.Params{
		Inputs:     req.Baseline.ToModelInputs(),
		Draws:      draws,
		UsageSigma: req.UsageSigma,
	})
	prop := montecarlo.Run(montecarlo.Params{
		Inputs:     req.Proposal.ToModelInputs(),
		Draws:      draws,
		UsageSigma: req.UsageSigma,
	})

	impacts := analysis.ComputeDecileImpacts(
		base.Population.Usages,
		prop.Population.Usages,
		req.Proposal.Connections,
	)

	c.JSON(http.StatusOK, models.CompareResponse{
		Baseline: models.FromDemandResult(base.Result),
		Proposal: models.FromDemandResult(prop.Result),
		Deciles:  models.FromDecileImpacts(impacts),
	})
}

func drawsFor(sampleSize int, seed *uint64) montecarlo.Draws {
	if sampleSize <= 0 {
		sampleSize = montecarlo.DefaultSampleSize
	}
	if seed != nil {
		return montecarlo.GenerateDrawsSeeded(sampleSize, *seed)
	}
	return montecarlo.GenerateDraws(sampleSize)
}
