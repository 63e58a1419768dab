package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"water-rates/internal/analysis"
	"water-rates/internal/api/models"
	"water-rates/internal/model"
)

// AnalyticsHandler serves the distributional aggregators over
// caller-supplied population samples.
type AnalyticsHandler struct{}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler() *AnalyticsHandler {
	return &AnalyticsHandler{}
}

// DecileImpacts handles POST /api/v1/analytics/deciles
func (h *AnalyticsHandler) DecileImpacts(c *gin.Context) {
	var req models.DecilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}
	if len(req.BaselineUsages) != len(req.ProposalUsages) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "MISMATCHED_POPULATIONS",
				Message: "baseline_usages and proposal_usages must be the same length",
			},
		})
		return
	}

	impacts := analysis.ComputeDecileImpacts(req.BaselineUsages, req.ProposalUsages, req.Connections)
	c.JSON(http.StatusOK, models.DecilesResponse{Deciles: models.FromDecileImpacts(impacts)})
}

// Histogram handles POST /api/v1/analytics/histogram
func (h *AnalyticsHandler) Histogram(c *gin.Context) {
	var req models.HistogramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	bins := analysis.BuildUsageHistogram(req.Usages, req.BinWidth, req.MaxUsage)
	c.JSON(http.StatusOK, models.HistogramResponse{Bins: models.FromHistogram(bins)})
}

// Occupancy handles POST /api/v1/analytics/occupancy
func (h *AnalyticsHandler) Occupancy(c *gin.Context) {
	var req models.OccupancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	// Validate first so occupancy is computed against the schedule the
	// engine would actually bill with.
	v := model.ValidateTiers(models.TiersToModel(req.Tiers))
	occ := analysis.ComputeTierOccupancy(v.Tiers, req.Usages)
	c.JSON(http.StatusOK, models.OccupancyResponse{Occupancy: models.FromOccupancy(occ)})
}
