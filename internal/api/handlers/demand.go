package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"water-rates/internal/api/models"
	"water-rates/internal/demand"
	"water-rates/internal/model"
)

// DemandHandler handles tier validation and single-point demand requests.
type DemandHandler struct{}

// NewDemandHandler creates a new demand handler
func NewDemandHandler() *DemandHandler {
	return &DemandHandler{}
}

// ValidateTiers handles POST /api/v1/tiers/validate
func (h *DemandHandler) ValidateTiers(c *gin.Context) {
	var req models.ValidateTiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	v := model.ValidateTiers(models.TiersToModel(req.Tiers))
	c.JSON(http.StatusOK, models.ValidateTiersResponse{
		Tiers:   models.TiersFromModel(v.Tiers),
		IsValid: v.Valid,
		Message: v.Message,
	})
}

// RunDemand handles POST /api/v1/demand
func (h *DemandHandler) RunDemand(c *gin.Context) {
	var req models.DemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	// The engine never fails: bad tiers fall back, bad scalars clamp, and
	// modeling concerns surface as warnings in the body.
	result := demand.Evaluate(req.ToModelInputs())
	c.JSON(http.StatusOK, models.FromDemandResult(result))
}
