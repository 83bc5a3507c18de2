package handlers

import (
	"net/http"

	"impact-game/internal/api/models"

	"github.com/gin-gonic/gin"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct{}

func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        "bestresponse",
			Description: "Exact best response. Recomputes the cost-minimizing schedule against the opponent's current schedule every round via dynamic programming.",
			Parameters:  []models.ParameterInfo{},
		},
		{
			Name:        "uniform",
			Description: "Even split baseline. Trades the target volume as evenly as the integer horizon allows, ignoring the opponent.",
			Parameters:  []models.ParameterInfo{},
		},
		{
			Name:        "fixed",
			Description: "Plays a caller-supplied schedule every round.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "schedule",
					Type:        "string",
					Description: "Comma-separated per-step quantities (or a JSON list of numbers); must sum to the player's total volume and respect the trade limits",
				},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
