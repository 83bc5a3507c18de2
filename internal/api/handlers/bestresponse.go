package handlers

import (
	"net/http"

	"impact-game/internal/api/models"
	"impact-game/internal/model"
	"impact-game/internal/strategy"

	"github.com/gin-gonic/gin"
)

// BestResponseHandler serves the best-response oracle and the cost functional.
type BestResponseHandler struct{}

func NewBestResponseHandler() *BestResponseHandler {
	return &BestResponseHandler{}
}

// Solve handles POST /api/v1/bestresponse
func (h *BestResponseHandler) Solve(c *gin.Context) {
	var req models.BestResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	opponent := model.Trajectory(req.Opponent)
	schedule, err := strategy.BestRespond(req.TotalVolume, opponent, req.Horizon, req.Kappa, req.LowerLimit, req.UpperLimit)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "INFEASIBLE", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.BestResponseResponse{
		Schedule: schedule,
		Cost:     model.TotalCost(schedule, opponent, req.Kappa),
	})
}

// Cost handles POST /api/v1/cost
func (h *BestResponseHandler) Cost(c *gin.Context) {
	var req models.CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if len(req.ScheduleA) != len(req.ScheduleB) {
		errorJSON(c, http.StatusBadRequest, "LENGTH_MISMATCH", "schedule_a and schedule_b must have the same length")
		return
	}

	c.JSON(http.StatusOK, models.CostResponse{
		Cost: model.TotalCost(model.Trajectory(req.ScheduleA), model.Trajectory(req.ScheduleB), req.Kappa),
	})
}

func errorJSON(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
