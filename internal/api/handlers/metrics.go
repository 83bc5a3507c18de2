package handlers

import (
	"net/http"

	"impact-game/internal/api/models"
	"impact-game/internal/metrics"
	"impact-game/internal/model"

	"github.com/gin-gonic/gin"
)

// MetricsHandler computes learning-dynamics metrics over submitted histories.
type MetricsHandler struct{}

func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// Compute handles POST /api/v1/metrics
func (h *MetricsHandler) Compute(c *gin.Context) {
	var req models.MetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if len(req.P1Actions) != len(req.P2Actions) {
		errorJSON(c, http.StatusBadRequest, "LENGTH_MISMATCH", "p1_actions and p2_actions must have the same number of rounds")
		return
	}
	if len(req.P1Actions) == 0 {
		errorJSON(c, http.StatusBadRequest, "EMPTY_HISTORY", "at least one round is required")
		return
	}

	p1 := toTrajectories(req.P1Actions)
	p2 := toTrajectories(req.P2Actions)

	cumulative := 0.0
	for t := range p1 {
		cumulative += model.TotalCost(p1[t], p2[t], req.Kappa)
	}

	regret, err := metrics.Regret(cumulative, p2, req.TotalVolume, req.Horizon, req.Kappa, req.LowerLimit, req.UpperLimit)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "METRICS_ERROR", err.Error())
		return
	}
	swap, err := metrics.SwapRegret(p1, p2, req.TotalVolume, req.Horizon, req.Kappa, req.LowerLimit, req.UpperLimit)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "METRICS_ERROR", err.Error())
		return
	}
	nash, err := metrics.DistToNash(p1, p2, req.TotalVolume, req.Horizon, req.Kappa, req.LowerLimit, req.UpperLimit)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "METRICS_ERROR", err.Error())
		return
	}
	joint, err := metrics.JointDistribution(p1, p2)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "METRICS_ERROR", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.MetricsResponse{
		Regret:       regret,
		SwapRegret:   swap,
		MarginalCost: metrics.MarginalCost(p1, p2, req.Kappa),
		DistToNash:   nash,
		Welfare:      metrics.Welfare(joint, req.Kappa),
	})
}

func toTrajectories(raw [][]float64) []model.Trajectory {
	out := make([]model.Trajectory, len(raw))
	for i, r := range raw {
		out[i] = model.Trajectory(r)
	}
	return out
}
