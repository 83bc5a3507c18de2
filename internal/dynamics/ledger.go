package dynamics

import "impact-game/internal/model"

// RoundRow is one row of per-round output.
// This is the primary artifact for "what happened" in a dynamics run.
type RoundRow struct {
	Round int

	ScheduleA model.Trajectory
	ScheduleB model.Trajectory

	CostA float64
	CostB float64

	CumCostA float64
	CumCostB float64

	// Welfare is the combined cost of both players this round.
	Welfare float64
}

type Result struct {
	Ledger []RoundRow

	// Full play histories, one schedule per round, for the metrics layer.
	HistoryA []model.Trajectory
	HistoryB []model.Trajectory

	FinalA model.Trajectory
	FinalB model.Trajectory

	TotalCostA float64
	TotalCostB float64

	// Converged reports whether the last round repeated the previous
	// round's schedules exactly (a fixed point of the dynamics).
	Converged bool
}
