package models

import "time"

// BestResponseResponse carries the optimal schedule and its realized cost.
type BestResponseResponse struct {
	Schedule []float64 `json:"schedule"`
	Cost     float64   `json:"cost"`
}

type CostResponse struct {
	Cost float64 `json:"cost"`
}

// DynamicsResponse is the result of one dynamics run.
type DynamicsResponse struct {
	ID      string          `json:"id,omitempty"`
	Status  string          `json:"status"`
	Summary DynamicsSummary `json:"summary"`
	Ledger  []RoundRow      `json:"ledger,omitempty"`
}

type DynamicsSummary struct {
	Rounds     int       `json:"rounds"`
	TotalCostA float64   `json:"total_cost_a"`
	TotalCostB float64   `json:"total_cost_b"`
	FinalA     []float64 `json:"final_a"`
	FinalB     []float64 `json:"final_b"`
	Converged  bool      `json:"converged"`
}

// RoundRow is one round of the dynamics ledger.
type RoundRow struct {
	Round     int       `json:"round"`
	ScheduleA []float64 `json:"schedule_a"`
	ScheduleB []float64 `json:"schedule_b"`
	CostA     float64   `json:"cost_a"`
	CostB     float64   `json:"cost_b"`
	CumCostA  float64   `json:"cum_cost_a"`
	CumCostB  float64   `json:"cum_cost_b"`
	Welfare   float64   `json:"welfare"`
}

// RunInfo summarizes a persisted dynamics run.
type RunInfo struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	GameName   string    `json:"game_name,omitempty"`
	Horizon    int       `json:"horizon"`
	Kappa      float64   `json:"kappa"`
	StrategyA  string    `json:"strategy_a"`
	StrategyB  string    `json:"strategy_b"`
	Rounds     int       `json:"rounds"`
	TotalCostA float64   `json:"total_cost_a"`
	TotalCostB float64   `json:"total_cost_b"`
	Converged  bool      `json:"converged"`
}

// MetricsResponse carries player 1's learning-dynamics metrics.
type MetricsResponse struct {
	Regret       float64 `json:"regret"`
	SwapRegret   float64 `json:"swap_regret"`
	MarginalCost float64 `json:"marginal_cost"`
	DistToNash   float64 `json:"dist_to_nash"`
	Welfare      float64 `json:"welfare"`
}

// GameInfo represents information about a game preset
type GameInfo struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	File    string    `json:"file"`
	Horizon int       `json:"horizon"`
	Kappa   float64   `json:"kappa"`
	PlayerA GameLimits `json:"player_a"`
	PlayerB GameLimits `json:"player_b"`
}

// GameLimits contains one player's volume target and per-step limits
type GameLimits struct {
	TotalVolume int `json:"total_volume"`
	LowerLimit  int `json:"lower_limit"`
	UpperLimit  int `json:"upper_limit"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "float", "int", "string"
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
