package models

// BestResponseRequest asks for the optimal schedule against a fixed opponent.
type BestResponseRequest struct {
	TotalVolume int       `json:"total_volume"`
	Opponent    []float64 `json:"opponent" binding:"required"`
	Horizon     int       `json:"horizon" binding:"required"`
	Kappa       float64   `json:"kappa"`
	LowerLimit  int       `json:"lower_limit"`
	UpperLimit  int       `json:"upper_limit"`
}

// CostRequest evaluates the impact cost of one schedule against another.
type CostRequest struct {
	ScheduleA []float64 `json:"schedule_a" binding:"required"`
	ScheduleB []float64 `json:"schedule_b" binding:"required"`
	Kappa     float64   `json:"kappa"`
}

// DynamicsRequest runs a full dynamics simulation.
type DynamicsRequest struct {
	Config  DynamicsConfig  `json:"config" binding:"required"`
	Options DynamicsOptions `json:"options,omitempty"`
}

// DynamicsConfig mirrors the YAML config shape.
type DynamicsConfig struct {
	GameFile  string         `json:"game_file,omitempty"`
	Game      GameConfig     `json:"game,omitempty"`
	StrategyA StrategyConfig `json:"strategy_a" binding:"required"`
	StrategyB StrategyConfig `json:"strategy_b" binding:"required"`
	Rounds    int            `json:"rounds,omitempty"`
}

type GameConfig struct {
	Name    string       `json:"name,omitempty"`
	Horizon int          `json:"horizon"`
	Kappa   float64      `json:"kappa"`
	PlayerA PlayerConfig `json:"player_a"`
	PlayerB PlayerConfig `json:"player_b"`
}

type PlayerConfig struct {
	TotalVolume int `json:"total_volume"`
	LowerLimit  int `json:"lower_limit"`
	UpperLimit  int `json:"upper_limit"`
}

type StrategyConfig struct {
	Name   string         `json:"name" binding:"required"`
	Params map[string]any `json:"params,omitempty"`
}

type DynamicsOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}

// MetricsRequest computes learning-dynamics metrics over a paired history.
type MetricsRequest struct {
	P1Actions [][]float64 `json:"p1_actions" binding:"required"`
	P2Actions [][]float64 `json:"p2_actions" binding:"required"`

	// Player 1's game parameters, used by the best-response baselines.
	TotalVolume int     `json:"total_volume"`
	Horizon     int     `json:"horizon" binding:"required"`
	Kappa       float64 `json:"kappa"`
	LowerLimit  int     `json:"lower_limit"`
	UpperLimit  int     `json:"upper_limit"`
}
