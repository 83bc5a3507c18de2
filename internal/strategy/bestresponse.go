package strategy

import (
	"fmt"
	"math"

	"impact-game/internal/model"
)

// BestRespond computes the cost-minimizing trading schedule for a player who
// must acquire totalVolume shares over horizon steps against a known opponent
// schedule, trading between lowerLimit and upperLimit shares per step.
//
// It runs backward induction over the "shares remaining" state space: the
// last step must clear whatever remains, and every earlier step picks the
// per-step trade that minimizes the immediate impact cost plus the already
// solved cost of the resulting state. Ties go to the smallest quantity.
//
// The immediate cost charges temporary impact against this step's combined
// flow, and permanent impact (scaled by kappa) against both players' held
// positions: the acting player's position entering the step, and the
// opponent's position through the previous step. The first step carries no
// permanent term since nothing has traded yet. Note the opponent position
// here is cumulative through the step, one step ahead of the convention in
// model.TotalCost; the recursion is coupled to these exact terms, so both
// conventions are kept as-is.
func BestRespond(totalVolume int, opponent model.Trajectory, horizon int, kappa float64, lowerLimit, upperLimit int) (model.Trajectory, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("horizon must be >= 1, got %d", horizon)
	}
	if len(opponent) != horizon {
		return nil, fmt.Errorf("opponent schedule has %d steps, expected %d", len(opponent), horizon)
	}
	if lowerLimit > upperLimit {
		return nil, fmt.Errorf("lower limit %d exceeds upper limit %d", lowerLimit, upperLimit)
	}
	if totalVolume < horizon*lowerLimit || totalVolume > horizon*upperLimit {
		return nil, fmt.Errorf("total volume %d is infeasible for horizon %d with limits [%d, %d]",
			totalVolume, horizon, lowerLimit, upperLimit)
	}

	V, T := totalVolume, horizon

	// Opponent's held position through each step.
	b := opponent.Cumulative()

	// After t steps the player holds between lowerLimit*t and upperLimit*t
	// shares, so shares remaining lie in [V-upperLimit*t, V-lowerLimit*t].
	minRemaining := func(t int) int { return V - upperLimit*t }
	maxRemaining := func(t int) int { return V - lowerLimit*t }

	// One dense table spanning the union of every step's window. The window
	// bounds are linear in t, so the extremes sit at t=0 (a single state, V)
	// and t=T.
	offset := min(V, minRemaining(T))
	width := max(V, maxRemaining(T)) - offset + 1
	idx := func(s int) int { return s - offset }

	cost := make([][]float64, T)
	action := make([][]int, T)
	reached := make([][]bool, T)
	for t := 0; t < T; t++ {
		cost[t] = make([]float64, width)
		action[t] = make([]int, width)
		reached[t] = make([]bool, width)
	}

	// Last step: the only feasible action is to trade all remaining shares,
	// and only states whose remainder fits the trade limits are feasible.
	for s := minRemaining(T - 1); s <= maxRemaining(T-1); s++ {
		if s < lowerLimit || s > upperLimit {
			continue
		}
		i := idx(s)
		c := float64(s) * (float64(s) + opponent[T-1])
		if T >= 2 {
			c = float64(s) * ((float64(s) + opponent[T-1]) + kappa*(float64(V-s)+b[T-2]))
		}
		cost[T-1][i] = c
		action[T-1][i] = s
		reached[T-1][i] = true
	}

	for t := T - 2; t >= 0; t-- {
		for s := minRemaining(t); s <= maxRemaining(t); s++ {
			i := idx(s)
			best := math.Inf(1)
			for q := lowerLimit; q <= upperLimit; q++ {
				ni := idx(s - q)
				if ni < 0 || ni >= width || !reached[t+1][ni] {
					continue
				}
				var step float64
				if t == 0 {
					// No prior trading exists at the first step, so the
					// permanent term vanishes.
					step = float64(q) * (float64(q) + opponent[t])
				} else {
					// The player holds V-s shares entering this step; the
					// opponent holds b[t-1].
					step = float64(q) * ((float64(q) + opponent[t]) + kappa*(float64(V-s)+b[t-1]))
				}
				total := cost[t+1][ni] + step
				if total < best {
					best = total
					cost[t][i] = total
					action[t][i] = q
					reached[t][i] = true
				}
			}
		}
	}

	// Walk the recorded actions forward from the full target volume.
	out := make(model.Trajectory, T)
	remaining := V
	for t := 0; t < T; t++ {
		i := idx(remaining)
		if i < 0 || i >= width || !reached[t][i] {
			return nil, fmt.Errorf("no feasible schedule from %d shares remaining at step %d", remaining, t)
		}
		q := action[t][i]
		out[t] = float64(q)
		remaining -= q
	}
	return out, nil
}

// BestResponseStrategy plays an exact best response to the opponent's
// current schedule every round.
type BestResponseStrategy struct {
	Player  model.PlayerParams
	Horizon int
	Kappa   float64
}

func NewBestResponseStrategy(game *model.Game, player model.PlayerParams) *BestResponseStrategy {
	return &BestResponseStrategy{
		Player:  player,
		Horizon: game.Params.Horizon,
		Kappa:   game.Params.Kappa,
	}
}

func (s *BestResponseStrategy) Name() string { return "bestresponse" }

func (s *BestResponseStrategy) Decide(ctx Context) (model.Trajectory, error) {
	return BestRespond(s.Player.TotalVolume, ctx.Opponent, s.Horizon, s.Kappa, s.Player.LowerLimit, s.Player.UpperLimit)
}
