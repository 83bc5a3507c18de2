package dynamics

import (
	"fmt"

	"impact-game/internal/model"
	"impact-game/internal/strategy"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run plays rounds of sequential dynamics between two strategies.
//
// Both players start from an even split of their target volume. Each round,
// player A chooses a schedule against B's current one, then B chooses
// against A's new schedule. Round costs are evaluated with the realized
// pair of schedules.
func (e *Engine) Run(game *model.Game, stratA, stratB strategy.Strategy, rounds int) (*Result, error) {
	if game == nil {
		return nil, fmt.Errorf("game is nil")
	}
	if stratA == nil || stratB == nil {
		return nil, fmt.Errorf("both strategies are required")
	}
	if rounds < 1 {
		return nil, fmt.Errorf("rounds must be >= 1, got %d", rounds)
	}

	p := game.Params
	aCur := strategy.UniformSchedule(p.PlayerA.TotalVolume, p.Horizon)
	bCur := strategy.UniformSchedule(p.PlayerB.TotalVolume, p.Horizon)

	ledger := make([]RoundRow, 0, rounds)
	historyA := make([]model.Trajectory, 0, rounds)
	historyB := make([]model.Trajectory, 0, rounds)
	cumA, cumB := 0.0, 0.0
	converged := false

	for r := 0; r < rounds; r++ {
		aNext, err := stratA.Decide(strategy.Context{Round: r, Opponent: bCur})
		if err != nil {
			return nil, fmt.Errorf("round %d player A (%s): %w", r, stratA.Name(), err)
		}
		bNext, err := stratB.Decide(strategy.Context{Round: r, Opponent: aNext})
		if err != nil {
			return nil, fmt.Errorf("round %d player B (%s): %w", r, stratB.Name(), err)
		}

		costA := model.TotalCost(aNext, bNext, p.Kappa)
		costB := model.TotalCost(bNext, aNext, p.Kappa)
		cumA += costA
		cumB += costB

		converged = r > 0 && aNext.Key() == aCur.Key() && bNext.Key() == bCur.Key()
		aCur, bCur = aNext, bNext

		historyA = append(historyA, aNext)
		historyB = append(historyB, bNext)
		ledger = append(ledger, RoundRow{
			Round:     r,
			ScheduleA: aNext,
			ScheduleB: bNext,
			CostA:     costA,
			CostB:     costB,
			CumCostA:  cumA,
			CumCostB:  cumB,
			Welfare:   costA + costB,
		})
	}

	return &Result{
		Ledger:     ledger,
		HistoryA:   historyA,
		HistoryB:   historyB,
		FinalA:     aCur,
		FinalB:     bCur,
		TotalCostA: cumA,
		TotalCostB: cumB,
		Converged:  converged,
	}, nil
}
