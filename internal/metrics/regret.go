package metrics

import (
	"fmt"

	"impact-game/internal/model"
	"impact-game/internal/strategy"
)

// Regret computes cumulative external regret: the realized cumulative cost
// minus the cost the player would have paid by playing the single best fixed
// schedule against the opponent's average play, scaled over all rounds.
func Regret(cumulativeCost float64, opponentActions []model.Trajectory, totalVolume, horizon int, kappa float64, lowerLimit, upperLimit int) (float64, error) {
	if len(opponentActions) == 0 {
		return 0, fmt.Errorf("no opponent actions")
	}

	avg, err := average(opponentActions)
	if err != nil {
		return 0, err
	}

	best, err := strategy.BestRespond(totalVolume, avg, horizon, kappa, lowerLimit, upperLimit)
	if err != nil {
		return 0, fmt.Errorf("best response against average play: %w", err)
	}
	bestCost := float64(len(opponentActions)) * model.TotalCost(best, avg, kappa)

	return cumulativeCost - bestCost, nil
}

// SwapRegret computes cumulative swap regret of player 1 against player 2:
// rounds are partitioned by the schedule player 1 actually played, external
// regret is computed within each partition, and the partition regrets are
// summed. Under exact best-response play it is 0 up to float error.
func SwapRegret(p1Actions, p2Actions []model.Trajectory, totalVolume, horizon int, kappa float64, lowerLimit, upperLimit int) (float64, error) {
	if len(p1Actions) != len(p2Actions) {
		return 0, fmt.Errorf("history lengths differ: %d vs %d", len(p1Actions), len(p2Actions))
	}
	if len(p1Actions) == 0 {
		return 0, nil
	}

	costs := make([]float64, len(p1Actions))
	for t := range p1Actions {
		costs[t] = model.TotalCost(p1Actions[t], p2Actions[t], kappa)
	}

	// Rounds grouped by player 1's realized schedule.
	groups := make(map[string][]int)
	for t, a1 := range p1Actions {
		k := a1.Key()
		groups[k] = append(groups[k], t)
	}

	total := 0.0
	for _, indices := range groups {
		subseq := make([]model.Trajectory, len(indices))
		subCost := 0.0
		for i, t := range indices {
			subseq[i] = p2Actions[t]
			subCost += costs[t]
		}
		r, err := Regret(subCost, subseq, totalVolume, horizon, kappa, lowerLimit, upperLimit)
		if err != nil {
			return 0, err
		}
		total += r
	}
	return total, nil
}

// average returns the elementwise mean schedule of a non-empty history.
func average(actions []model.Trajectory) (model.Trajectory, error) {
	horizon := len(actions[0])
	out := make(model.Trajectory, horizon)
	for _, a := range actions {
		if len(a) != horizon {
			return nil, fmt.Errorf("history mixes schedule lengths %d and %d", horizon, len(a))
		}
		for t, q := range a {
			out[t] += q
		}
	}
	for t := range out {
		out[t] /= float64(len(actions))
	}
	return out, nil
}
