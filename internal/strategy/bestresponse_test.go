package strategy

import (
	"math"
	"testing"

	"impact-game/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteForceMin enumerates every feasible schedule and returns the cheapest
// one with its cost. Used as the ground truth for small instances.
func bruteForceMin(totalVolume int, opponent model.Trajectory, horizon int, kappa float64, lower, upper int) (model.Trajectory, float64) {
	var best model.Trajectory
	bestCost := math.Inf(1)
	current := make(model.Trajectory, horizon)

	var recurse func(t, remaining int)
	recurse = func(t, remaining int) {
		if t == horizon-1 {
			if remaining < lower || remaining > upper {
				return
			}
			current[t] = float64(remaining)
			if c := model.TotalCost(current, opponent, kappa); c < bestCost {
				bestCost = c
				best = current.Clone()
			}
			return
		}
		for q := lower; q <= upper; q++ {
			current[t] = float64(q)
			recurse(t+1, remaining-q)
		}
	}
	recurse(0, totalVolume)
	return best, bestCost
}

func TestBestRespond_DegenerateHorizon(t *testing.T) {
	got, err := BestRespond(5, model.Trajectory{3}, 1, 0.9, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, model.Trajectory{5}, got)
}

func TestBestRespond_ConcreteScenario(t *testing.T) {
	// V=4 against b=[1,1] with kappa=0.5: splitting evenly costs 15,
	// strictly cheaper than any other feasible split.
	got, err := BestRespond(4, model.Trajectory{1, 1}, 2, 0.5, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, model.Trajectory{2, 2}, got)
	assert.InDelta(t, 15.0, model.TotalCost(got, model.Trajectory{1, 1}, 0.5), 1e-9)
}

func TestBestRespond_MatchesBruteForceSmall(t *testing.T) {
	cases := []struct {
		name     string
		volume   int
		opponent model.Trajectory
		kappa    float64
	}{
		{"flat opponent", 2, model.Trajectory{1, 1}, 1.0},
		{"front-loaded opponent", 2, model.Trajectory{2, 0}, 1.0},
		{"back-loaded opponent", 2, model.Trajectory{0, 2}, 0.3},
		{"no permanent impact", 2, model.Trajectory{2, 0}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BestRespond(tc.volume, tc.opponent, 2, tc.kappa, 0, 2)
			require.NoError(t, err)
			_, wantCost := bruteForceMin(tc.volume, tc.opponent, 2, tc.kappa, 0, 2)
			assert.InDelta(t, wantCost, model.TotalCost(got, tc.opponent, tc.kappa), 1e-9)
		})
	}
}

func TestBestRespond_ZeroKappaMatchesBruteForce(t *testing.T) {
	opponent := model.Trajectory{0, 5, 0}
	got, err := BestRespond(6, opponent, 3, 0, 0, 4)
	require.NoError(t, err)
	_, wantCost := bruteForceMin(6, opponent, 3, 0, 0, 4)
	assert.InDelta(t, wantCost, model.TotalCost(got, opponent, 0), 1e-9)
}

func TestBestRespond_LargerInstance(t *testing.T) {
	opponent := model.Trajectory{4, 0, 3, 1, 2, 2, 0, 4}
	got, err := BestRespond(16, opponent, 8, 0.7, 0, 4)
	require.NoError(t, err)

	// The full target volume is traded and every step respects the limits.
	assert.InDelta(t, 16.0, got.Sum(), 1e-9)
	for step, q := range got {
		assert.GreaterOrEqual(t, q, 0.0, "step %d", step)
		assert.LessOrEqual(t, q, 4.0, "step %d", step)
	}

	_, wantCost := bruteForceMin(16, opponent, 8, 0.7, 0, 4)
	assert.InDelta(t, wantCost, model.TotalCost(got, opponent, 0.7), 1e-9)
}

func TestBestRespond_NonZeroLowerLimit(t *testing.T) {
	opponent := model.Trajectory{3, 0, 2, 1}
	got, err := BestRespond(10, opponent, 4, 0.4, 1, 4)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got.Sum(), 1e-9)
	for step, q := range got {
		assert.GreaterOrEqual(t, q, 1.0, "step %d", step)
		assert.LessOrEqual(t, q, 4.0, "step %d", step)
	}
	_, wantCost := bruteForceMin(10, opponent, 4, 0.4, 1, 4)
	assert.InDelta(t, wantCost, model.TotalCost(got, opponent, 0.4), 1e-9)
}

func TestBestRespond_TieBreaksTowardSmallerTrade(t *testing.T) {
	// With no opponent flow and no permanent impact, [0,1] and [1,0] both
	// cost 1; the scan must keep the first candidate.
	got, err := BestRespond(1, model.Trajectory{0, 0}, 2, 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, model.Trajectory{0, 1}, got)
}

func TestBestRespond_InvalidBounds(t *testing.T) {
	_, err := BestRespond(4, model.Trajectory{1, 1}, 2, 0.5, 3, 1)
	assert.ErrorContains(t, err, "lower limit")
}

func TestBestRespond_OpponentLengthMismatch(t *testing.T) {
	_, err := BestRespond(4, model.Trajectory{1, 1, 1}, 2, 0.5, 0, 4)
	assert.ErrorContains(t, err, "expected 2")
}

func TestBestRespond_InfeasibleVolume(t *testing.T) {
	_, err := BestRespond(9, model.Trajectory{1, 1}, 2, 0.5, 0, 4)
	assert.ErrorContains(t, err, "infeasible")
}

func TestBestRespond_BadHorizon(t *testing.T) {
	_, err := BestRespond(0, model.Trajectory{}, 0, 0.5, 0, 4)
	assert.ErrorContains(t, err, "horizon")
}

func TestBestResponseStrategy_Decide(t *testing.T) {
	game, err := model.NewGame(model.GameParams{
		Horizon: 2,
		Kappa:   0.5,
		PlayerA: model.PlayerParams{TotalVolume: 4, LowerLimit: 0, UpperLimit: 4},
		PlayerB: model.PlayerParams{TotalVolume: 2, LowerLimit: 0, UpperLimit: 4},
	})
	require.NoError(t, err)

	s := NewBestResponseStrategy(game, game.Params.PlayerA)
	assert.Equal(t, "bestresponse", s.Name())

	got, err := s.Decide(Context{Round: 0, Opponent: model.Trajectory{1, 1}})
	require.NoError(t, err)
	assert.Equal(t, model.Trajectory{2, 2}, got)
}
