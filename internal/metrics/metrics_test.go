package metrics

import (
	"testing"

	"impact-game/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The fixtures below use a two-step game with kappa=0.5 and per-step limits
// [0, 4]. Best responses were verified by enumeration: against [1,1] the
// optimum is [2,2] (cost 15), against [4,0] it is [1,3] (cost 21.5).

func TestRegret_ZeroForConstantBestResponsePlay(t *testing.T) {
	opp := []model.Trajectory{{1, 1}, {1, 1}, {1, 1}}
	cum := 3 * 15.0

	r, err := Regret(cum, opp, 4, 2, 0.5, 0, 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, r, 1e-9)
}

func TestRegret_PositiveForSuboptimalPlay(t *testing.T) {
	opp := []model.Trajectory{{1, 1}, {1, 1}}
	// Playing [4,0] both rounds: cost 2*(4+1)*4 = 40 per round.
	cum := 2 * model.TotalCost(model.Trajectory{4, 0}, model.Trajectory{1, 1}, 0.5)

	r, err := Regret(cum, opp, 4, 2, 0.5, 0, 4)
	require.NoError(t, err)
	assert.Greater(t, r, 0.0)
	assert.InDelta(t, cum-2*15.0, r, 1e-9)
}

func TestRegret_EmptyHistory(t *testing.T) {
	_, err := Regret(0, nil, 4, 2, 0.5, 0, 4)
	assert.ErrorContains(t, err, "no opponent actions")
}

func TestSwapRegret_ZeroUnderExactBestResponse(t *testing.T) {
	// Player 1 best responds within each group of identical own schedules,
	// so every partition contributes zero regret.
	p2 := []model.Trajectory{{1, 1}, {1, 1}, {4, 0}, {4, 0}}
	p1 := []model.Trajectory{{2, 2}, {2, 2}, {1, 3}, {1, 3}}

	sr, err := SwapRegret(p1, p2, 4, 2, 0.5, 0, 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sr, 1e-9)
}

func TestSwapRegret_PositiveForMisroutedResponses(t *testing.T) {
	// Same opponent history, but player 1's responses are swapped across
	// the two opponent regimes.
	p2 := []model.Trajectory{{1, 1}, {1, 1}, {4, 0}, {4, 0}}
	p1 := []model.Trajectory{{1, 3}, {1, 3}, {2, 2}, {2, 2}}

	sr, err := SwapRegret(p1, p2, 4, 2, 0.5, 0, 4)
	require.NoError(t, err)
	assert.Greater(t, sr, 0.0)
}

func TestSwapRegret_LengthMismatch(t *testing.T) {
	_, err := SwapRegret(
		[]model.Trajectory{{2, 2}},
		[]model.Trajectory{{1, 1}, {1, 1}},
		4, 2, 0.5, 0, 4)
	assert.ErrorContains(t, err, "history lengths differ")
}

func TestSwapRegret_EmptyHistoryIsZero(t *testing.T) {
	sr, err := SwapRegret(nil, nil, 4, 2, 0.5, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sr)
}

func TestMarginalCost(t *testing.T) {
	p1 := []model.Trajectory{{2, 2}, {1, 3}}
	p2 := []model.Trajectory{{1, 1}}

	// 0.5 * cost([2,2] vs [1,1]) + 0.5 * cost([1,3] vs [1,1]) = 0.5*15 + 0.5*17
	got := MarginalCost(p1, p2, 0.5)
	assert.InDelta(t, 16.0, got, 1e-9)
}

func TestDistToNash_ZeroAtFixedPoint(t *testing.T) {
	// [2,2] vs [2,2] is a mutual best response in this game.
	history := []model.Trajectory{{2, 2}, {2, 2}, {2, 2}}

	d, err := DistToNash(history, history, 4, 2, 0.5, 0, 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, d, 1e-9)
}

func TestDistToNash_PositiveAwayFromEquilibrium(t *testing.T) {
	p1 := []model.Trajectory{{4, 0}}
	p2 := []model.Trajectory{{2, 2}}

	d, err := DistToNash(p1, p2, 4, 2, 0.5, 0, 4)
	require.NoError(t, err)
	assert.Greater(t, d, 0.0)
}

func TestDistToNash_RequiresHistories(t *testing.T) {
	_, err := DistToNash(nil, []model.Trajectory{{2, 2}}, 4, 2, 0.5, 0, 4)
	assert.ErrorContains(t, err, "histories")
}

func TestJointDistribution_GroupsRepeatedPairs(t *testing.T) {
	p1 := []model.Trajectory{{2, 2}, {2, 2}, {1, 3}}
	p2 := []model.Trajectory{{1, 1}, {1, 1}, {4, 0}}

	joint, err := JointDistribution(p1, p2)
	require.NoError(t, err)
	require.Len(t, joint, 2)
	assert.Equal(t, model.Trajectory{2, 2}, joint[0].A)
	assert.InDelta(t, 2.0/3.0, joint[0].Probability, 1e-12)
	assert.Equal(t, model.Trajectory{1, 3}, joint[1].A)
	assert.InDelta(t, 1.0/3.0, joint[1].Probability, 1e-12)

	_, err = JointDistribution(p1, p2[:2])
	assert.ErrorContains(t, err, "history lengths differ")
}

func TestWelfare(t *testing.T) {
	joint := []JointOutcome{
		{A: model.Trajectory{2, 2}, B: model.Trajectory{2, 2}, Probability: 1},
	}
	// Both players pay 20 against each other here.
	assert.InDelta(t, 40.0, Welfare(joint, 0.5), 1e-9)
}

func TestAverage_MixedLengths(t *testing.T) {
	_, err := average([]model.Trajectory{{1, 1}, {1, 1, 1}})
	assert.ErrorContains(t, err, "mixes schedule lengths")
}
