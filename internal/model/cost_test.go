package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalCost_Empty(t *testing.T) {
	assert.Equal(t, 0.0, TotalCost(Trajectory{}, Trajectory{}, 0.5))
}

func TestTotalCost_TradingNothingCostsNothing(t *testing.T) {
	a := Trajectory{0, 0, 0, 0}
	b := Trajectory{5, 1, 0, 3}
	assert.Equal(t, 0.0, TotalCost(a, b, 0.8))
}

func TestTotalCost_HandComputed(t *testing.T) {
	// t=0: (1+3)*1 = 4
	// t=1: (2+4)*2 + 2*(1+3)*2 = 12 + 16 = 28
	a := Trajectory{1, 2}
	b := Trajectory{3, 4}
	assert.InDelta(t, 32.0, TotalCost(a, b, 2.0), 1e-12)
}

func TestTotalCost_ZeroKappaDropsPermanentImpact(t *testing.T) {
	a := Trajectory{2, 2}
	b := Trajectory{1, 1}
	// (2+1)*2 + (2+1)*2 = 12, no permanent term
	assert.InDelta(t, 12.0, TotalCost(a, b, 0), 1e-12)
}

func TestTotalCost_PermanentImpactUsesPositionBeforeStep(t *testing.T) {
	// Only the second step pays permanent impact, on both players' prior
	// positions (2 and 1), not on this step's flow.
	a := Trajectory{2, 1}
	b := Trajectory{1, 5}
	got := TotalCost(a, b, 1.0)
	want := (2.0+1.0)*2.0 + ((1.0+5.0)*1.0 + (2.0+1.0)*1.0)
	assert.InDelta(t, want, got, 1e-12)
}
