package strategy

import (
	"fmt"

	"impact-game/internal/model"
)

// UniformSchedule spreads totalVolume as evenly as integer steps allow,
// placing the remainder on the earliest steps. For any volume feasible under
// the game's limits the resulting per-step trades stay within them.
func UniformSchedule(totalVolume, horizon int) model.Trajectory {
	out := make(model.Trajectory, horizon)
	base := totalVolume / horizon
	rem := totalVolume - base*horizon
	for t := range out {
		out[t] = float64(base)
	}
	for t := 0; t < rem; t++ {
		out[t]++
	}
	for t := 0; t < -rem; t++ {
		out[t]--
	}
	return out
}

// UniformStrategy plays the same even split every round, regardless of the
// opponent. Useful as a fixed baseline and as the starting schedule for
// best-response dynamics.
type UniformStrategy struct {
	Player  model.PlayerParams
	Horizon int
}

func (s *UniformStrategy) Name() string { return "uniform" }

func (s *UniformStrategy) Decide(Context) (model.Trajectory, error) {
	return UniformSchedule(s.Player.TotalVolume, s.Horizon), nil
}

// FixedStrategy plays a caller-supplied schedule every round.
type FixedStrategy struct {
	Schedule model.Trajectory
}

// NewFixedStrategy validates the schedule against the player's target volume
// and trade limits before accepting it.
func NewFixedStrategy(player model.PlayerParams, horizon int, schedule model.Trajectory) (*FixedStrategy, error) {
	if len(schedule) != horizon {
		return nil, fmt.Errorf("fixed schedule has %d steps, expected %d", len(schedule), horizon)
	}
	total := 0.0
	for t, q := range schedule {
		if q < float64(player.LowerLimit) || q > float64(player.UpperLimit) {
			return nil, fmt.Errorf("fixed schedule step %d trades %g, outside limits [%d, %d]",
				t, q, player.LowerLimit, player.UpperLimit)
		}
		total += q
	}
	if total != float64(player.TotalVolume) {
		return nil, fmt.Errorf("fixed schedule sums to %g, expected %d", total, player.TotalVolume)
	}
	return &FixedStrategy{Schedule: schedule.Clone()}, nil
}

func (s *FixedStrategy) Name() string { return "fixed" }

func (s *FixedStrategy) Decide(Context) (model.Trajectory, error) {
	return s.Schedule.Clone(), nil
}
