package metrics

import (
	"fmt"

	"impact-game/internal/model"
	"impact-game/internal/strategy"
)

// weightedSchedule is one support point of an empirical distribution.
type weightedSchedule struct {
	schedule    model.Trajectory
	probability float64
}

// marginal builds the empirical distribution over a play history, grouping
// schedules by canonical value.
func marginal(actions []model.Trajectory) []weightedSchedule {
	byKey := make(map[string]int)
	out := make([]weightedSchedule, 0, len(actions))
	for _, a := range actions {
		k := a.Key()
		if i, ok := byKey[k]; ok {
			out[i].probability++
			continue
		}
		byKey[k] = len(out)
		out = append(out, weightedSchedule{schedule: a, probability: 1})
	}
	for i := range out {
		out[i].probability /= float64(len(actions))
	}
	return out
}

// MarginalCost computes player 1's expected cost when both players draw
// independently from their empirical marginal distributions.
func MarginalCost(p1Actions, p2Actions []model.Trajectory, kappa float64) float64 {
	d1 := marginal(p1Actions)
	d2 := marginal(p2Actions)

	cost := 0.0
	for _, w1 := range d1 {
		for _, w2 := range d2 {
			cost += w1.probability * w2.probability * model.TotalCost(w1.schedule, w2.schedule, kappa)
		}
	}
	return cost
}

// DistToNash computes how far player 1's play is from equilibrium: the
// expected cost under the product of empirical marginals minus the cost of
// best responding to player 2's average schedule.
func DistToNash(p1Actions, p2Actions []model.Trajectory, totalVolume, horizon int, kappa float64, lowerLimit, upperLimit int) (float64, error) {
	if len(p1Actions) == 0 || len(p2Actions) == 0 {
		return 0, fmt.Errorf("both play histories are required")
	}

	actual := MarginalCost(p1Actions, p2Actions, kappa)

	avg, err := average(p2Actions)
	if err != nil {
		return 0, err
	}
	br, err := strategy.BestRespond(totalVolume, avg, horizon, kappa, lowerLimit, upperLimit)
	if err != nil {
		return 0, fmt.Errorf("best response against average play: %w", err)
	}
	best := model.TotalCost(br, avg, kappa)

	return actual - best, nil
}

// JointOutcome is one support point of an empirical joint distribution over
// both players' schedules.
type JointOutcome struct {
	A           model.Trajectory
	B           model.Trajectory
	Probability float64
}

// JointDistribution builds the empirical joint distribution of a paired play
// history.
func JointDistribution(p1Actions, p2Actions []model.Trajectory) ([]JointOutcome, error) {
	if len(p1Actions) != len(p2Actions) {
		return nil, fmt.Errorf("history lengths differ: %d vs %d", len(p1Actions), len(p2Actions))
	}
	byKey := make(map[string]int)
	out := make([]JointOutcome, 0, len(p1Actions))
	for t := range p1Actions {
		k := p1Actions[t].Key() + "|" + p2Actions[t].Key()
		if i, ok := byKey[k]; ok {
			out[i].Probability++
			continue
		}
		byKey[k] = len(out)
		out = append(out, JointOutcome{A: p1Actions[t], B: p2Actions[t], Probability: 1})
	}
	for i := range out {
		out[i].Probability /= float64(len(p1Actions))
	}
	return out, nil
}

// Welfare sums the probability-weighted cost of both players under a joint
// distribution of schedule pairs.
func Welfare(joint []JointOutcome, kappa float64) float64 {
	w := 0.0
	for _, o := range joint {
		w += o.Probability * (model.TotalCost(o.A, o.B, kappa) + model.TotalCost(o.B, o.A, kappa))
	}
	return w
}
