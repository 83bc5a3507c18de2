package strategy

import "impact-game/internal/model"

// Context carries what a strategy may look at when choosing its next
// schedule: the round index and the opponent's current full schedule.
type Context struct {
	Round    int
	Opponent model.Trajectory
}

type Strategy interface {
	Name() string
	Decide(ctx Context) (model.Trajectory, error)
}
