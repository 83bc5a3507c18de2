package model

import (
	"errors"
	"fmt"
)

// PlayerParams defines one player's acquisition target and per-step limits.
// Units are shares; limits are used as state-space bounds, so they are integers.
type PlayerParams struct {
	TotalVolume int
	LowerLimit  int
	UpperLimit  int
}

// GameParams defines a two-player market-impact game:
// - Horizon: number of discrete trading steps
// - Kappa: relative multiplier on permanent price impact
// - PlayerA/PlayerB: per-player volume targets and trade limits
type GameParams struct {
	Horizon int
	Kappa   float64
	PlayerA PlayerParams
	PlayerB PlayerParams
}

// Game bundles validated parameters.
type Game struct {
	Params GameParams
}

func NewGame(params GameParams) (*Game, error) {
	g := &Game{Params: params}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Validate() error {
	p := g.Params
	if p.Horizon < 1 {
		return errors.New("Horizon must be >= 1")
	}
	if p.Kappa < 0 {
		return errors.New("Kappa must be >= 0")
	}
	if err := validatePlayer("player A", p.Horizon, p.PlayerA); err != nil {
		return err
	}
	if err := validatePlayer("player B", p.Horizon, p.PlayerB); err != nil {
		return err
	}
	return nil
}

func validatePlayer(name string, horizon int, p PlayerParams) error {
	if p.LowerLimit > p.UpperLimit {
		return fmt.Errorf("%s: LowerLimit (%d) must be <= UpperLimit (%d)", name, p.LowerLimit, p.UpperLimit)
	}
	// A full schedule trades between horizon*lower and horizon*upper shares,
	// so the target volume must fall inside that window.
	if p.TotalVolume < horizon*p.LowerLimit || p.TotalVolume > horizon*p.UpperLimit {
		return fmt.Errorf("%s: TotalVolume %d is infeasible for horizon %d with limits [%d, %d]",
			name, p.TotalVolume, horizon, p.LowerLimit, p.UpperLimit)
	}
	return nil
}
