package strategy

import (
	"fmt"

	"impact-game/internal/model"
)

// FromConfig builds a strategy for one player from a config-style name and
// parameter map.
//
// Supported names:
//   - "bestresponse": exact best response every round (no params)
//   - "uniform": even split every round (no params)
//   - "fixed": plays params["schedule"] every round; the schedule may be a
//     YAML/JSON list of numbers or a comma-separated string
func FromConfig(name string, params map[string]any, game *model.Game, player model.PlayerParams) (Strategy, error) {
	switch name {
	case "bestresponse":
		return NewBestResponseStrategy(game, player), nil
	case "uniform":
		return &UniformStrategy{Player: player, Horizon: game.Params.Horizon}, nil
	case "fixed":
		sched, err := scheduleParam(params, "schedule")
		if err != nil {
			return nil, err
		}
		return NewFixedStrategy(player, game.Params.Horizon, sched)
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

func scheduleParam(params map[string]any, key string) (model.Trajectory, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("fixed strategy requires a %q param", key)
	}
	switch x := v.(type) {
	case string:
		return model.ParseTrajectory(x)
	case []any:
		out := make(model.Trajectory, len(x))
		for i, e := range x {
			q, ok := toFloat(e)
			if !ok {
				return nil, fmt.Errorf("%s[%d] is not a number: %v", key, i, e)
			}
			out[i] = q
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a list of numbers or a comma-separated string", key)
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}
