package model

// Action is a human-friendly label for a single step's trade direction.
// Keep these values stable; they appear in report output.
type Action string

const (
	ActionBuying  Action = "BUYING"
	ActionIdle    Action = "IDLE"
	ActionSelling Action = "SELLING"
)

func ActionFromQuantity(q float64) Action {
	switch {
	case q > 0:
		return ActionBuying
	case q < 0:
		return ActionSelling
	default:
		return ActionIdle
	}
}
