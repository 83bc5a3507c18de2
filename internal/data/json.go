package data

import (
	"encoding/json"
	"fmt"
	"os"

	"impact-game/internal/model"
)

// History is a recorded paired play history: one schedule per round for each
// player. This is the input shape for offline metrics computation.
type History struct {
	P1Actions []model.Trajectory `json:"p1_actions"`
	P2Actions []model.Trajectory `json:"p2_actions"`
}

func LoadHistoryJSON(path string) (*History, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var h History
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, err
	}
	if len(h.P1Actions) != len(h.P2Actions) {
		return nil, fmt.Errorf("history %s: p1 has %d rounds, p2 has %d", path, len(h.P1Actions), len(h.P2Actions))
	}
	return &h, nil
}
