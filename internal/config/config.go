package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"impact-game/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load game parameters from a separate YAML (e.g. examples/games/*.yaml).
	// If both GameFile and Game are provided, Game overrides GameFile.
	GameFile  string         `yaml:"game_file"`
	Game      GameConfig     `yaml:"game"`
	StrategyA StrategyConfig `yaml:"strategy_a"`
	StrategyB StrategyConfig `yaml:"strategy_b"`
	Dynamics  DynamicsConfig `yaml:"dynamics"`
}

type GameConfig struct {
	Name    string       `yaml:"name"`
	Horizon int          `yaml:"horizon"`
	Kappa   float64      `yaml:"kappa"`
	PlayerA PlayerConfig `yaml:"player_a"`
	PlayerB PlayerConfig `yaml:"player_b"`
}

type PlayerConfig struct {
	TotalVolume int `yaml:"total_volume"`
	LowerLimit  int `yaml:"lower_limit"`
	UpperLimit  int `yaml:"upper_limit"`
}

type StrategyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

type DynamicsConfig struct {
	Rounds int `yaml:"rounds"`
}

const defaultRounds = 25

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	// If rounds is not provided, default it. This keeps configs concise for
	// the common "run the dynamics for a while" case.
	if c.Dynamics.Rounds == 0 {
		c.Dynamics.Rounds = defaultRounds
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If game_file is set, load it and merge in any explicit overrides from c.Game.
	if c.GameFile != "" {
		gamePath := c.GameFile
		if !filepath.IsAbs(gamePath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), gamePath)
			if _, err := os.Stat(cand); err == nil {
				gamePath = cand
			}
		}
		loaded, err := loadGameFile(gamePath)
		if err != nil {
			return nil, err
		}
		c.Game = MergeGame(loaded, c.Game)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.StrategyA.Name == "" {
		return errors.New("strategy_a.name is required")
	}
	if c.StrategyB.Name == "" {
		return errors.New("strategy_b.name is required")
	}
	if c.Dynamics.Rounds < 1 {
		return errors.New("dynamics.rounds must be >= 1")
	}
	// Validate game params by constructing a model.Game.
	if _, err := model.NewGame(c.Game.ToModelParams()); err != nil {
		return fmt.Errorf("game config invalid: %w", err)
	}
	return nil
}

func (g GameConfig) ToModelParams() model.GameParams {
	return model.GameParams{
		Horizon: g.Horizon,
		Kappa:   g.Kappa,
		PlayerA: g.PlayerA.toModelParams(),
		PlayerB: g.PlayerB.toModelParams(),
	}
}

func (p PlayerConfig) toModelParams() model.PlayerParams {
	return model.PlayerParams{
		TotalVolume: p.TotalVolume,
		LowerLimit:  p.LowerLimit,
		UpperLimit:  p.UpperLimit,
	}
}

type gameFileWrapper struct {
	Game GameConfig `yaml:"game"`
}

func loadGameFile(path string) (GameConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return GameConfig{}, err
	}
	var w gameFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return GameConfig{}, err
	}
	return w.Game, nil
}

// MergeGame overlays non-zero fields from override onto base.
// This is used when loading a game file and then applying overrides from the
// enclosing config or an API request.
func MergeGame(base, override GameConfig) GameConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Horizon != 0 {
		out.Horizon = override.Horizon
	}
	// Note: kappa 0 is meaningful (no permanent impact), but preset files
	// always set it explicitly, so a zero override means "keep the preset".
	if override.Kappa != 0 {
		out.Kappa = override.Kappa
	}
	out.PlayerA = mergePlayer(out.PlayerA, override.PlayerA)
	out.PlayerB = mergePlayer(out.PlayerB, override.PlayerB)
	return out
}

func mergePlayer(base, override PlayerConfig) PlayerConfig {
	out := base
	if override.TotalVolume != 0 {
		out.TotalVolume = override.TotalVolume
	}
	if override.LowerLimit != 0 {
		out.LowerLimit = override.LowerLimit
	}
	if override.UpperLimit != 0 {
		out.UpperLimit = override.UpperLimit
	}
	return out
}
