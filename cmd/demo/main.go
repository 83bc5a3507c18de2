package main

import (
	"flag"
	"fmt"

	"impact-game/internal/config"
	"impact-game/internal/dynamics"
	"impact-game/internal/model"
	"impact-game/internal/strategy"
)

// Demo:
// - Set up a small two-player impact game
// - Let both players best respond to each other for a few rounds
// - Print the per-round ledger to show how the pieces fit together
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	rounds := flag.Int("rounds", 10, "Number of dynamics rounds")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/dynamics.csv)")
	flag.Parse()

	// Defaults (can be overridden via --config).
	params := model.GameParams{
		Horizon: 4,
		Kappa:   0.5,
		PlayerA: model.PlayerParams{TotalVolume: 8, LowerLimit: 0, UpperLimit: 4},
		PlayerB: model.PlayerParams{TotalVolume: 8, LowerLimit: 0, UpperLimit: 4},
	}
	nameA, nameB := "bestresponse", "bestresponse"
	var paramsA, paramsB map[string]any

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		params = cfg.Game.ToModelParams()
		nameA, paramsA = cfg.StrategyA.Name, cfg.StrategyA.Params
		nameB, paramsB = cfg.StrategyB.Name, cfg.StrategyB.Params
		*rounds = cfg.Dynamics.Rounds
	}

	game, err := model.NewGame(params)
	if err != nil {
		panic(err)
	}
	stratA, err := strategy.FromConfig(nameA, paramsA, game, game.Params.PlayerA)
	if err != nil {
		panic(err)
	}
	stratB, err := strategy.FromConfig(nameB, paramsB, game, game.Params.PlayerB)
	if err != nil {
		panic(err)
	}

	engine := dynamics.New()
	result, err := engine.Run(game, stratA, stratB, *rounds)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Game: T=%d kappa=%.2f  A: V=%d [%d,%d]  B: V=%d [%d,%d]\n",
		params.Horizon, params.Kappa,
		params.PlayerA.TotalVolume, params.PlayerA.LowerLimit, params.PlayerA.UpperLimit,
		params.PlayerB.TotalVolume, params.PlayerB.LowerLimit, params.PlayerB.UpperLimit)
	fmt.Printf("Strategies: A=%s B=%s\n\n", stratA.Name(), stratB.Name())

	for _, r := range result.Ledger {
		fmt.Printf("round %2d  a=%-18s b=%-18s costA=%9.3f costB=%9.3f welfare=%9.3f\n",
			r.Round, r.ScheduleA, r.ScheduleB, r.CostA, r.CostB, r.Welfare)
	}

	if *outCSV != "" {
		if err := dynamics.WriteLedgerCSV(*outCSV, result.Ledger); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. Converged=%v  Total cost A=%.3f B=%.3f\n",
		result.Converged, result.TotalCostA, result.TotalCostB)
}
