package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"impact-game/internal/config"
	"impact-game/internal/data"
	"impact-game/internal/dynamics"
	"impact-game/internal/metrics"
	"impact-game/internal/model"
	"impact-game/internal/strategy"

	"github.com/olekukonko/tablewriter"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "bestrespond":
		cmdBestRespond(os.Args[2:])
	case "dynamics":
		cmdDynamics(os.Args[2:])
	case "metrics":
		cmdMetrics(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli bestrespond --volume 4 --opponent 1,1 --kappa 0.5 --lower 0 --upper 4")
	fmt.Println("  cli dynamics --config examples/config.yaml --out results/dynamics.csv")
	fmt.Println("  cli metrics --history history.json --volume 16 --horizon 8 --kappa 0.5 --lower 0 --upper 4")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - bestrespond prints the cost-minimizing schedule against a fixed opponent")
	fmt.Println("  - dynamics plays two strategies against each other and writes a per-round CSV")
	fmt.Println("  - metrics reports regret/swap-regret/Nash-distance/welfare for a recorded history")
}

func cmdBestRespond(args []string) {
	fs := flag.NewFlagSet("bestrespond", flag.ExitOnError)
	volume := fs.Int("volume", 0, "Total shares to acquire")
	opponentCSV := fs.String("opponent", "", "Opponent schedule, comma-separated (required)")
	horizon := fs.Int("horizon", 0, "Number of time steps (default: opponent schedule length)")
	kappa := fs.Float64("kappa", 0, "Permanent impact multiplier")
	lower := fs.Int("lower", 0, "Per-step lower trade limit")
	upper := fs.Int("upper", 0, "Per-step upper trade limit")
	_ = fs.Parse(args)

	if *opponentCSV == "" {
		fmt.Println("--opponent is required")
		os.Exit(2)
	}
	opponent, err := model.ParseTrajectory(*opponentCSV)
	if err != nil {
		panic(err)
	}
	if *horizon == 0 {
		*horizon = len(opponent)
	}

	schedule, err := strategy.BestRespond(*volume, opponent, *horizon, *kappa, *lower, *upper)
	if err != nil {
		fmt.Printf("infeasible: %v\n", err)
		os.Exit(1)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Step", "Quantity", "Action", "Opponent")
	for t, q := range schedule {
		table.Append(
			fmt.Sprintf("%d", t),
			fmt.Sprintf("%g", q),
			string(model.ActionFromQuantity(q)),
			fmt.Sprintf("%g", opponent[t]),
		)
	}
	table.Render()

	fmt.Printf("Best response: %s\n", schedule)
	fmt.Printf("Cost=%.6f\n", model.TotalCost(schedule, opponent, *kappa))
}

func cmdDynamics(args []string) {
	fs := flag.NewFlagSet("dynamics", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/dynamics.csv", "Output CSV path")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	game, err := model.NewGame(cfg.Game.ToModelParams())
	if err != nil {
		panic(err)
	}
	stratA, err := strategy.FromConfig(cfg.StrategyA.Name, cfg.StrategyA.Params, game, game.Params.PlayerA)
	if err != nil {
		panic(err)
	}
	stratB, err := strategy.FromConfig(cfg.StrategyB.Name, cfg.StrategyB.Params, game, game.Params.PlayerB)
	if err != nil {
		panic(err)
	}

	engine := dynamics.New()
	res, err := engine.Run(game, stratA, stratB, cfg.Dynamics.Rounds)
	if err != nil {
		panic(err)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := dynamics.WriteLedgerCSV(*outPath, res.Ledger); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d rounds to %s\n", len(res.Ledger), *outPath)
	fmt.Printf("A (%s): final=%s total cost=%.4f\n", stratA.Name(), res.FinalA, res.TotalCostA)
	fmt.Printf("B (%s): final=%s total cost=%.4f\n", stratB.Name(), res.FinalB, res.TotalCostB)
	fmt.Printf("Converged=%v\n", res.Converged)
}

func cmdMetrics(args []string) {
	fs := flag.NewFlagSet("metrics", flag.ExitOnError)
	historyPath := fs.String("history", "", "Path to recorded history JSON")
	volume := fs.Int("volume", 0, "Player 1's total shares to acquire")
	horizon := fs.Int("horizon", 0, "Number of time steps (default: schedule length)")
	kappa := fs.Float64("kappa", 0, "Permanent impact multiplier")
	lower := fs.Int("lower", 0, "Per-step lower trade limit")
	upper := fs.Int("upper", 0, "Per-step upper trade limit")
	_ = fs.Parse(args)

	if *historyPath == "" {
		fmt.Println("--history is required")
		os.Exit(2)
	}

	h, err := data.LoadHistoryJSON(*historyPath)
	if err != nil {
		panic(err)
	}
	if len(h.P1Actions) == 0 {
		fmt.Println("history is empty")
		os.Exit(1)
	}
	if *horizon == 0 {
		*horizon = len(h.P1Actions[0])
	}

	cumulative := 0.0
	for t := range h.P1Actions {
		cumulative += model.TotalCost(h.P1Actions[t], h.P2Actions[t], *kappa)
	}

	regret, err := metrics.Regret(cumulative, h.P2Actions, *volume, *horizon, *kappa, *lower, *upper)
	if err != nil {
		panic(err)
	}
	swap, err := metrics.SwapRegret(h.P1Actions, h.P2Actions, *volume, *horizon, *kappa, *lower, *upper)
	if err != nil {
		panic(err)
	}
	nash, err := metrics.DistToNash(h.P1Actions, h.P2Actions, *volume, *horizon, *kappa, *lower, *upper)
	if err != nil {
		panic(err)
	}
	joint, err := metrics.JointDistribution(h.P1Actions, h.P2Actions)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Rounds=%d Cumulative cost=%.4f\n\n", len(h.P1Actions), cumulative)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Metric", "Value")
	table.Append("Regret", fmt.Sprintf("%.6f", regret))
	table.Append("Swap regret", fmt.Sprintf("%.6f", swap))
	table.Append("Marginal cost", fmt.Sprintf("%.6f", metrics.MarginalCost(h.P1Actions, h.P2Actions, *kappa)))
	table.Append("Dist to Nash", fmt.Sprintf("%.6f", nash))
	table.Append("Welfare", fmt.Sprintf("%.6f", metrics.Welfare(joint, *kappa)))
	table.Render()
}
