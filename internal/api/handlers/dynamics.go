package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"impact-game/internal/api/models"
	"impact-game/internal/config"
	"impact-game/internal/dynamics"
	"impact-game/internal/model"
	"impact-game/internal/store"
	"impact-game/internal/strategy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DynamicsHandler runs dynamics simulations and serves persisted runs.
type DynamicsHandler struct {
	store *store.RunStore
}

// NewDynamicsHandler creates a new dynamics handler. The store may be nil,
// in which case runs are not persisted and the run endpoints report it.
func NewDynamicsHandler(runStore *store.RunStore) *DynamicsHandler {
	return &DynamicsHandler{store: runStore}
}

// Run handles POST /api/v1/dynamics
func (h *DynamicsHandler) Run(c *gin.Context) {
	var req models.DynamicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	cfg, err := h.buildConfig(req.Config)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "INVALID_CONFIG", err.Error())
		return
	}

	game, err := model.NewGame(cfg.Game.ToModelParams())
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "INVALID_GAME", err.Error())
		return
	}

	stratA, err := strategy.FromConfig(cfg.StrategyA.Name, cfg.StrategyA.Params, game, game.Params.PlayerA)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "INVALID_STRATEGY", err.Error())
		return
	}
	stratB, err := strategy.FromConfig(cfg.StrategyB.Name, cfg.StrategyB.Params, game, game.Params.PlayerB)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "INVALID_STRATEGY", err.Error())
		return
	}

	engine := dynamics.New()
	result, err := engine.Run(game, stratA, stratB, cfg.Dynamics.Rounds)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "DYNAMICS_ERROR", err.Error())
		return
	}

	response := models.DynamicsResponse{
		Status: "completed",
		Summary: models.DynamicsSummary{
			Rounds:     len(result.Ledger),
			TotalCostA: result.TotalCostA,
			TotalCostB: result.TotalCostB,
			FinalA:     result.FinalA,
			FinalB:     result.FinalB,
			Converged:  result.Converged,
		},
	}
	if req.Options.IncludeLedger {
		response.Ledger = convertLedger(result.Ledger)
	}

	if h.store != nil {
		run := store.RunSummary{
			ID:         uuid.New().String(),
			CreatedAt:  time.Now().UTC(),
			GameName:   cfg.Game.Name,
			Horizon:    game.Params.Horizon,
			Kappa:      game.Params.Kappa,
			StrategyA:  stratA.Name(),
			StrategyB:  stratB.Name(),
			Rounds:     len(result.Ledger),
			TotalCostA: result.TotalCostA,
			TotalCostB: result.TotalCostB,
			Converged:  result.Converged,
		}
		if err := h.store.SaveRun(c.Request.Context(), run, result.Ledger); err != nil {
			// Persistence is best effort; the simulation result is still valid.
			log.Printf("DynamicsHandler: failed to persist run: %v", err)
		} else {
			response.ID = run.ID
		}
	}

	c.JSON(http.StatusOK, response)
}

// ListRuns handles GET /api/v1/runs
func (h *DynamicsHandler) ListRuns(c *gin.Context) {
	if h.store == nil {
		errorJSON(c, http.StatusServiceUnavailable, "NO_STORE", "run persistence is disabled")
		return
	}
	runs, err := h.store.ListRuns(c.Request.Context(), 0)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	out := make([]models.RunInfo, len(runs))
	for i, r := range runs {
		out[i] = convertRun(r)
	}
	c.JSON(http.StatusOK, gin.H{"runs": out})
}

// GetLedger handles GET /api/v1/runs/:id/ledger
func (h *DynamicsHandler) GetLedger(c *gin.Context) {
	if h.store == nil {
		errorJSON(c, http.StatusServiceUnavailable, "NO_STORE", "run persistence is disabled")
		return
	}
	id := c.Param("id")
	ledger, err := h.store.GetLedger(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "RUN_NOT_FOUND", "no run with id "+id)
			return
		}
		errorJSON(c, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ledger": convertLedger(ledger)})
}

func (h *DynamicsHandler) buildConfig(req models.DynamicsConfig) (*config.Config, error) {
	cfg := &config.Config{
		GameFile: req.GameFile,
		Game: config.GameConfig{
			Name:    req.Game.Name,
			Horizon: req.Game.Horizon,
			Kappa:   req.Game.Kappa,
			PlayerA: config.PlayerConfig(req.Game.PlayerA),
			PlayerB: config.PlayerConfig(req.Game.PlayerB),
		},
		StrategyA: config.StrategyConfig{Name: req.StrategyA.Name, Params: req.StrategyA.Params},
		StrategyB: config.StrategyConfig{Name: req.StrategyB.Name, Params: req.StrategyB.Params},
		Dynamics:  config.DynamicsConfig{Rounds: req.Rounds},
	}

	// If game_file is set, load it and merge request overrides onto it.
	// Files are looked up by bare name in the games directory.
	if cfg.GameFile != "" {
		gamePath := filepath.Join(gameDir(), cfg.GameFile+".yaml")
		loaded, err := config.LoadUnchecked(gamePath)
		if err == nil {
			cfg.Game = config.MergeGame(loaded.Game, cfg.Game)
		} else {
			log.Printf("DynamicsHandler: failed to load game file %s: %v", gamePath, err)
		}
	}

	if cfg.Dynamics.Rounds == 0 {
		cfg.Dynamics.Rounds = 25
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func gameDir() string {
	if dir := os.Getenv("GAME_DIR"); dir != "" {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "examples", "games")
	}
	return "./examples/games"
}

func convertLedger(ledger []dynamics.RoundRow) []models.RoundRow {
	out := make([]models.RoundRow, len(ledger))
	for i, row := range ledger {
		out[i] = models.RoundRow{
			Round:     row.Round,
			ScheduleA: row.ScheduleA,
			ScheduleB: row.ScheduleB,
			CostA:     row.CostA,
			CostB:     row.CostB,
			CumCostA:  row.CumCostA,
			CumCostB:  row.CumCostB,
			Welfare:   row.Welfare,
		}
	}
	return out
}

func convertRun(r store.RunSummary) models.RunInfo {
	return models.RunInfo{
		ID:         r.ID,
		CreatedAt:  r.CreatedAt,
		GameName:   r.GameName,
		Horizon:    r.Horizon,
		Kappa:      r.Kappa,
		StrategyA:  r.StrategyA,
		StrategyB:  r.StrategyB,
		Rounds:     r.Rounds,
		TotalCostA: r.TotalCostA,
		TotalCostB: r.TotalCostB,
		Converged:  r.Converged,
	}
}
