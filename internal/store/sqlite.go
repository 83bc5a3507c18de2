package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"impact-game/internal/dynamics"
	"impact-game/internal/model"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id           TEXT PRIMARY KEY,
    created_at   DATETIME NOT NULL,
    game_name    TEXT,
    horizon      INTEGER NOT NULL,
    kappa        REAL    NOT NULL,
    strategy_a   TEXT    NOT NULL,
    strategy_b   TEXT    NOT NULL,
    rounds       INTEGER NOT NULL,
    total_cost_a REAL    NOT NULL DEFAULT 0,
    total_cost_b REAL    NOT NULL DEFAULT 0,
    converged    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_rounds (
    run_id     TEXT    NOT NULL,
    round      INTEGER NOT NULL,
    schedule_a TEXT    NOT NULL,
    schedule_b TEXT    NOT NULL,
    cost_a     REAL    NOT NULL DEFAULT 0,
    cost_b     REAL    NOT NULL DEFAULT 0,
    cum_cost_a REAL    NOT NULL DEFAULT 0,
    cum_cost_b REAL    NOT NULL DEFAULT 0,
    welfare    REAL    NOT NULL DEFAULT 0,
    PRIMARY KEY (run_id, round)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
`

// retentionRuns bounds how long finished runs are kept around.
const retentionRuns = 30 * 24 * time.Hour

var ErrNotFound = errors.New("run not found")

// RunSummary is the run-level record persisted alongside the round ledger.
type RunSummary struct {
	ID         string
	CreatedAt  time.Time
	GameName   string
	Horizon    int
	Kappa      float64
	StrategyA  string
	StrategyB  string
	Rounds     int
	TotalCostA float64
	TotalCostB float64
	Converged  bool
}

// RunStore persists dynamics runs in SQLite (pure Go driver, no CGo).
type RunStore struct {
	db *sql.DB
}

// NewRunStore opens (or creates) the database at the given path, applies the
// schema and prunes old runs.
func NewRunStore(path string) (*RunStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store.NewRunStore: open %q: %w", path, err)
	}
	// SQLite is single-writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.NewRunStore: apply schema: %w", err)
	}

	s := &RunStore{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

func (s *RunStore) Close() error { return s.db.Close() }

// SaveRun writes the run record and its round ledger in one transaction.
func (s *RunStore) SaveRun(ctx context.Context, run RunSummary, ledger []dynamics.RoundRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store.SaveRun: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, game_name, horizon, kappa, strategy_a, strategy_b,
		                  rounds, total_cost_a, total_cost_b, converged)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC(), run.GameName, run.Horizon, run.Kappa,
		run.StrategyA, run.StrategyB, run.Rounds,
		run.TotalCostA, run.TotalCostB, boolToInt(run.Converged))
	if err != nil {
		return fmt.Errorf("store.SaveRun: insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_rounds (run_id, round, schedule_a, schedule_b,
		                        cost_a, cost_b, cum_cost_a, cum_cost_b, welfare)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store.SaveRun: prepare rounds: %w", err)
	}
	defer stmt.Close()

	for _, row := range ledger {
		_, err = stmt.ExecContext(ctx, run.ID, row.Round,
			row.ScheduleA.Key(), row.ScheduleB.Key(),
			row.CostA, row.CostB, row.CumCostA, row.CumCostB, row.Welfare)
		if err != nil {
			return fmt.Errorf("store.SaveRun: insert round %d: %w", row.Round, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, game_name, horizon, kappa, strategy_a, strategy_b,
		       rounds, total_cost_a, total_cost_b, converged
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store.ListRuns: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *RunStore) GetRun(ctx context.Context, id string) (*RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, game_name, horizon, kappa, strategy_a, strategy_b,
		       rounds, total_cost_a, total_cost_b, converged
		FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("store.GetRun: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	r, err := scanRun(rows)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetLedger returns the round ledger for one run, in round order.
func (s *RunStore) GetLedger(ctx context.Context, id string) ([]dynamics.RoundRow, error) {
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT round, schedule_a, schedule_b, cost_a, cost_b, cum_cost_a, cum_cost_b, welfare
		FROM run_rounds WHERE run_id = ? ORDER BY round`, id)
	if err != nil {
		return nil, fmt.Errorf("store.GetLedger: %w", err)
	}
	defer rows.Close()

	var out []dynamics.RoundRow
	for rows.Next() {
		var row dynamics.RoundRow
		var schedA, schedB string
		if err := rows.Scan(&row.Round, &schedA, &schedB,
			&row.CostA, &row.CostB, &row.CumCostA, &row.CumCostB, &row.Welfare); err != nil {
			return nil, fmt.Errorf("store.GetLedger: scan: %w", err)
		}
		if row.ScheduleA, err = model.ParseTrajectory(schedA); err != nil {
			return nil, fmt.Errorf("store.GetLedger: round %d schedule_a: %w", row.Round, err)
		}
		if row.ScheduleB, err = model.ParseTrajectory(schedB); err != nil {
			return nil, fmt.Errorf("store.GetLedger: round %d schedule_b: %w", row.Round, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *RunStore) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionRuns)
	// Best effort; a failed prune never blocks opening the store.
	s.db.ExecContext(ctx, `DELETE FROM run_rounds WHERE run_id IN (SELECT id FROM runs WHERE created_at < ?)`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ?`, cutoff)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(rows rowScanner) (RunSummary, error) {
	var r RunSummary
	var converged int
	err := rows.Scan(&r.ID, &r.CreatedAt, &r.GameName, &r.Horizon, &r.Kappa,
		&r.StrategyA, &r.StrategyB, &r.Rounds, &r.TotalCostA, &r.TotalCostB, &converged)
	if err != nil {
		return RunSummary{}, fmt.Errorf("store: scan run: %w", err)
	}
	r.Converged = converged != 0
	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
