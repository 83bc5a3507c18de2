package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"impact-game/internal/dynamics"
	"impact-game/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RunStore {
	t.Helper()
	s, err := NewRunStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(id string, createdAt time.Time) (RunSummary, []dynamics.RoundRow) {
	run := RunSummary{
		ID:         id,
		CreatedAt:  createdAt,
		GameName:   "small",
		Horizon:    2,
		Kappa:      0.5,
		StrategyA:  "bestresponse",
		StrategyB:  "bestresponse",
		Rounds:     2,
		TotalCostA: 40,
		TotalCostB: 40,
		Converged:  true,
	}
	ledger := []dynamics.RoundRow{
		{
			Round:     0,
			ScheduleA: model.Trajectory{2, 2},
			ScheduleB: model.Trajectory{2, 2},
			CostA:     20, CostB: 20, CumCostA: 20, CumCostB: 20, Welfare: 40,
		},
		{
			Round:     1,
			ScheduleA: model.Trajectory{2, 2},
			ScheduleB: model.Trajectory{2, 2},
			CostA:     20, CostB: 20, CumCostA: 40, CumCostB: 40, Welfare: 80,
		},
	}
	return run, ledger
}

func TestRunStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, ledger := sampleRun("run-1", time.Now())
	require.NoError(t, s.SaveRun(ctx, run, ledger))

	got, err := s.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "small", got.GameName)
	assert.Equal(t, 2, got.Horizon)
	assert.Equal(t, 0.5, got.Kappa)
	assert.True(t, got.Converged)
	assert.InDelta(t, 40.0, got.TotalCostA, 1e-9)
}

func TestRunStore_GetLedgerRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, ledger := sampleRun("run-1", time.Now())
	require.NoError(t, s.SaveRun(ctx, run, ledger))

	got, err := s.GetLedger(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Round)
	assert.Equal(t, model.Trajectory{2, 2}, got[0].ScheduleA)
	assert.Equal(t, model.Trajectory{2, 2}, got[1].ScheduleB)
	assert.InDelta(t, 40.0, got[1].CumCostA, 1e-9)
}

func TestRunStore_ListRunsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	old, oldLedger := sampleRun("run-old", time.Now().Add(-time.Hour))
	recent, recentLedger := sampleRun("run-new", time.Now())
	require.NoError(t, s.SaveRun(ctx, old, oldLedger))
	require.NoError(t, s.SaveRun(ctx, recent, recentLedger))

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-new", runs[0].ID)
	assert.Equal(t, "run-old", runs[1].ID)

	runs, err = s.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-new", runs[0].ID)
}

func TestRunStore_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetLedger(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunStore_DuplicateIDFails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, ledger := sampleRun("run-1", time.Now())
	require.NoError(t, s.SaveRun(ctx, run, ledger))
	assert.Error(t, s.SaveRun(ctx, run, ledger))
}

func TestRunStore_PruneDropsExpiredRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := NewRunStore(path)
	require.NoError(t, err)
	ctx := context.Background()

	stale, staleLedger := sampleRun("run-stale", time.Now().Add(-retentionRuns-time.Hour))
	fresh, freshLedger := sampleRun("run-fresh", time.Now())
	require.NoError(t, s.SaveRun(ctx, stale, staleLedger))
	require.NoError(t, s.SaveRun(ctx, fresh, freshLedger))
	require.NoError(t, s.Close())

	// Reopening triggers retention cleanup.
	s, err = NewRunStore(path)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-fresh", runs[0].ID)

	_, err = s.GetLedger(ctx, "run-stale")
	assert.ErrorIs(t, err, ErrNotFound)
}
