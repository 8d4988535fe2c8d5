package jobs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/domain"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/jobs"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLister struct {
	from, to time.Time
	rows     []domain.Submission
	err      error
}

func (f *fakeLister) ListBetween(_ context.Context, from, to time.Time) ([]domain.Submission, error) {
	f.from, f.to = from, to
	return f.rows, f.err
}

// ============================================================================
// Scheduler Tests
// ============================================================================

func TestScheduler_AddRunRemove(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	runs := 0

	require.NoError(t, s.AddJob("b", "@daily", func() { runs++ }))
	require.NoError(t, s.AddJob("a", "0 30 5 * * *", func() {}))
	assert.Equal(t, []string{"a", "b"}, s.JobNames())

	assert.Error(t, s.AddJob("b", "@daily", func() {}), "duplicate names are rejected")

	require.NoError(t, s.RunNow("b"))
	assert.Equal(t, 1, runs)

	require.NoError(t, s.RemoveJob("b"))
	assert.Error(t, s.RunNow("b"))
	assert.Error(t, s.RemoveJob("b"))
	assert.Equal(t, []string{"a"}, s.JobNames())
}

func TestScheduler_InvalidExpression(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	err := s.AddJob("broken", "every tuesday", func() {})
	assert.Error(t, err)
	assert.Empty(t, s.JobNames())
}

func TestScheduler_StartStop(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	s.Start()

	select {
	case <-s.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

// ============================================================================
// Export Job Tests
// ============================================================================

func TestExportJob_RunExportsYesterday(t *testing.T) {
	prague, err := time.LoadLocation("Europe/Prague")
	require.NoError(t, err)

	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	lister := &fakeLister{rows: []domain.Submission{{OrderID: "HH-1", Currency: "CZK"}}}
	job := jobs.NewExportJob(lister, store, prague, time.Minute, zap.NewNop()).
		WithClock(func() time.Time { return time.Date(2025, 5, 12, 3, 30, 0, 0, time.UTC) })

	job.Run()

	assert.Equal(t, time.Date(2025, 5, 11, 0, 0, 0, 0, prague), lister.from)
	assert.Equal(t, time.Date(2025, 5, 12, 0, 0, 0, 0, prague), lister.to)

	info, err := os.Stat(filepath.Join(dir, "exports", "submissions-2025-05-11.xlsx"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportJob_ExportDay(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	lister := &fakeLister{rows: []domain.Submission{{OrderID: "HH-1"}, {OrderID: "HH-2"}}}
	job := jobs.NewExportJob(lister, store, time.UTC, time.Minute, zap.NewNop())

	key, count, err := job.ExportDay(context.Background(), time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "exports/submissions-2025-05-01.xlsx", key)
	assert.Equal(t, 2, count)
}

func TestExportJob_ListFailure(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	lister := &fakeLister{err: errors.New("db down")}
	job := jobs.NewExportJob(lister, store, time.UTC, time.Minute, zap.NewNop())

	_, _, err = job.ExportDay(context.Background(), time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorContains(t, err, "db down")
}

func TestRegisterExportJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	job := jobs.NewExportJob(&fakeLister{}, nil, time.UTC, time.Minute, zap.NewNop())

	require.NoError(t, jobs.RegisterExportJob(s, job, "0 30 5 * * *"))
	assert.Equal(t, []string{jobs.ExportJobName}, s.JobNames())
}
