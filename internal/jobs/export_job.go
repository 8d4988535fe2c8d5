package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/domain"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/export"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/storage"
	"go.uber.org/zap"
)

// ExportJobName is the name of the daily submission export
const ExportJobName = "submission_export"

// SubmissionLister reads submissions created in [from, to).
type SubmissionLister interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Submission, error)
}

// ExportJob writes the previous day's submissions to a spreadsheet in storage.
type ExportJob struct {
	submissions SubmissionLister
	store       storage.Storage
	location    *time.Location
	timeout     time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

// NewExportJob creates the export job. Days are cut in loc.
func NewExportJob(submissions SubmissionLister, store storage.Storage, loc *time.Location, timeout time.Duration, logger *zap.Logger) *ExportJob {
	if loc == nil {
		loc = time.UTC
	}
	return &ExportJob{
		submissions: submissions,
		store:       store,
		location:    loc,
		timeout:     timeout,
		now:         time.Now,
		logger:      logger,
	}
}

// WithClock replaces the time source.
func (j *ExportJob) WithClock(now func() time.Time) *ExportJob {
	j.now = now
	return j
}

// Run exports yesterday. Failures are logged; the next run tries again for its own day.
func (j *ExportJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	today := j.now().In(j.location)
	day := time.Date(today.Year(), today.Month(), today.Day()-1, 0, 0, 0, 0, j.location)

	key, count, err := j.ExportDay(ctx, day)
	if err != nil {
		j.logger.Error("submission export failed",
			zap.String("day", day.Format("2006-01-02")),
			zap.Error(err))
		return
	}
	j.logger.Info("submission export written",
		zap.String("key", key),
		zap.Int("submissions", count))
}

// ExportDay writes the submissions of the calendar day starting at day and
// returns the storage key and row count. Empty days still produce a file.
func (j *ExportJob) ExportDay(ctx context.Context, day time.Time) (string, int, error) {
	from := day
	to := day.AddDate(0, 0, 1)

	rows, err := j.submissions.ListBetween(ctx, from, to)
	if err != nil {
		return "", 0, fmt.Errorf("failed to list submissions: %w", err)
	}

	buf, err := export.SubmissionWorkbook(rows, j.location)
	if err != nil {
		return "", 0, err
	}

	key, _, err := j.store.Upload(ctx, export.FileName(day), export.ContentType, buf)
	if err != nil {
		return "", 0, fmt.Errorf("failed to upload export: %w", err)
	}
	return key, len(rows), nil
}

// RegisterExportJob adds the export job to the scheduler.
func RegisterExportJob(scheduler *Scheduler, job *ExportJob, cronExpr string) error {
	return scheduler.AddJob(ExportJobName, cronExpr, job.Run)
}
