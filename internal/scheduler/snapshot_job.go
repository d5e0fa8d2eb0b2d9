package scheduler

import (
	"context"
	"time"

	"github.com/tradejournal/Trading-Journal-Backend/internal/service"
)

// SnapshotJob creates the daily valuation snapshot. Non-trading days are
// skipped by the snapshot service itself, so the job can run every day.
type SnapshotJob struct {
	snapshots *service.SnapshotService
	now       func() time.Time
	timeout   time.Duration
}

// NewSnapshotJob creates a SnapshotJob with the provided dependencies.
func NewSnapshotJob(snapshots *service.SnapshotService, now func() time.Time) *SnapshotJob {
	return &SnapshotJob{
		snapshots: snapshots,
		now:       now,
		timeout:   30 * time.Second,
	}
}

// Name implements Job.
func (j *SnapshotJob) Name() string { return "daily_snapshot" }

// Run implements Job.
func (j *SnapshotJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	today := j.now().UTC().Truncate(24 * time.Hour)
	_, err := j.snapshots.CreateSnapshot(ctx, today, false)
	return err
}
