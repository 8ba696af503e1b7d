package scheduler

import (
	"context"
	"time"
)

// LogRepository - interface for the scheduler_execution_logs table
type LogRepository interface {
	Create(ctx context.Context, log ExecutionLog) (ExecutionLog, error)
	Update(ctx context.Context, log ExecutionLog) error

	// FindCompleted returns the most recent SUCCESS or FAILED row whose
	// scheduled date falls on targetDate, or nil when none exists. The
	// check-then-insert sequence is cooperative; true exclusivity needs a
	// storage-level unique constraint on (job_name, target date).
	FindCompleted(ctx context.Context, jobName string, targetDate time.Time) (*ExecutionLog, error)

	GetByID(ctx context.Context, id int64) (ExecutionLog, error)
	List(ctx context.Context, filter LogFilter) ([]ExecutionLog, int64, error)
}
