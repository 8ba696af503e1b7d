package scheduler

import "context"

// Service orchestrates cutoff jobs through the execution log: at most one
// SUCCESS/FAILED run per (job name, target date); duplicates short-circuit
// to SKIPPED without invoking the job.
type Service interface {
	RunJob(ctx context.Context, req RunJobRequest) (LogResponse, error)
	ListLogs(ctx context.Context, filter LogFilter) (ListLogsResponse, error)
	GetLog(ctx context.Context, id int64) (LogResponse, error)
}
