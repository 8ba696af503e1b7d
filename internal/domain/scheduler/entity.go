package scheduler

import "time"

// JobStatus is the state of one execution attempt. Per (job name, target
// date) only one row may ever reach SUCCESS or FAILED; later attempts for
// the same key are recorded as SKIPPED and perform no side effects.
type JobStatus string

const (
	StatusNotRun  JobStatus = "NOT_RUN"
	StatusSuccess JobStatus = "SUCCESS"
	StatusFailed  JobStatus = "FAILED"
	StatusSkipped JobStatus = "SKIPPED"
)

// Job names dispatched by the scheduler.
const (
	JobCheckInCutoff  = "CUT_OFF_CHECKIN"
	JobCheckOutCutoff = "CUT_OFF_CHECKOUT"
)

// ExecutionLog is an append-only row per job attempt.
type ExecutionLog struct {
	ID          int64
	JobName     string
	ScheduledAt *time.Time
	ExecutedAt  *time.Time
	Status      JobStatus
	Message     *string
	CreatedAt   time.Time
}
