package scheduler

import (
	"time"

	"github.com/katalis-hr/attendance-backend-go/internal/pkg/validator"
)

type RunJobRequest struct {
	JobName string `json:"job_name"`
	// ScheduledAt selects the target date; when nil the job targets today
	// in the configured time zone.
	ScheduledAt *time.Time `json:"scheduled_at"`
}

func (r RunJobRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.JobName) {
		errs = append(errs, validator.ValidationError{Field: "job_name", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LogFilter struct {
	JobName string
	Status  string
	Page    int
	Limit   int
}

type LogResponse struct {
	ID          int64      `json:"id"`
	JobName     string     `json:"job_name"`
	Status      JobStatus  `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	ExecutedAt  *time.Time `json:"executed_at"`
	Message     *string    `json:"message"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ListLogsResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Logs       []LogResponse `json:"logs"`
}
