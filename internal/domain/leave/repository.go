package leave

import (
	"context"
	"time"
)

// LeaveRepository exposes the approved-leave facts the attendance engine
// consumes. The approval workflow itself is out of scope.
type LeaveRepository interface {
	// StatusForDate reports whether the employee is on approved leave
	// covering the given calendar date
	StatusForDate(ctx context.Context, employeeID string, date time.Time) (Status, error)

	// EmployeeIDsOnLeave returns the set of employees on approved leave for
	// the date; the cutoff jobs never penalize them
	EmployeeIDsOnLeave(ctx context.Context, date time.Time) (map[string]struct{}, error)
}
