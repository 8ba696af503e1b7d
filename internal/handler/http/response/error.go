package response

import (
	"errors"
	"net/http"

	"github.com/katalis-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/employee"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/scheduler"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/setting"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Policy rejections carry their own message
	var policyErr *attendance.PolicyError
	if errors.As(err, &policyErr) {
		BadRequest(w, policyErr.Reason, nil)
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Cannot check out before checking in", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Scheduler domain errors
	case errors.Is(err, scheduler.ErrUnknownJob):
		BadRequest(w, "Unknown job name", nil)
	case errors.Is(err, scheduler.ErrLogNotFound):
		NotFound(w, "Execution log not found")

	// Configuration errors are operational failures
	case errors.Is(err, setting.ErrSettingNotFound):
		InternalServerError(w, "Required setting is missing")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
