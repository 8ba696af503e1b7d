package attendance

import (
	"context"
	"time"
)

// AttendanceService defines the attendance lifecycle operations.
type AttendanceService interface {
	// CheckIn records the employee's check-in for today, applying the work
	// calendar window, leave exemption and lateness policy
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut records the check-out, computes work hours and settles the
	// lateness compensation / early departure rules
	CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (AttendanceResponse, error)

	// GetTodayAttendance returns nil when the employee has no record today
	GetTodayAttendance(ctx context.Context, employeeID string) (*AttendanceResponse, error)

	// RunCheckInCutoff closes the check-in window for targetDate: every
	// active, non-exempt employee without a record gets one with a
	// NOT_CHECKED_IN violation. Idempotency per target date is the job
	// scheduler's responsibility.
	RunCheckInCutoff(ctx context.Context, targetDate time.Time) (CutoffResult, error)

	// RunCheckOutCutoff finalizes the day: absent employees are marked
	// ABSENT, incomplete records get NOT_CHECKED_OUT violations.
	RunCheckOutCutoff(ctx context.Context, targetDate time.Time) (CutoffResult, error)

	ListViolations(ctx context.Context, attendanceGuid string) ([]ViolationResponse, error)
	MonthlyPenaltySummary(ctx context.Context, employeeID string, year int, month time.Month) (PenaltySummaryResponse, error)
}

// ViolationLedger owns creation, lookup and removal of violations and the
// penalty amount computation.
type ViolationLedger interface {
	Add(ctx context.Context, req AddViolationRequest) (Violation, error)
	RemoveActive(ctx context.Context, attendanceID string, violationType ViolationType) (int64, error)
	HasActive(ctx context.Context, attendanceID string, violationType ViolationType) (bool, error)
	ActiveCount(ctx context.Context, attendanceID string) (int64, error)
}
