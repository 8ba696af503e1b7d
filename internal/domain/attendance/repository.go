package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRepository defines data access for attendance records.
// Records are never deleted; the storage layer enforces at most one record
// per (employee, date).
type AttendanceRepository interface {
	// Create inserts a new attendance record and returns it with its guid set
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByGuid retrieves an attendance record by guid
	GetByGuid(ctx context.Context, guid string) (Attendance, error)

	// GetByEmployeeAndDate returns nil (no error) when no record exists.
	// Used to prevent double check-in.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, attendance Attendance) error

	// ListByDate retrieves every record for a working day; used by the
	// cutoff jobs to build the per-employee state map in one query.
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)
}

// PenaltySummary aggregates an employee's violations for a month.
type PenaltySummary struct {
	EmployeeID     string
	Year           int
	Month          int
	ViolationCount int
	TotalPenalty   decimal.Decimal
}

// ViolationRepository defines data access for attendance violations.
type ViolationRepository interface {
	Create(ctx context.Context, violation Violation) (Violation, error)

	// ExistsByAttendanceAndType reports whether an active violation of the
	// given type exists for the record
	ExistsByAttendanceAndType(ctx context.Context, attendanceID string, violationType ViolationType) (bool, error)

	// DeleteByAttendanceAndType removes active violations of the given type
	// and returns how many rows were removed
	DeleteByAttendanceAndType(ctx context.Context, attendanceID string, violationType ViolationType) (int64, error)

	// CountByAttendance returns the number of active violations on a record
	CountByAttendance(ctx context.Context, attendanceID string) (int64, error)

	ListByAttendance(ctx context.Context, attendanceID string) ([]Violation, error)

	// MonthlyPenaltySummary sums penalty amounts over the employee's records
	// for the given month
	MonthlyPenaltySummary(ctx context.Context, employeeID string, year int, month time.Month) (PenaltySummary, error)
}
