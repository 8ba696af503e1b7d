package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle status of a daily attendance record.
type Status string

const (
	StatusPresent        Status = "PRESENT"
	StatusProblem        Status = "PROBLEM"
	StatusAbsent         Status = "ABSENT"
	StatusSick           Status = "SICK"
	StatusOnLeave        Status = "ON_LEAVE"
	StatusOfficialTravel Status = "OFFICIAL_TRAVEL"
)

// Attendance is one record per (employee, calendar date). Date is the local
// working day; CheckInTime and CheckOutTime are stored in UTC.
type Attendance struct {
	Guid          string
	EmployeeID    string
	DepartmentID  *string
	Date          time.Time
	CheckInTime   *time.Time
	CheckOutTime  *time.Time
	CheckInNotes  *string
	CheckOutNotes *string
	LateMinutes   *int
	WorkHours     decimal.Decimal
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	DepartmentName *string
}

type ViolationType string

const (
	ViolationLate           ViolationType = "LATE"
	ViolationNotCheckedIn   ViolationType = "NOT_CHECKED_IN"
	ViolationNotCheckedOut  ViolationType = "NOT_CHECKED_OUT"
	ViolationAbsent         ViolationType = "ABSENT"
	ViolationEarlyDeparture ViolationType = "EARLY_DEPARTURE"
)

type ViolationSource string

const (
	SourceCheckIn  ViolationSource = "CHECK_IN"
	SourceCheckOut ViolationSource = "CHECK_OUT"
	SourceSystem   ViolationSource = "SYSTEM"
)

// PenaltyPercent returns the fixed deduction percentage for a violation type.
func (t ViolationType) PenaltyPercent() decimal.Decimal {
	switch t {
	case ViolationLate, ViolationNotCheckedIn, ViolationNotCheckedOut, ViolationEarlyDeparture:
		return decimal.NewFromFloat(2.5)
	case ViolationAbsent:
		return decimal.NewFromFloat(5.0)
	default:
		return decimal.Zero
	}
}

// Violation belongs to exactly one attendance record. BaseAmount is the
// employee's allowance base frozen at the moment the violation was recorded;
// PenaltyAmount = BaseAmount * PenaltyPercent / 100 rounded to 2 decimals.
type Violation struct {
	Guid           string
	AttendanceID   string
	Type           ViolationType
	Source         ViolationSource
	PenaltyPercent decimal.Decimal
	BaseAmount     decimal.Decimal
	PenaltyAmount  decimal.Decimal
	OccurredAt     time.Time
	Notes          *string
	CreatedAt      time.Time
}
