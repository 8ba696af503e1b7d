package attendance

import (
	"time"

	"github.com/katalis-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CheckInRequest struct {
	Notes *string `json:"notes"`
}

func (r CheckInRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Notes != nil && len(*r.Notes) > 255 {
		errs = append(errs, validator.ValidationError{Field: "notes", Message: "must be at most 255 characters"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Notes *string `json:"notes"`
}

func (r CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Notes != nil && len(*r.Notes) > 255 {
		errs = append(errs, validator.ValidationError{Field: "notes", Message: "must be at most 255 characters"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	Guid           string     `json:"guid"`
	EmployeeID     string     `json:"employee_id"`
	DepartmentID   *string    `json:"department_id,omitempty"`
	DepartmentName *string    `json:"department_name,omitempty"`
	Date           string     `json:"date"`
	CheckInTime    *time.Time `json:"check_in_time"`
	CheckOutTime   *time.Time `json:"check_out_time"`
	CheckInNotes   *string    `json:"check_in_notes,omitempty"`
	CheckOutNotes  *string    `json:"check_out_notes,omitempty"`
	LateMinutes    *int       `json:"late_minutes,omitempty"`
	WorkHours      string     `json:"work_hours"`
	Status         Status     `json:"status"`

	ForgotCheckIn  bool `json:"forgot_check_in"`
	ForgotCheckOut bool `json:"forgot_check_out"`
}

type ViolationResponse struct {
	Guid           string          `json:"guid"`
	AttendanceID   string          `json:"attendance_id"`
	Type           ViolationType   `json:"type"`
	Source         ViolationSource `json:"source"`
	PenaltyPercent string          `json:"penalty_percent"`
	BaseAmount     string          `json:"base_amount"`
	PenaltyAmount  string          `json:"penalty_amount"`
	OccurredAt     time.Time       `json:"occurred_at"`
	Notes          *string         `json:"notes,omitempty"`
}

type PenaltySummaryResponse struct {
	EmployeeID     string `json:"employee_id"`
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	ViolationCount int    `json:"violation_count"`
	TotalPenalty   string `json:"total_penalty"`
}

// CutoffResult reports what a cutoff run did, for the job execution log.
type CutoffResult struct {
	TargetDate          time.Time
	Skipped             bool
	SkipReason          string
	AttendanceCreated   int
	AttendanceUpdated   int
	ViolationsAdded     int
	ViolationsRemoved   int
	AffectedEmployeeIDs []string
}

// AddViolationRequest carries everything the ledger needs to record a
// violation; the penalty amount is computed by the ledger.
type AddViolationRequest struct {
	AttendanceID string
	Type         ViolationType
	Source       ViolationSource
	BaseAmount   decimal.Decimal
	OccurredAt   time.Time
	Notes        string
}
