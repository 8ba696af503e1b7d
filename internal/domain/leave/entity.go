package leave

import "github.com/katalis-hr/attendance-backend-go/internal/domain/attendance"

// LeaveType mirrors the leave-request workflow's approved types; the
// attendance engine only maps them onto record statuses.
type LeaveType string

const (
	TypeSick           LeaveType = "SICK"
	TypeAnnual         LeaveType = "ANNUAL"
	TypePersonal       LeaveType = "PERSONAL"
	TypeOfficialTravel LeaveType = "OFFICIAL_TRAVEL"
)

// Status is the answer to "is this employee on approved leave on this date".
type Status struct {
	OnLeave   bool
	LeaveType LeaveType
}

// AttendanceStatus maps an approved leave type to the attendance record
// status the leave integration writes.
func (t LeaveType) AttendanceStatus() attendance.Status {
	switch t {
	case TypeSick:
		return attendance.StatusSick
	case TypeOfficialTravel:
		return attendance.StatusOfficialTravel
	default:
		return attendance.StatusOnLeave
	}
}
