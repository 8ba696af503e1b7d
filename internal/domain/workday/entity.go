package workday

import (
	"time"

	"github.com/katalis-hr/attendance-backend-go/internal/domain/setting"
)

type DayType string

const (
	TypeWeekend         DayType = "WEEKEND"
	TypeNationalHoliday DayType = "NATIONAL_HOLIDAY"
	TypeWorkingDay      DayType = "WORKING_DAY"
)

// Info describes a calendar date for attendance purposes. It is recomputed
// on every query and never persisted. NextChangeAt is the instant at which
// the current window state next changes, for UI polling; nil when nothing
// changes for the rest of the day.
type Info struct {
	Date          string     `json:"date"`
	IsHoliday     bool       `json:"is_holiday"`
	IsWorkAllowed bool       `json:"is_work_allowed"`
	Type          DayType    `json:"type"`
	WorkStart     string     `json:"work_start,omitempty"`
	WorkEnd       string     `json:"work_end,omitempty"`
	WorkOpened    string     `json:"work_opened,omitempty"`
	WorkClosed    string     `json:"work_closed,omitempty"`
	Message       string     `json:"message"`
	NextChangeAt  *time.Time `json:"next_change_at"`
}

// Hours holds a working day's nominal start/end times and the open/close
// window within which check-in/out actions are accepted.
type Hours struct {
	Start setting.TimeOfDay
	End   setting.TimeOfDay
	Open  setting.TimeOfDay
	Close setting.TimeOfDay
}
