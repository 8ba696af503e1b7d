package setting

import (
	"fmt"
	"time"
)

// Setting is a string-keyed configuration row from general_settings.
type Setting struct {
	ID          int64
	Code        string
	Value       string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Codes for the settings the attendance engine resolves.
const (
	CodeTimezone             = "TIMEZONE"
	CodeLateToleranceMinutes = "LATE_TOLERANCE_MINUTES"
	CodeHolidays             = "HOLIDAYS"

	CodeWorkStartWeekday  = "WORK_START_WEEKDAY"
	CodeWorkEndWeekday    = "WORK_END_WEEKDAY"
	CodeWorkStartShortday = "WORK_START_SHORTDAY"
	CodeWorkEndShortday   = "WORK_END_SHORTDAY"
	CodeShortWorkdays     = "SHORT_WORKDAYS"
	CodeWorkOpenHour      = "WORK_OPEN_HOUR"
	CodeWorkCloseHour     = "WORK_CLOSE_HOUR"

	CodeTimeMode     = "TIME_MODE"
	CodeMockDatetime = "MOCK_DATETIME"
)

// DefaultTimezone is the operational fallback when the configured TIMEZONE
// id cannot be loaded.
const DefaultTimezone = "Asia/Jakarta"

// TimeOfDay is a wall-clock time without a date, parsed from "HH:MM".
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(value string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On anchors the time of day to a calendar date in the given location.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, loc)
}
