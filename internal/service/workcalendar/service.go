package workcalendar

import (
	"context"
	"fmt"
	"time"

	"github.com/katalis-hr/attendance-backend-go/internal/domain/setting"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/workday"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/clock"
)

type WorkCalendarImpl struct {
	settings setting.Service
	clock    clock.Clock
}

func NewWorkCalendar(settings setting.Service, clk clock.Clock) workday.Calendar {
	return &WorkCalendarImpl{settings: settings, clock: clk}
}

// normalizeDayOfWeek maps Go weekdays to Monday=1 .. Sunday=7.
func normalizeDayOfWeek(date time.Time) int {
	if date.Weekday() == time.Sunday {
		return 7
	}
	return int(date.Weekday())
}

func weekendMessage(day int) string {
	if day == 6 {
		return "Today is Saturday, not a working day"
	}
	return "Today is Sunday, not a working day"
}

// Location implements workday.Calendar.
func (c *WorkCalendarImpl) Location(ctx context.Context) (*time.Location, error) {
	return c.settings.Location(ctx)
}

// IsHoliday implements workday.Calendar. Only national holidays count;
// weekends are classified separately.
func (c *WorkCalendarImpl) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	holidays, err := c.settings.DateSet(ctx, setting.CodeHolidays)
	if err != nil {
		return false, err
	}
	_, ok := holidays[date.Format("2006-01-02")]
	return ok, nil
}

// IsWorkingDay implements workday.Calendar.
func (c *WorkCalendarImpl) IsWorkingDay(ctx context.Context, date time.Time) (bool, error) {
	day := normalizeDayOfWeek(date)
	if day == 6 || day == 7 {
		return false, nil
	}
	holiday, err := c.IsHoliday(ctx, date)
	if err != nil {
		return false, err
	}
	return !holiday, nil
}

// WorkingHours implements workday.Calendar. The short day (typically Friday)
// has its own start/end; the open/close window is shared across weekdays.
func (c *WorkCalendarImpl) WorkingHours(ctx context.Context, date time.Time) (workday.Hours, error) {
	shortDays, err := c.settings.DaySet(ctx, setting.CodeShortWorkdays)
	if err != nil {
		return workday.Hours{}, err
	}

	startCode, endCode := setting.CodeWorkStartWeekday, setting.CodeWorkEndWeekday
	if _, ok := shortDays[normalizeDayOfWeek(date)]; ok {
		startCode, endCode = setting.CodeWorkStartShortday, setting.CodeWorkEndShortday
	}

	start, err := c.settings.TimeOfDay(ctx, startCode)
	if err != nil {
		return workday.Hours{}, err
	}
	end, err := c.settings.TimeOfDay(ctx, endCode)
	if err != nil {
		return workday.Hours{}, err
	}
	open, err := c.settings.TimeOfDay(ctx, setting.CodeWorkOpenHour)
	if err != nil {
		return workday.Hours{}, err
	}
	close, err := c.settings.TimeOfDay(ctx, setting.CodeWorkCloseHour)
	if err != nil {
		return workday.Hours{}, err
	}

	return workday.Hours{Start: start, End: end, Open: open, Close: close}, nil
}

// Resolve implements workday.Calendar: day-type classification for an
// arbitrary date, without the open/close window state.
func (c *WorkCalendarImpl) Resolve(ctx context.Context, date time.Time) (workday.Info, error) {
	day := normalizeDayOfWeek(date)

	if day == 6 || day == 7 {
		return workday.Info{
			Date:          date.Format("2006-01-02"),
			IsHoliday:     true,
			IsWorkAllowed: false,
			Type:          workday.TypeWeekend,
			Message:       weekendMessage(day),
		}, nil
	}

	holiday, err := c.IsHoliday(ctx, date)
	if err != nil {
		return workday.Info{}, err
	}
	if holiday {
		return workday.Info{
			Date:          date.Format("2006-01-02"),
			IsHoliday:     true,
			IsWorkAllowed: false,
			Type:          workday.TypeNationalHoliday,
			Message:       "National holiday, not a working day",
		}, nil
	}

	hours, err := c.WorkingHours(ctx, date)
	if err != nil {
		return workday.Info{}, err
	}

	return workday.Info{
		Date:          date.Format("2006-01-02"),
		IsHoliday:     false,
		IsWorkAllowed: true,
		Type:          workday.TypeWorkingDay,
		WorkStart:     hours.Start.String(),
		WorkEnd:       hours.End.String(),
		WorkOpened:    hours.Open.String(),
		WorkClosed:    hours.Close.String(),
		Message:       "Working day",
	}, nil
}

// ResolveToday implements workday.Calendar: resolves the current date and
// classifies the current instant against the open/close window.
func (c *WorkCalendarImpl) ResolveToday(ctx context.Context) (workday.Info, error) {
	nowUTC, err := c.clock.Now(ctx)
	if err != nil {
		return workday.Info{}, fmt.Errorf("failed to read clock: %w", err)
	}

	loc, err := c.settings.Location(ctx)
	if err != nil {
		return workday.Info{}, err
	}

	nowLocal := nowUTC.In(loc)
	today := nowLocal

	info, err := c.Resolve(ctx, today)
	if err != nil {
		return workday.Info{}, err
	}
	if info.Type != workday.TypeWorkingDay {
		return info, nil
	}

	hours, err := c.WorkingHours(ctx, today)
	if err != nil {
		return workday.Info{}, err
	}

	todayOpen := hours.Open.On(today, loc)
	todayClose := hours.Close.On(today, loc)

	switch {
	case nowLocal.Before(todayOpen):
		info.IsWorkAllowed = false
		info.Message = fmt.Sprintf("Attendance opens at %s", hours.Open)
		info.NextChangeAt = &todayOpen
	case nowLocal.After(todayClose):
		info.IsWorkAllowed = false
		info.Message = fmt.Sprintf("Attendance closed at %s", hours.Close)
		info.NextChangeAt = nil
	default:
		info.IsWorkAllowed = true
		info.Message = "Attendance is open"
		info.NextChangeAt = &todayClose
	}
	return info, nil
}
