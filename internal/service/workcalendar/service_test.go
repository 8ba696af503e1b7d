package workcalendar

import (
	"context"
	"testing"
	"time"

	"github.com/katalis-hr/attendance-backend-go/internal/domain/setting"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/workday"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/clock"
	settingService "github.com/katalis-hr/attendance-backend-go/internal/service/setting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingRepo struct {
	values map[string]string
}

func (f *fakeSettingRepo) GetByCode(ctx context.Context, code string) (setting.Setting, error) {
	value, ok := f.values[code]
	if !ok {
		return setting.Setting{}, setting.ErrSettingNotFound
	}
	return setting.Setting{Code: code, Value: value}, nil
}

func testSettings() map[string]string {
	return map[string]string{
		setting.CodeTimezone:             "Asia/Jakarta",
		setting.CodeLateToleranceMinutes: "15",
		setting.CodeHolidays:             "2026-01-01,2026-08-17",
		setting.CodeWorkStartWeekday:     "08:00",
		setting.CodeWorkEndWeekday:       "17:00",
		setting.CodeWorkStartShortday:    "07:00",
		setting.CodeWorkEndShortday:      "14:00",
		setting.CodeShortWorkdays:        "5",
		setting.CodeWorkOpenHour:         "06:00",
		setting.CodeWorkCloseHour:        "20:00",
		setting.CodeTimeMode:             "REAL",
	}
}

func newTestCalendar(values map[string]string, instant time.Time) workday.Calendar {
	settings := settingService.NewSettingService(&fakeSettingRepo{values: values})
	return NewWorkCalendar(settings, clock.Fixed{Instant: instant})
}

func TestNormalizeDayOfWeek(t *testing.T) {
	// 2026-08-31 is a Monday
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, normalizeDayOfWeek(monday))
	assert.Equal(t, 5, normalizeDayOfWeek(monday.AddDate(0, 0, 4)))
	assert.Equal(t, 6, normalizeDayOfWeek(monday.AddDate(0, 0, 5)))
	assert.Equal(t, 7, normalizeDayOfWeek(monday.AddDate(0, 0, 6)))
}

func TestResolve_Weekend(t *testing.T) {
	cal := newTestCalendar(testSettings(), time.Now())
	ctx := context.Background()

	saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	info, err := cal.Resolve(ctx, saturday)
	require.NoError(t, err)
	assert.Equal(t, workday.TypeWeekend, info.Type)
	assert.True(t, info.IsHoliday)
	assert.False(t, info.IsWorkAllowed)
	assert.Contains(t, info.Message, "Saturday")

	sunday := saturday.AddDate(0, 0, 1)
	info, err = cal.Resolve(ctx, sunday)
	require.NoError(t, err)
	assert.Equal(t, workday.TypeWeekend, info.Type)
	assert.Contains(t, info.Message, "Sunday")

	working, err := cal.IsWorkingDay(ctx, saturday)
	require.NoError(t, err)
	assert.False(t, working)
}

func TestResolve_NationalHoliday(t *testing.T) {
	cal := newTestCalendar(testSettings(), time.Now())
	ctx := context.Background()

	// 2026-08-17 falls on a Monday
	independence := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	info, err := cal.Resolve(ctx, independence)
	require.NoError(t, err)
	assert.Equal(t, workday.TypeNationalHoliday, info.Type)
	assert.True(t, info.IsHoliday)
	assert.False(t, info.IsWorkAllowed)

	holiday, err := cal.IsHoliday(ctx, independence)
	require.NoError(t, err)
	assert.True(t, holiday)

	working, err := cal.IsWorkingDay(ctx, independence)
	require.NoError(t, err)
	assert.False(t, working)
}

func TestResolve_WorkingDay(t *testing.T) {
	cal := newTestCalendar(testSettings(), time.Now())
	ctx := context.Background()

	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	info, err := cal.Resolve(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, workday.TypeWorkingDay, info.Type)
	assert.False(t, info.IsHoliday)
	assert.True(t, info.IsWorkAllowed)
	assert.Equal(t, "08:00", info.WorkStart)
	assert.Equal(t, "17:00", info.WorkEnd)
}

func TestWorkingHours_ShortDay(t *testing.T) {
	cal := newTestCalendar(testSettings(), time.Now())
	ctx := context.Background()

	friday := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	hours, err := cal.WorkingHours(ctx, friday)
	require.NoError(t, err)
	assert.Equal(t, "07:00", hours.Start.String())
	assert.Equal(t, "14:00", hours.End.String())
	// Open/close window is shared with regular weekdays
	assert.Equal(t, "06:00", hours.Open.String())
	assert.Equal(t, "20:00", hours.Close.String())

	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	hours, err = cal.WorkingHours(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, "08:00", hours.Start.String())
	assert.Equal(t, "17:00", hours.End.String())
}

func TestResolveToday_WindowStates(t *testing.T) {
	ctx := context.Background()

	// 01:00 UTC = 08:00 WIB on Monday 2026-08-31, inside the window
	cal := newTestCalendar(testSettings(), time.Date(2026, 8, 31, 1, 0, 0, 0, time.UTC))
	info, err := cal.ResolveToday(ctx)
	require.NoError(t, err)
	assert.True(t, info.IsWorkAllowed)
	assert.Equal(t, "Attendance is open", info.Message)
	require.NotNil(t, info.NextChangeAt)
	assert.Equal(t, 20, info.NextChangeAt.Hour())

	// 22:00 UTC Sunday = 05:00 WIB Monday, before the window opens
	cal = newTestCalendar(testSettings(), time.Date(2026, 8, 30, 22, 0, 0, 0, time.UTC))
	info, err = cal.ResolveToday(ctx)
	require.NoError(t, err)
	assert.False(t, info.IsWorkAllowed)
	assert.Equal(t, "Attendance opens at 06:00", info.Message)
	require.NotNil(t, info.NextChangeAt)
	assert.Equal(t, 6, info.NextChangeAt.Hour())

	// 14:00 UTC = 21:00 WIB, after the window closed
	cal = newTestCalendar(testSettings(), time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC))
	info, err = cal.ResolveToday(ctx)
	require.NoError(t, err)
	assert.False(t, info.IsWorkAllowed)
	assert.Equal(t, "Attendance closed at 20:00", info.Message)
	assert.Nil(t, info.NextChangeAt)
}

func TestResolveToday_WeekendShortCircuits(t *testing.T) {
	// Saturday 2026-09-05, 08:00 WIB
	cal := newTestCalendar(testSettings(), time.Date(2026, 9, 5, 1, 0, 0, 0, time.UTC))
	info, err := cal.ResolveToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, workday.TypeWeekend, info.Type)
	assert.False(t, info.IsWorkAllowed)
}

func TestLocation_FallsBackOnInvalidZone(t *testing.T) {
	values := testSettings()
	values[setting.CodeTimezone] = "Mars/Olympus_Mons"
	cal := newTestCalendar(values, time.Now())

	loc, err := cal.Location(context.Background())
	require.NoError(t, err)
	assert.Equal(t, setting.DefaultTimezone, loc.String())
}
