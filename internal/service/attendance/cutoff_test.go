package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/katalis-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCheckInCutoff_SkipsNonWorkingDay(t *testing.T) {
	f := newFixture(wib(2026, 9, 5, 18, 0))

	saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	result, err := f.svc.RunCheckInCutoff(context.Background(), saturday)
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Contains(t, result.SkipReason, "not a working day")
	assert.Empty(t, f.repo.records)
}

func TestRunCheckInCutoff_CreatesMissingRecords(t *testing.T) {
	// Cutoff fires at 18:00 local on the target date
	f := newFixture(wib(2026, 8, 31, 18, 0))
	f.employees.active = []string{"emp-1", "emp-2", "emp-3", "emp-4"}
	f.employees.bases["emp-2"] = decimal.NewFromInt(800000)
	f.leaves.onLeave["emp-3"] = leave.TypeAnnual
	f.leaves.onLeave["emp-4"] = leave.TypeSick
	ctx := context.Background()

	target := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	result, err := f.svc.RunCheckInCutoff(ctx, target)
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, 4, result.AttendanceCreated)
	assert.Equal(t, 2, result.ViolationsAdded)
	assert.ElementsMatch(t, []string{"emp-1", "emp-2"}, result.AffectedEmployeeIDs)

	rec1, err := f.repo.GetByEmployeeAndDate(ctx, "emp-1", target)
	require.NoError(t, err)
	require.NotNil(t, rec1)
	assert.Equal(t, attendance.StatusProblem, rec1.Status)
	assert.Nil(t, rec1.CheckInTime)

	v := f.violations.byType(rec1.Guid, attendance.ViolationNotCheckedIn)
	require.NotNil(t, v)
	assert.Equal(t, attendance.SourceCheckIn, v.Source)
	assert.Equal(t, "25000.00", v.PenaltyAmount.StringFixed(2))

	// Employees on approved leave get a record carrying the mapped leave
	// status and no violation
	rec3, err := f.repo.GetByEmployeeAndDate(ctx, "emp-3", target)
	require.NoError(t, err)
	require.NotNil(t, rec3)
	assert.Equal(t, attendance.StatusOnLeave, rec3.Status)
	assert.Nil(t, f.violations.byType(rec3.Guid, attendance.ViolationNotCheckedIn))

	rec4, err := f.repo.GetByEmployeeAndDate(ctx, "emp-4", target)
	require.NoError(t, err)
	require.NotNil(t, rec4)
	assert.Equal(t, attendance.StatusSick, rec4.Status)
	count, err := f.violations.CountByAttendance(ctx, rec4.Guid)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRunCheckInCutoff_SecondRunAddsNothing(t *testing.T) {
	f := newFixture(wib(2026, 8, 31, 18, 0))
	f.employees.active = []string{"emp-1", "emp-2"}
	f.employees.bases["emp-2"] = decimal.NewFromInt(800000)
	ctx := context.Background()
	target := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	first, err := f.svc.RunCheckInCutoff(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, 2, first.AttendanceCreated)
	assert.Equal(t, 2, first.ViolationsAdded)

	// The second pass finds the records from the first and leaves them alone
	second, err := f.svc.RunCheckInCutoff(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, 0, second.AttendanceCreated)
	assert.Equal(t, 0, second.ViolationsAdded)
	assert.Empty(t, second.AffectedEmployeeIDs)

	rec, err := f.repo.GetByEmployeeAndDate(ctx, "emp-1", target)
	require.NoError(t, err)
	require.NotNil(t, rec)
	count, err := f.violations.CountByAttendance(ctx, rec.Guid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRunCheckInCutoff_LeavesCheckedInUntouched(t *testing.T) {
	f := newFixture(wib(2026, 8, 31, 8, 0))
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, "emp-1", attendance.CheckInRequest{})
	require.NoError(t, err)

	f.clock.now = wib(2026, 8, 31, 18, 0)
	target := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	result, err := f.svc.RunCheckInCutoff(ctx, target)
	require.NoError(t, err)

	assert.Equal(t, 0, result.AttendanceCreated)
	assert.Equal(t, 0, result.ViolationsAdded)
	assert.Empty(t, result.AffectedEmployeeIDs)
}

func TestRunCheckInCutoff_OccurredAtPinnedToTargetDate(t *testing.T) {
	// Re-run for a past date two days later at 09:30 local
	f := newFixture(wib(2026, 9, 2, 9, 30))
	ctx := context.Background()

	target := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	_, err := f.svc.RunCheckInCutoff(ctx, target)
	require.NoError(t, err)

	rec, err := f.repo.GetByEmployeeAndDate(ctx, "emp-1", target)
	require.NoError(t, err)
	require.NotNil(t, rec)

	v := f.violations.byType(rec.Guid, attendance.ViolationNotCheckedIn)
	require.NotNil(t, v)

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	occurredLocal := v.OccurredAt.In(jakarta)
	assert.Equal(t, "2026-08-31", occurredLocal.Format("2006-01-02"))
	assert.Equal(t, "09:30", occurredLocal.Format("15:04"))
}

func TestRunCheckOutCutoff_MarksAbsentWithoutRecord(t *testing.T) {
	f := newFixture(wib(2026, 8, 31, 20, 30))
	ctx := context.Background()

	target := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	result, err := f.svc.RunCheckOutCutoff(ctx, target)
	require.NoError(t, err)

	assert.Equal(t, 1, result.AttendanceCreated)
	assert.Equal(t, 1, result.ViolationsAdded)

	rec, err := f.repo.GetByEmployeeAndDate(ctx, "emp-1", target)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)

	v := f.violations.byType(rec.Guid, attendance.ViolationAbsent)
	require.NotNil(t, v)
	assert.Equal(t, attendance.SourceSystem, v.Source)
	assert.Equal(t, "50000.00", v.PenaltyAmount.StringFixed(2))
}

func TestRunCheckOutCutoff_UpgradesNoShowToAbsent(t *testing.T) {
	// Check-in cutoff ran first and left a PROBLEM record with a
	// NOT_CHECKED_IN violation
	f := newFixture(wib(2026, 8, 31, 18, 0))
	ctx := context.Background()
	target := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.RunCheckInCutoff(ctx, target)
	require.NoError(t, err)

	f.clock.now = wib(2026, 8, 31, 20, 30)
	result, err := f.svc.RunCheckOutCutoff(ctx, target)
	require.NoError(t, err)

	assert.Equal(t, 0, result.AttendanceCreated)
	assert.Equal(t, 1, result.AttendanceUpdated)
	assert.Equal(t, 1, result.ViolationsAdded)
	assert.Equal(t, 1, result.ViolationsRemoved)

	rec, err := f.repo.GetByEmployeeAndDate(ctx, "emp-1", target)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)

	// The partial violation is superseded by the full-day absence
	assert.Nil(t, f.violations.byType(rec.Guid, attendance.ViolationNotCheckedIn))
	require.NotNil(t, f.violations.byType(rec.Guid, attendance.ViolationAbsent))

	count, err := f.violations.CountByAttendance(ctx, rec.Guid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRunCheckOutCutoff_FlagsMissingCheckOut(t *testing.T) {
	f := newFixture(wib(2026, 8, 31, 8, 0))
	ctx := context.Background()

	resp, err := f.svc.CheckIn(ctx, "emp-1", attendance.CheckInRequest{})
	require.NoError(t, err)

	f.clock.now = wib(2026, 8, 31, 20, 30)
	target := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	result, err := f.svc.RunCheckOutCutoff(ctx, target)
	require.NoError(t, err)

	assert.Equal(t, 1, result.AttendanceUpdated)
	assert.Equal(t, 1, result.ViolationsAdded)

	rec, err := f.repo.GetByGuid(ctx, resp.Guid)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusProblem, rec.Status)
	assert.NotNil(t, rec.CheckInTime)
	assert.Nil(t, rec.CheckOutTime)

	v := f.violations.byType(resp.Guid, attendance.ViolationNotCheckedOut)
	require.NotNil(t, v)
	assert.Equal(t, attendance.SourceCheckOut, v.Source)
	assert.Equal(t, "25000.00", v.PenaltyAmount.StringFixed(2))
}

func TestRunCheckOutCutoff_SkipsCompleteRecords(t *testing.T) {
	f := newFixture(wib(2026, 8, 31, 8, 0))
	ctx := context.Background()

	resp, err := f.svc.CheckIn(ctx, "emp-1", attendance.CheckInRequest{})
	require.NoError(t, err)

	f.clock.now = wib(2026, 8, 31, 17, 30)
	_, err = f.svc.CheckOut(ctx, "emp-1", attendance.CheckOutRequest{})
	require.NoError(t, err)

	f.clock.now = wib(2026, 8, 31, 20, 30)
	target := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	result, err := f.svc.RunCheckOutCutoff(ctx, target)
	require.NoError(t, err)

	assert.Equal(t, 0, result.AttendanceCreated)
	assert.Equal(t, 0, result.AttendanceUpdated)
	assert.Equal(t, 0, result.ViolationsAdded)

	count, err := f.violations.CountByAttendance(ctx, resp.Guid)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRunCheckOutCutoff_RerunAddsNothing(t *testing.T) {
	f := newFixture(wib(2026, 8, 31, 20, 30))
	ctx := context.Background()
	target := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	first, err := f.svc.RunCheckOutCutoff(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ViolationsAdded)

	// A second pass over the same state creates no duplicate violations
	second, err := f.svc.RunCheckOutCutoff(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, 0, second.AttendanceCreated)
	assert.Equal(t, 0, second.ViolationsAdded)

	rec, err := f.repo.GetByEmployeeAndDate(ctx, "emp-1", target)
	require.NoError(t, err)
	require.NotNil(t, rec)
	count, err := f.violations.CountByAttendance(ctx, rec.Guid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
