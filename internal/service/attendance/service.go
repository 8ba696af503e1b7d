package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/employee"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/leave"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/setting"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/workday"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/clock"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/database"
	"github.com/katalis-hr/attendance-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	ledger        attendance.ViolationLedger
	violationRepo attendance.ViolationRepository
	employeeRepo  employee.EmployeeRepository
	leaveRepo     leave.LeaveRepository
	calendar      workday.Calendar
	settings      setting.Service
	clock         clock.Clock
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	ledger attendance.ViolationLedger,
	violationRepo attendance.ViolationRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	calendar workday.Calendar,
	settings setting.Service,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		ledger:               ledger,
		violationRepo:        violationRepo,
		employeeRepo:         employeeRepo,
		leaveRepo:            leaveRepo,
		calendar:             calendar,
		settings:             settings,
		clock:                clk,
	}
}

// withTransaction runs fn with a transaction on the context so the record
// and violation writes commit or roll back together. Without a pool the
// steps run directly against the repositories.
func (a *AttendanceServiceImpl) withTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if a.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

// dateOnly strips the time-of-day; attendance dates are stored as bare
// calendar dates.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowUTC, err := a.clock.Now(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	loc, err := a.calendar.Location(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	nowLocal := nowUTC.In(loc)
	today := dateOnly(nowLocal)

	// Working day and open window gate.
	info, err := a.calendar.ResolveToday(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if info.IsHoliday || !info.IsWorkAllowed {
		return attendance.AttendanceResponse{}, &attendance.PolicyError{Reason: info.Message}
	}

	// Approved leave exempts the employee from attendance entirely.
	leaveStatus, err := a.leaveRepo.StatusForDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check leave status: %w", err)
	}
	if leaveStatus.OnLeave {
		return attendance.AttendanceResponse{}, &attendance.PolicyError{
			Reason: fmt.Sprintf("You are on %s today and cannot check in", leaveStatus.LeaveType),
		}
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil && existing.CheckInTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	hours, err := a.calendar.WorkingHours(ctx, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	startLocal := hours.Start.On(nowLocal, loc)

	lateMinutes := 0
	if nowLocal.After(startLocal) {
		lateMinutes = int(nowLocal.Sub(startLocal).Minutes())
	}

	status := attendance.StatusPresent
	if lateMinutes > 0 {
		status = attendance.StatusProblem
	}

	var record attendance.Attendance
	err = a.withTransaction(ctx, func(ctx context.Context) error {
		if existing == nil {
			departmentID, err := a.employeeRepo.PrimaryDepartmentID(ctx, employeeID)
			if err != nil {
				return fmt.Errorf("failed to get department: %w", err)
			}

			record, err = a.AttendanceRepository.Create(ctx, attendance.Attendance{
				Guid:         uuid.NewString(),
				EmployeeID:   employeeID,
				DepartmentID: departmentID,
				Date:         today,
				CheckInTime:  &nowUTC,
				CheckInNotes: req.Notes,
				LateMinutes:  &lateMinutes,
				Status:       status,
			})
			if err != nil {
				return fmt.Errorf("failed to create attendance record: %w", err)
			}
		} else {
			// Record pre-created by a leave adjustment or the check-in cutoff.
			existing.CheckInTime = &nowUTC
			existing.CheckInNotes = req.Notes
			existing.LateMinutes = &lateMinutes
			existing.Status = status
			if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
				return fmt.Errorf("failed to update attendance record: %w", err)
			}
			record = *existing
		}

		// Lateness is recorded even within tolerance; tolerance only affects
		// the note and the later compensation eligibility at checkout.
		if lateMinutes == 0 {
			return nil
		}
		hasLate, err := a.ledger.HasActive(ctx, record.Guid, attendance.ViolationLate)
		if err != nil {
			return err
		}
		if hasLate {
			return nil
		}

		tolerance, err := a.settings.Int(ctx, setting.CodeLateToleranceMinutes)
		if err != nil {
			return err
		}

		note := fmt.Sprintf("Late %d minutes, outside the %d minute tolerance", lateMinutes, tolerance)
		if lateMinutes <= tolerance {
			note = fmt.Sprintf("Late %d minutes, within tolerance, pending checkout compensation", lateMinutes)
		}

		baseAmount, err := a.employeeRepo.AllowanceBase(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get allowance base: %w", err)
		}

		_, err = a.ledger.Add(ctx, attendance.AddViolationRequest{
			AttendanceID: record.Guid,
			Type:         attendance.ViolationLate,
			Source:       attendance.SourceCheckIn,
			BaseAmount:   baseAmount,
			OccurredAt:   nowUTC,
			Notes:        note,
		})
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(record), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowUTC, err := a.clock.Now(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	loc, err := a.calendar.Location(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	nowLocal := nowUTC.In(loc)
	today := dateOnly(nowLocal)

	info, err := a.calendar.ResolveToday(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if info.IsHoliday || !info.IsWorkAllowed {
		return attendance.AttendanceResponse{}, &attendance.PolicyError{Reason: info.Message}
	}

	leaveStatus, err := a.leaveRepo.StatusForDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check leave status: %w", err)
	}
	if leaveStatus.OnLeave {
		return attendance.AttendanceResponse{}, &attendance.PolicyError{
			Reason: fmt.Sprintf("You are on %s today and cannot check out", leaveStatus.LeaveType),
		}
	}

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	if record.CheckOutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if record.CheckInTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}

	hours, err := a.calendar.WorkingHours(ctx, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	tolerance, err := a.settings.Int(ctx, setting.CodeLateToleranceMinutes)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	startLocal := hours.Start.On(nowLocal, loc)
	endLocal := hours.End.On(nowLocal, loc)
	checkInLocal := record.CheckInTime.In(loc)

	isLate := checkInLocal.After(startLocal)
	withinTolerance := isLate && !checkInLocal.After(startLocal.Add(time.Duration(tolerance)*time.Minute))

	lateMinutes := 0
	if record.LateMinutes != nil {
		lateMinutes = *record.LateMinutes
	}

	workHours := decimal.NewFromFloat(nowUTC.Sub(*record.CheckInTime).Hours()).Round(2)

	compensated := false
	if withinTolerance {
		// A lateness within tolerance is forgiven when the employee stays
		// past end-of-work by at least the minutes they were late. Lateness
		// beyond tolerance is never compensable.
		deadline := endLocal.Add(time.Duration(lateMinutes) * time.Minute)
		compensated = !nowLocal.Before(deadline)
	}

	earlyDeparture := !withinTolerance && nowLocal.Before(endLocal)

	record.CheckOutTime = &nowUTC
	record.CheckOutNotes = req.Notes
	record.WorkHours = workHours
	switch {
	case earlyDeparture:
		record.Status = attendance.StatusProblem
	case compensated:
		record.Status = attendance.StatusPresent
	}

	err = a.withTransaction(ctx, func(ctx context.Context) error {
		if err := a.AttendanceRepository.Update(ctx, *record); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}

		if compensated {
			if _, err := a.ledger.RemoveActive(ctx, record.Guid, attendance.ViolationLate); err != nil {
				return err
			}
		}

		if !earlyDeparture {
			return nil
		}
		hasEarly, err := a.ledger.HasActive(ctx, record.Guid, attendance.ViolationEarlyDeparture)
		if err != nil {
			return err
		}
		if hasEarly {
			return nil
		}
		baseAmount, err := a.employeeRepo.AllowanceBase(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get allowance base: %w", err)
		}
		_, err = a.ledger.Add(ctx, attendance.AddViolationRequest{
			AttendanceID: record.Guid,
			Type:         attendance.ViolationEarlyDeparture,
			Source:       attendance.SourceCheckOut,
			BaseAmount:   baseAmount,
			OccurredAt:   nowUTC,
			Notes:        fmt.Sprintf("Left before end of work at %s", hours.End),
		})
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(*record), nil
}

// GetTodayAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodayAttendance(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	nowUTC, err := a.clock.Now(ctx)
	if err != nil {
		return nil, err
	}
	loc, err := a.calendar.Location(ctx)
	if err != nil {
		return nil, err
	}
	today := dateOnly(nowUTC.In(loc))

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	resp := mapAttendanceToResponse(*record)
	return &resp, nil
}

// ListViolations implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListViolations(ctx context.Context, attendanceGuid string) ([]attendance.ViolationResponse, error) {
	if _, err := a.AttendanceRepository.GetByGuid(ctx, attendanceGuid); err != nil {
		return nil, err
	}

	violations, err := a.violationRepo.ListByAttendance(ctx, attendanceGuid)
	if err != nil {
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}

	responses := make([]attendance.ViolationResponse, 0, len(violations))
	for _, v := range violations {
		responses = append(responses, mapViolationToResponse(v))
	}
	return responses, nil
}

// MonthlyPenaltySummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MonthlyPenaltySummary(ctx context.Context, employeeID string, year int, month time.Month) (attendance.PenaltySummaryResponse, error) {
	summary, err := a.violationRepo.MonthlyPenaltySummary(ctx, employeeID, year, month)
	if err != nil {
		return attendance.PenaltySummaryResponse{}, fmt.Errorf("failed to get penalty summary: %w", err)
	}

	return attendance.PenaltySummaryResponse{
		EmployeeID:     summary.EmployeeID,
		Year:           summary.Year,
		Month:          summary.Month,
		ViolationCount: summary.ViolationCount,
		TotalPenalty:   summary.TotalPenalty.StringFixed(2),
	}, nil
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		Guid:           att.Guid,
		EmployeeID:     att.EmployeeID,
		DepartmentID:   att.DepartmentID,
		DepartmentName: att.DepartmentName,
		Date:           att.Date.Format("2006-01-02"),
		CheckInTime:    att.CheckInTime,
		CheckOutTime:   att.CheckOutTime,
		CheckInNotes:   att.CheckInNotes,
		CheckOutNotes:  att.CheckOutNotes,
		LateMinutes:    att.LateMinutes,
		WorkHours:      att.WorkHours.StringFixed(2),
		Status:         att.Status,
		ForgotCheckIn:  att.Status == attendance.StatusProblem && att.CheckInTime == nil,
		ForgotCheckOut: att.Status == attendance.StatusProblem && att.CheckInTime != nil && att.CheckOutTime == nil,
	}
}

func mapViolationToResponse(v attendance.Violation) attendance.ViolationResponse {
	return attendance.ViolationResponse{
		Guid:           v.Guid,
		AttendanceID:   v.AttendanceID,
		Type:           v.Type,
		Source:         v.Source,
		PenaltyPercent: v.PenaltyPercent.StringFixed(2),
		BaseAmount:     v.BaseAmount.StringFixed(2),
		PenaltyAmount:  v.PenaltyAmount.StringFixed(2),
		OccurredAt:     v.OccurredAt,
		Notes:          v.Notes,
	}
}
