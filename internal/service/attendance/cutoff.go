package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/attendance"
)

// cutoffContext carries the bulk-loaded state both cutoff runs need:
// eligible employees and the existing records for the target date.
type cutoffContext struct {
	targetDate time.Time
	// occurredAt is pinned to the target date's local time-of-day at
	// execution, so re-running for a past date stamps violations as if
	// they occurred then.
	occurredAt time.Time
	eligible   []string
	onLeave    []string
	records    map[string]attendance.Attendance
}

func (a *AttendanceServiceImpl) prepareCutoff(ctx context.Context, targetDate time.Time) (*cutoffContext, error) {
	target := dateOnly(targetDate)

	nowUTC, err := a.clock.Now(ctx)
	if err != nil {
		return nil, err
	}
	loc, err := a.calendar.Location(ctx)
	if err != nil {
		return nil, err
	}
	nowLocal := nowUTC.In(loc)
	occurredLocal := time.Date(
		target.Year(), target.Month(), target.Day(),
		nowLocal.Hour(), nowLocal.Minute(), nowLocal.Second(), 0,
		loc,
	)

	activeIDs, err := a.employeeRepo.ActiveEmployeeIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	onLeave, err := a.leaveRepo.EmployeeIDsOnLeave(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees on leave: %w", err)
	}

	// Leave-exempt employees are never penalized by a cutoff.
	eligible := make([]string, 0, len(activeIDs))
	exempt := make([]string, 0, len(onLeave))
	for _, id := range activeIDs {
		if _, ok := onLeave[id]; ok {
			exempt = append(exempt, id)
			continue
		}
		eligible = append(eligible, id)
	}

	existing, err := a.AttendanceRepository.ListByDate(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for %s: %w", target.Format("2006-01-02"), err)
	}
	records := make(map[string]attendance.Attendance, len(existing))
	for _, rec := range existing {
		records[rec.EmployeeID] = rec
	}

	return &cutoffContext{
		targetDate: target,
		occurredAt: occurredLocal.UTC(),
		eligible:   eligible,
		onLeave:    exempt,
		records:    records,
	}, nil
}

// RunCheckInCutoff implements attendance.AttendanceService. Idempotent per
// target date: employees that already have a record are left untouched.
func (a *AttendanceServiceImpl) RunCheckInCutoff(ctx context.Context, targetDate time.Time) (attendance.CutoffResult, error) {
	target := dateOnly(targetDate)
	result := attendance.CutoffResult{TargetDate: target}

	working, err := a.calendar.IsWorkingDay(ctx, target)
	if err != nil {
		return result, err
	}
	if !working {
		result.Skipped = true
		result.SkipReason = "skipped: not a working day"
		return result, nil
	}

	cc, err := a.prepareCutoff(ctx, target)
	if err != nil {
		return result, err
	}

	for _, employeeID := range cc.eligible {
		if _, ok := cc.records[employeeID]; ok {
			continue
		}

		// The record and its violation land together or not at all.
		err := a.withTransaction(ctx, func(ctx context.Context) error {
			departmentID, err := a.employeeRepo.PrimaryDepartmentID(ctx, employeeID)
			if err != nil {
				return fmt.Errorf("failed to get department for %s: %w", employeeID, err)
			}

			record, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
				Guid:         uuid.NewString(),
				EmployeeID:   employeeID,
				DepartmentID: departmentID,
				Date:         target,
				Status:       attendance.StatusProblem,
			})
			if err != nil {
				return fmt.Errorf("failed to create cutoff record for %s: %w", employeeID, err)
			}

			baseAmount, err := a.employeeRepo.AllowanceBase(ctx, employeeID)
			if err != nil {
				return fmt.Errorf("failed to get allowance base for %s: %w", employeeID, err)
			}
			_, err = a.ledger.Add(ctx, attendance.AddViolationRequest{
				AttendanceID: record.Guid,
				Type:         attendance.ViolationNotCheckedIn,
				Source:       attendance.SourceCheckIn,
				BaseAmount:   baseAmount,
				OccurredAt:   cc.occurredAt,
				Notes:        "Did not check in before the check-in cutoff",
			})
			return err
		})
		if err != nil {
			return result, err
		}
		result.AttendanceCreated++
		result.ViolationsAdded++
		result.AffectedEmployeeIDs = append(result.AffectedEmployeeIDs, employeeID)
	}

	// Employees on approved leave still get a record for the day carrying
	// the status their leave type maps to; no violation is attached.
	for _, employeeID := range cc.onLeave {
		if _, ok := cc.records[employeeID]; ok {
			continue
		}

		leaveStatus, err := a.leaveRepo.StatusForDate(ctx, employeeID, target)
		if err != nil {
			return result, fmt.Errorf("failed to check leave status for %s: %w", employeeID, err)
		}
		if !leaveStatus.OnLeave {
			continue
		}

		departmentID, err := a.employeeRepo.PrimaryDepartmentID(ctx, employeeID)
		if err != nil {
			return result, fmt.Errorf("failed to get department for %s: %w", employeeID, err)
		}
		if _, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
			Guid:         uuid.NewString(),
			EmployeeID:   employeeID,
			DepartmentID: departmentID,
			Date:         target,
			Status:       leaveStatus.LeaveType.AttendanceStatus(),
		}); err != nil {
			return result, fmt.Errorf("failed to create leave record for %s: %w", employeeID, err)
		}
		result.AttendanceCreated++
	}

	slog.Info("Check-in cutoff completed",
		"date", target.Format("2006-01-02"),
		"created", result.AttendanceCreated,
		"violations_added", result.ViolationsAdded)
	return result, nil
}

// RunCheckOutCutoff implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RunCheckOutCutoff(ctx context.Context, targetDate time.Time) (attendance.CutoffResult, error) {
	target := dateOnly(targetDate)
	result := attendance.CutoffResult{TargetDate: target}

	working, err := a.calendar.IsWorkingDay(ctx, target)
	if err != nil {
		return result, err
	}
	if !working {
		result.Skipped = true
		result.SkipReason = "skipped: not a working day"
		return result, nil
	}

	cc, err := a.prepareCutoff(ctx, target)
	if err != nil {
		return result, err
	}

	for _, employeeID := range cc.eligible {
		record, ok := cc.records[employeeID]

		switch {
		case !ok:
			// Never touched attendance and the check-in cutoff did not run
			// for this date either.
			err := a.withTransaction(ctx, func(ctx context.Context) error {
				departmentID, err := a.employeeRepo.PrimaryDepartmentID(ctx, employeeID)
				if err != nil {
					return fmt.Errorf("failed to get department for %s: %w", employeeID, err)
				}
				created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
					Guid:         uuid.NewString(),
					EmployeeID:   employeeID,
					DepartmentID: departmentID,
					Date:         target,
					Status:       attendance.StatusAbsent,
				})
				if err != nil {
					return fmt.Errorf("failed to create absence record for %s: %w", employeeID, err)
				}
				result.AttendanceCreated++

				return a.addAbsentViolation(ctx, created.Guid, employeeID, cc.occurredAt, &result)
			})
			if err != nil {
				return result, err
			}
			result.AffectedEmployeeIDs = append(result.AffectedEmployeeIDs, employeeID)

		case record.CheckInTime == nil && record.CheckOutTime == nil:
			// A full no-show supersedes the partial violations.
			err := a.withTransaction(ctx, func(ctx context.Context) error {
				for _, t := range []attendance.ViolationType{attendance.ViolationNotCheckedIn, attendance.ViolationNotCheckedOut} {
					removed, err := a.ledger.RemoveActive(ctx, record.Guid, t)
					if err != nil {
						return err
					}
					result.ViolationsRemoved += int(removed)
				}

				record.Status = attendance.StatusAbsent
				if err := a.AttendanceRepository.Update(ctx, record); err != nil {
					return fmt.Errorf("failed to mark %s absent: %w", employeeID, err)
				}
				result.AttendanceUpdated++

				hasAbsent, err := a.ledger.HasActive(ctx, record.Guid, attendance.ViolationAbsent)
				if err != nil {
					return err
				}
				if hasAbsent {
					return nil
				}
				return a.addAbsentViolation(ctx, record.Guid, employeeID, cc.occurredAt, &result)
			})
			if err != nil {
				return result, err
			}
			result.AffectedEmployeeIDs = append(result.AffectedEmployeeIDs, employeeID)

		case record.CheckInTime != nil && record.CheckOutTime == nil:
			err := a.withTransaction(ctx, func(ctx context.Context) error {
				record.Status = attendance.StatusProblem
				if err := a.AttendanceRepository.Update(ctx, record); err != nil {
					return fmt.Errorf("failed to flag %s incomplete: %w", employeeID, err)
				}
				result.AttendanceUpdated++

				hasMissing, err := a.ledger.HasActive(ctx, record.Guid, attendance.ViolationNotCheckedOut)
				if err != nil {
					return err
				}
				if hasMissing {
					return nil
				}
				baseAmount, err := a.employeeRepo.AllowanceBase(ctx, employeeID)
				if err != nil {
					return fmt.Errorf("failed to get allowance base for %s: %w", employeeID, err)
				}
				if _, err := a.ledger.Add(ctx, attendance.AddViolationRequest{
					AttendanceID: record.Guid,
					Type:         attendance.ViolationNotCheckedOut,
					Source:       attendance.SourceCheckOut,
					BaseAmount:   baseAmount,
					OccurredAt:   cc.occurredAt,
					Notes:        "Did not check out before the check-out cutoff",
				}); err != nil {
					return err
				}
				result.ViolationsAdded++
				return nil
			})
			if err != nil {
				return result, err
			}
			result.AffectedEmployeeIDs = append(result.AffectedEmployeeIDs, employeeID)

		default:
			// Checked in and out; nothing to finalize.
		}
	}

	slog.Info("Check-out cutoff completed",
		"date", target.Format("2006-01-02"),
		"created", result.AttendanceCreated,
		"updated", result.AttendanceUpdated,
		"violations_added", result.ViolationsAdded,
		"violations_removed", result.ViolationsRemoved)
	return result, nil
}

func (a *AttendanceServiceImpl) addAbsentViolation(ctx context.Context, attendanceID, employeeID string, occurredAt time.Time, result *attendance.CutoffResult) error {
	baseAmount, err := a.employeeRepo.AllowanceBase(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get allowance base for %s: %w", employeeID, err)
	}
	if _, err := a.ledger.Add(ctx, attendance.AddViolationRequest{
		AttendanceID: attendanceID,
		Type:         attendance.ViolationAbsent,
		Source:       attendance.SourceSystem,
		BaseAmount:   baseAmount,
		OccurredAt:   occurredAt,
		Notes:        "Absent for the entire working day",
	}); err != nil {
		return err
	}
	result.ViolationsAdded++
	return nil
}
