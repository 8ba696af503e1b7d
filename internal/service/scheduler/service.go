package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalis-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/scheduler"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/workday"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/clock"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/validator"
)

// jobNames are the job identifiers RunJob dispatches.
var jobNames = []string{scheduler.JobCheckInCutoff, scheduler.JobCheckOutCutoff}

type SchedulerServiceImpl struct {
	logRepo    scheduler.LogRepository
	attendance attendance.AttendanceService
	calendar   workday.Calendar
	clock      clock.Clock
}

func NewSchedulerService(
	logRepo scheduler.LogRepository,
	attendanceService attendance.AttendanceService,
	calendar workday.Calendar,
	clk clock.Clock,
) *SchedulerServiceImpl {
	return &SchedulerServiceImpl{
		logRepo:    logRepo,
		attendance: attendanceService,
		calendar:   calendar,
		clock:      clk,
	}
}

// RunJob executes a named cutoff job exactly once per (job name, target
// date). A second attempt for the same key records a SKIPPED log row and
// performs no attendance side effects.
func (s *SchedulerServiceImpl) RunJob(ctx context.Context, req scheduler.RunJobRequest) (scheduler.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return scheduler.LogResponse{}, err
	}
	if !validator.IsInSlice(req.JobName, jobNames) {
		return scheduler.LogResponse{}, scheduler.ErrUnknownJob
	}

	nowUTC, err := s.clock.Now(ctx)
	if err != nil {
		return scheduler.LogResponse{}, err
	}
	loc, err := s.calendar.Location(ctx)
	if err != nil {
		return scheduler.LogResponse{}, err
	}

	scheduledAt := nowUTC
	if req.ScheduledAt != nil {
		scheduledAt = *req.ScheduledAt
	}
	local := scheduledAt.In(loc)
	targetDate := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	// Duplicate guard: a completed attempt for this key short-circuits.
	completed, err := s.logRepo.FindCompleted(ctx, req.JobName, targetDate)
	if err != nil {
		return scheduler.LogResponse{}, fmt.Errorf("failed to check job history: %w", err)
	}
	if completed != nil {
		msg := fmt.Sprintf("skipped: %s already ran for %s with status %s (log #%d)",
			req.JobName, targetDate.Format("2006-01-02"), completed.Status, completed.ID)
		entry, err := s.logRepo.Create(ctx, scheduler.ExecutionLog{
			JobName:     req.JobName,
			ScheduledAt: &scheduledAt,
			ExecutedAt:  &nowUTC,
			Status:      scheduler.StatusSkipped,
			Message:     &msg,
		})
		if err != nil {
			return scheduler.LogResponse{}, fmt.Errorf("failed to record skipped run: %w", err)
		}
		slog.Info("Scheduler job skipped", "job", req.JobName, "target_date", targetDate.Format("2006-01-02"))
		return mapLogToResponse(entry), nil
	}

	entry, err := s.logRepo.Create(ctx, scheduler.ExecutionLog{
		JobName:     req.JobName,
		ScheduledAt: &scheduledAt,
		Status:      scheduler.StatusNotRun,
	})
	if err != nil {
		return scheduler.LogResponse{}, fmt.Errorf("failed to create execution log: %w", err)
	}

	result, runErr := s.dispatch(ctx, req.JobName, targetDate)

	executedAt, clockErr := s.clock.Now(ctx)
	if clockErr != nil {
		executedAt = nowUTC
	}
	entry.ExecutedAt = &executedAt

	if runErr != nil {
		msg := fmt.Sprintf("failed: %v", runErr)
		entry.Status = scheduler.StatusFailed
		entry.Message = &msg
		if updateErr := s.logRepo.Update(ctx, entry); updateErr != nil {
			slog.Error("Failed to record job failure", "job", req.JobName, "error", updateErr)
		}
		slog.Error("Scheduler job failed", "job", req.JobName, "target_date", targetDate.Format("2006-01-02"), "error", runErr)
		return mapLogToResponse(entry), runErr
	}

	msg := summarize(result)
	entry.Status = scheduler.StatusSuccess
	entry.Message = &msg
	if err := s.logRepo.Update(ctx, entry); err != nil {
		return scheduler.LogResponse{}, fmt.Errorf("failed to record job success: %w", err)
	}
	slog.Info("Scheduler job completed", "job", req.JobName, "target_date", targetDate.Format("2006-01-02"), "summary", msg)
	return mapLogToResponse(entry), nil
}

func (s *SchedulerServiceImpl) dispatch(ctx context.Context, jobName string, targetDate time.Time) (attendance.CutoffResult, error) {
	switch jobName {
	case scheduler.JobCheckInCutoff:
		return s.attendance.RunCheckInCutoff(ctx, targetDate)
	case scheduler.JobCheckOutCutoff:
		return s.attendance.RunCheckOutCutoff(ctx, targetDate)
	default:
		return attendance.CutoffResult{}, scheduler.ErrUnknownJob
	}
}

func summarize(result attendance.CutoffResult) string {
	if result.Skipped {
		return result.SkipReason
	}
	return fmt.Sprintf("completed: %d attendance created, %d updated, %d violations added, %d removed",
		result.AttendanceCreated, result.AttendanceUpdated, result.ViolationsAdded, result.ViolationsRemoved)
}

func (s *SchedulerServiceImpl) ListLogs(ctx context.Context, filter scheduler.LogFilter) (scheduler.ListLogsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	logs, total, err := s.logRepo.List(ctx, filter)
	if err != nil {
		return scheduler.ListLogsResponse{}, fmt.Errorf("failed to list execution logs: %w", err)
	}

	responses := make([]scheduler.LogResponse, 0, len(logs))
	for _, entry := range logs {
		responses = append(responses, mapLogToResponse(entry))
	}
	return scheduler.ListLogsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Logs:       responses,
	}, nil
}

func (s *SchedulerServiceImpl) GetLog(ctx context.Context, id int64) (scheduler.LogResponse, error) {
	entry, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		return scheduler.LogResponse{}, err
	}
	return mapLogToResponse(entry), nil
}

func mapLogToResponse(entry scheduler.ExecutionLog) scheduler.LogResponse {
	return scheduler.LogResponse{
		ID:          entry.ID,
		JobName:     entry.JobName,
		Status:      entry.Status,
		ScheduledAt: entry.ScheduledAt,
		ExecutedAt:  entry.ExecutedAt,
		Message:     entry.Message,
		CreatedAt:   entry.CreatedAt,
	}
}
