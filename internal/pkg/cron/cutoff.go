package cron

import (
	"context"
	"time"

	"github.com/katalis-hr/attendance-backend-go/internal/domain/scheduler"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/workday"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/clock"
)

// cutoffJobInterval is how often the trigger conditions are re-evaluated.
// Duplicate fires are absorbed by the execution log, which records them as
// SKIPPED without re-running the job.
const cutoffJobInterval = 15 * time.Minute

// CutoffJobs fires the attendance cutoff jobs once their boundaries pass:
// the check-in cutoff after the nominal end of the working day, the
// check-out cutoff after the attendance window closes.
type CutoffJobs struct {
	schedulerService scheduler.Service
	calendar         workday.Calendar
	clock            clock.Clock
}

func NewCutoffJobs(schedulerService scheduler.Service, calendar workday.Calendar, clk clock.Clock) *CutoffJobs {
	return &CutoffJobs{
		schedulerService: schedulerService,
		calendar:         calendar,
		clock:            clk,
	}
}

func (j *CutoffJobs) RegisterJobs(s *Scheduler) {
	s.AddJob("check_in_cutoff", cutoffJobInterval, j.TriggerCheckInCutoff)
	s.AddJob("check_out_cutoff", cutoffJobInterval, j.TriggerCheckOutCutoff)
}

func (j *CutoffJobs) TriggerCheckInCutoff(ctx context.Context) error {
	return j.trigger(ctx, scheduler.JobCheckInCutoff, func(hours workday.Hours, today time.Time, loc *time.Location) time.Time {
		return hours.End.On(today, loc)
	})
}

func (j *CutoffJobs) TriggerCheckOutCutoff(ctx context.Context) error {
	return j.trigger(ctx, scheduler.JobCheckOutCutoff, func(hours workday.Hours, today time.Time, loc *time.Location) time.Time {
		return hours.Close.On(today, loc)
	})
}

func (j *CutoffJobs) trigger(ctx context.Context, jobName string, boundary func(workday.Hours, time.Time, *time.Location) time.Time) error {
	nowUTC, err := j.clock.Now(ctx)
	if err != nil {
		return err
	}
	loc, err := j.calendar.Location(ctx)
	if err != nil {
		return err
	}
	nowLocal := nowUTC.In(loc)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)

	working, err := j.calendar.IsWorkingDay(ctx, today)
	if err != nil {
		return err
	}
	if !working {
		return nil
	}

	hours, err := j.calendar.WorkingHours(ctx, today)
	if err != nil {
		return err
	}
	if nowLocal.Before(boundary(hours, today, loc)) {
		return nil
	}

	_, err = j.schedulerService.RunJob(ctx, scheduler.RunJobRequest{JobName: jobName})
	return err
}
