package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

// DayLister is the part of the timesheet service the prefetch job needs
type DayLister interface {
	GetDays(ctx context.Context, filter timesheet.DayFilter) (timesheet.ListDaysResponse, error)
	Today() string
}

type TimesheetJobs struct {
	days     DayLister
	interval time.Duration
}

func NewTimesheetJobs(days DayLister, interval time.Duration) *TimesheetJobs {
	return &TimesheetJobs{days: days, interval: interval}
}

func (j *TimesheetJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob(Job{
		Name:     "prefetch_today",
		Interval: j.interval,
		Fn:       j.PrefetchToday,
	})
}

// PrefetchToday loads today's day list so the first screen load hits the cache.
func (j *TimesheetJobs) PrefetchToday(ctx context.Context) error {
	today := j.days.Today()

	result, err := j.days.GetDays(ctx, timesheet.DayFilter{StartDate: today, EndDate: today})
	if err != nil {
		return fmt.Errorf("prefetch %s: %w", today, err)
	}

	slog.Info("Cron: Prefetched today's timesheet", "date", today, "days", len(result.Days))
	return nil
}
