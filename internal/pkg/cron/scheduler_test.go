package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== SCHEDULER TESTS =====

func TestScheduler_AddJobRejectsZeroInterval(t *testing.T) {
	s := NewScheduler(context.Background())

	err := s.AddJob(Job{Name: "broken", Fn: func(ctx context.Context) error { return nil }})

	assert.Error(t, err)
}

func TestScheduler_RunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(context.Background())
	var runs atomic.Int32
	ran := make(chan struct{}, 1)
	require.NoError(t, s.AddJob(Job{Name: "tick", Interval: time.Hour, Fn: func(ctx context.Context) error {
		runs.Add(1)
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}}))

	s.Start()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_AddJobAfterStart(t *testing.T) {
	s := NewScheduler(context.Background())
	s.Start()
	defer s.Stop()

	err := s.AddJob(Job{Name: "late", Interval: time.Hour, Fn: func(ctx context.Context) error { return nil }})

	assert.ErrorContains(t, err, "already started")
}

func TestScheduler_RunOnceRecoversPanics(t *testing.T) {
	s := NewScheduler(context.Background())
	calls := 0
	require.NoError(t, s.AddJob(Job{Name: "panics", Interval: time.Hour, Fn: func(ctx context.Context) error {
		panic("boom")
	}}))
	require.NoError(t, s.AddJob(Job{Name: "fine", Interval: time.Hour, Fn: func(ctx context.Context) error {
		calls++
		return nil
	}}))

	err := s.runOnce(context.Background())

	assert.ErrorContains(t, err, "panic: boom")
	assert.Equal(t, 1, calls)
}

func TestScheduler_RunHonorsTimeout(t *testing.T) {
	s := NewScheduler(context.Background())
	require.NoError(t, s.AddJob(Job{Name: "slow", Interval: time.Hour, Timeout: 10 * time.Millisecond, Fn: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}))

	err := s.runOnce(context.Background())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// ===== PREFETCH TESTS =====

type fakeDays struct {
	filters []timesheet.DayFilter
	err     error
}

func (f *fakeDays) GetDays(ctx context.Context, filter timesheet.DayFilter) (timesheet.ListDaysResponse, error) {
	f.filters = append(f.filters, filter)
	return timesheet.ListDaysResponse{}, f.err
}

func (f *fakeDays) Today() string { return "2025-01-10" }

func TestPrefetchToday(t *testing.T) {
	days := &fakeDays{}
	jobs := NewTimesheetJobs(days, time.Minute)

	require.NoError(t, jobs.PrefetchToday(context.Background()))

	require.Len(t, days.filters, 1)
	assert.Equal(t, "2025-01-10", days.filters[0].StartDate)
	assert.Equal(t, "2025-01-10", days.filters[0].EndDate)
	assert.Nil(t, days.filters[0].EmployeeID)
}

func TestPrefetchToday_Error(t *testing.T) {
	days := &fakeDays{err: errors.New("vendor down")}
	jobs := NewTimesheetJobs(days, time.Minute)
	s := NewScheduler(context.Background())
	require.NoError(t, jobs.RegisterJobs(s))

	err := s.runOnce(context.Background())

	assert.ErrorContains(t, err, "prefetch 2025-01-10")
	assert.ErrorContains(t, err, "vendor down")
}
