package timesheet

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/comment"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/event"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// DayInvalidated is the payload published when cached days become stale.
type DayInvalidated struct {
	EmployeeID string `json:"employee_id,omitempty"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// publishTimeout bounds a bus publish once the request is gone.
const publishTimeout = 3 * time.Second

// InvalidationBus carries day invalidations to every API instance. Each instance hands
// received messages back to ApplyInvalidation.
type InvalidationBus interface {
	Publish(ctx context.Context, msg DayInvalidated) error
}

type TimesheetServiceImpl struct {
	source      timesheet.PunchSource
	names       timesheet.NameResolver
	manualRepo  punch.ManualPunchRepository
	ignoredRepo punch.IgnoredPunchRepository
	eventRepo   event.EventRepository
	commentRepo comment.CommentRepository
	cache       *cache.DayCache[timesheet.ListDaysResponse]
	hub         *sse.Hub
	bus         InvalidationBus
	loc         *time.Location
	now         func() time.Time
}

func NewTimesheetService(
	source timesheet.PunchSource,
	names timesheet.NameResolver,
	manualRepo punch.ManualPunchRepository,
	ignoredRepo punch.IgnoredPunchRepository,
	eventRepo event.EventRepository,
	commentRepo comment.CommentRepository,
	dayCache *cache.DayCache[timesheet.ListDaysResponse],
	hub *sse.Hub,
	loc *time.Location,
) *TimesheetServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &TimesheetServiceImpl{
		source:      source,
		names:       names,
		manualRepo:  manualRepo,
		ignoredRepo: ignoredRepo,
		eventRepo:   eventRepo,
		commentRepo: commentRepo,
		cache:       dayCache,
		hub:         hub,
		loc:         loc,
		now:         time.Now,
	}
}

// UseBus routes invalidations through bus instead of applying them locally.
func (s *TimesheetServiceImpl) UseBus(bus InvalidationBus) {
	s.bus = bus
}

// Today returns the current calendar date in the service location.
func (s *TimesheetServiceImpl) Today() string {
	return CalendarDay(s.now(), s.loc).Format(validator.DateLayout)
}

// GetDays implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetDays(ctx context.Context, filter timesheet.DayFilter) (timesheet.ListDaysResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.ListDaysResponse{}, err
	}

	key := filter.CacheKey()
	var generation uint64
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}
		generation = s.cache.Generation()
	}

	start, _ := validator.IsValidDate(filter.StartDate)
	end, _ := validator.IsValidDate(filter.EndDate)

	var (
		vendorPunches []punch.Punch
		manualPunches []punch.ManualPunch
		markers       []punch.IgnoredMarker
		events        []event.Event
		comments      []comment.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vendorPunches, err = s.source.FetchPunches(gctx, timesheet.PunchQuery{
			Start:        start,
			End:          end,
			EmployeeID:   filter.EmployeeID,
			DeviceSerial: filter.DeviceSerial,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", timesheet.ErrUpstreamUnavailable, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		manualPunches, err = s.manualRepo.ListByRange(gctx, start, end, filter.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to list manual punches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		markers, err = s.ignoredRepo.ListByRange(gctx, start, end, filter.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to list ignored punches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = s.eventRepo.ListOverlapping(gctx, start, end, filter.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		comments, err = s.commentRepo.ListByRange(gctx, start, end, filter.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return timesheet.ListDaysResponse{}, err
	}

	manual := make([]punch.Punch, 0, len(manualPunches))
	for _, m := range manualPunches {
		if filter.DeviceSerial != nil && *filter.DeviceSerial != punch.ManualSource {
			break
		}
		manual = append(manual, m.ToPunch(s.loc))
	}

	result := Aggregate(vendorPunches, manual, markers, s.loc)
	for _, p := range result.Unparseable {
		slog.Warn("Skipping punch with unparseable timestamp",
			"employee_id", p.EmployeeID, "device_serial", p.DeviceSerial, "raw", p.Raw)
	}

	overlay := NewOverlayIndex(events)
	days := inRange(result.Days, start, end)
	if filter.DeviceSerial == nil {
		days = addEventOnlyDays(days, overlay, start, end)
	}
	attachComments(days, comments)
	for i := range days {
		days[i].OverlayEvent = overlay.For(days[i].EmployeeID, days[i].Date)
	}

	s.resolveNames(ctx, days)

	resp := timesheet.ListDaysResponse{
		StartDate:   filter.StartDate,
		EndDate:     filter.EndDate,
		Days:        make([]timesheet.DayResponse, 0, len(days)),
		GeneratedAt: s.now().Format(time.RFC3339),
	}
	for _, b := range days {
		resp.Days = append(resp.Days, s.toDayResponse(b))
	}
	for _, p := range result.Unparseable {
		resp.Unparseable = append(resp.Unparseable, timesheet.UnparseablePunch{
			EmployeeID:   p.EmployeeID,
			DeviceSerial: p.DeviceSerial,
			Raw:          p.Raw,
		})
	}

	if s.cache != nil {
		entry := cache.Entry[timesheet.ListDaysResponse]{Start: start, End: end, Value: resp}
		if filter.EmployeeID != nil {
			entry.EmployeeID = *filter.EmployeeID
		}
		if !s.cache.PutIfFresh(key, entry, generation) {
			slog.Debug("Days invalidated while computing, result not cached", "key", key)
		}
	}

	return resp, nil
}

// InvalidateDays implements timesheet.Invalidator.
func (s *TimesheetServiceImpl) InvalidateDays(ctx context.Context, employeeID string, start, end time.Time) {
	msg := DayInvalidated{
		EmployeeID: employeeID,
		StartDate:  DateOnly(start).Format(validator.DateLayout),
		EndDate:    DateOnly(end).Format(validator.DateLayout),
	}
	if s.bus != nil {
		publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		err := s.bus.Publish(publishCtx, msg)
		cancel()
		if err == nil {
			return
		}
		slog.Error("Failed to publish day invalidation, applying locally", "employee_id", employeeID, "error", err)
	}
	s.ApplyInvalidation(msg)
}

// ApplyInvalidation drops the cached day lists covered by msg and notifies stream subscribers.
func (s *TimesheetServiceImpl) ApplyInvalidation(msg DayInvalidated) {
	start, okStart := validator.IsValidDate(msg.StartDate)
	end, okEnd := validator.IsValidDate(msg.EndDate)
	if !okStart || !okEnd {
		slog.Warn("Ignoring malformed day invalidation", "start_date", msg.StartDate, "end_date", msg.EndDate)
		return
	}
	if s.cache != nil {
		removed := s.cache.InvalidateDays(msg.EmployeeID, start, end)
		slog.Debug("Invalidated cached days", "employee_id", msg.EmployeeID, "removed", removed)
	}
	if s.hub != nil {
		s.hub.Publish(sse.TopicTimesheet, sse.Event{
			Event: "day.invalidated",
			Data:  msg,
		})
	}
}

// resolveNames fills display names with one batched lookup. A failed lookup keeps the
// placeholder; names are display data and never fail the day list.
func (s *TimesheetServiceImpl) resolveNames(ctx context.Context, days []timesheet.DayBucket) {
	seen := make(map[string]struct{})
	var ids []string
	for _, d := range days {
		if _, ok := seen[d.EmployeeID]; !ok {
			seen[d.EmployeeID] = struct{}{}
			ids = append(ids, d.EmployeeID)
		}
	}
	sort.Strings(ids)

	names := map[string]string{}
	if len(ids) > 0 && s.names != nil {
		resolved, err := s.names.ResolveNames(ctx, ids)
		if err != nil {
			slog.Warn("Failed to resolve employee names", "count", len(ids), "error", err)
		} else {
			names = resolved
		}
	}

	for i := range days {
		if name, ok := names[days[i].EmployeeID]; ok && name != "" {
			days[i].DisplayName = name
		} else {
			days[i].DisplayName = timesheet.NameNotFound
		}
	}
}

func (s *TimesheetServiceImpl) toDayResponse(b timesheet.DayBucket) timesheet.DayResponse {
	resp := timesheet.DayResponse{
		EmployeeID:  b.EmployeeID,
		PersonID:    b.PersonID,
		DisplayName: b.DisplayName,
		Date:        b.ISODate(),
		Status:      Classify(b),
		WorkedHours: FormatWorked(b),
		Punches:     make([]timesheet.PunchResponse, 0, len(b.Punches)),
	}
	for _, p := range b.Punches {
		local := p.Timestamp.In(s.loc)
		resp.Punches = append(resp.Punches, timesheet.PunchResponse{
			ID:             p.ID,
			Time:           local.Format(validator.ClockLayout),
			Timestamp:      local.Format(time.RFC3339),
			DeviceSerial:   p.DeviceSerial,
			SequenceNumber: p.SequenceNumber,
			Manual:         p.IsManual(),
		})
	}
	for _, c := range b.Comments {
		resp.Comments = append(resp.Comments, timesheet.CommentResponse{
			ID:        c.ID,
			Text:      c.Text,
			CreatedBy: c.CreatedBy,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		})
	}
	if e := b.OverlayEvent; e != nil {
		resp.OverlayEvent = &timesheet.EventLabel{
			ID:        e.ID,
			EventType: e.EventType,
			Category:  string(e.Category),
			StartDate: e.StartDate.Format(validator.DateLayout),
			EndDate:   e.EndDate.Format(validator.DateLayout),
		}
	}
	return resp
}

func inRange(days []timesheet.DayBucket, start, end time.Time) []timesheet.DayBucket {
	out := days[:0]
	for _, d := range days {
		if !d.Date.Before(start) && !d.Date.After(end) {
			out = append(out, d)
		}
	}
	return out
}

// addEventOnlyDays opens an empty day for every event-covered day that has no punches,
// so an employee on vacation still shows the vacation status.
func addEventOnlyDays(days []timesheet.DayBucket, overlay OverlayIndex, start, end time.Time) []timesheet.DayBucket {
	present := make(map[dayKey]struct{}, len(days))
	for _, d := range days {
		present[dayKey{employeeID: d.EmployeeID, day: d.Date}] = struct{}{}
	}

	added := false
	for _, employeeID := range overlay.Employees() {
		for _, day := range overlay.Days(employeeID, start, end) {
			if _, ok := present[dayKey{employeeID: employeeID, day: day}]; ok {
				continue
			}
			days = append(days, timesheet.DayBucket{
				EmployeeID: employeeID,
				PersonID:   employeeID,
				Date:       day,
				Punches:    []punch.Punch{},
			})
			added = true
		}
	}
	if added {
		SortBuckets(days)
	}
	return days
}

func attachComments(days []timesheet.DayBucket, comments []comment.Comment) {
	byDay := make(map[dayKey][]comment.Comment, len(comments))
	for _, c := range comments {
		k := dayKey{employeeID: c.EmployeeID, day: DateOnly(c.Date)}
		byDay[k] = append(byDay[k], c)
	}
	for i := range days {
		list := byDay[dayKey{employeeID: days[i].EmployeeID, day: days[i].Date}]
		sort.SliceStable(list, func(a, b int) bool { return list[a].CreatedAt.Before(list[b].CreatedAt) })
		days[i].Comments = list
	}
}
