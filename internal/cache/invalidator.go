package cache

import (
	"context"

	"example.com/worklog/domain"
)

// CalendarInvalidator is a post-save hook that drops cached calendar
// views touched by work-log or absence changes. Invalidation failures
// are reported to the hook runner, which logs and swallows them.
type CalendarInvalidator struct {
	cache *CalendarCache
}

// NewCalendarInvalidator creates the invalidation hook.
func NewCalendarInvalidator(cache *CalendarCache) *CalendarInvalidator {
	return &CalendarInvalidator{cache: cache}
}

// Name identifies the hook in logs.
func (h *CalendarInvalidator) Name() string { return "calendar-cache" }

// AfterSave invalidates every month the batch of events touched. An
// update that moves a record across months carries its previous date,
// so both the old and the new month are dropped.
func (h *CalendarInvalidator) AfterSave(ctx context.Context, agg domain.Aggregate, events []domain.Event) error {
	memberID, months := invalidationTargets(agg, events)
	if memberID == "" {
		return nil
	}

	var firstErr error
	for month := range months {
		if err := h.cache.Invalidate(ctx, memberID, month); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// invalidationTargets collects the member and the set of year-month keys
// a save touched: the aggregate's current date plus every date an event
// in the batch referenced, including the previous side of a move.
func invalidationTargets(agg domain.Aggregate, events []domain.Event) (string, map[string]struct{}) {
	var memberID string
	dates := map[string]struct{}{}

	switch a := agg.(type) {
	case *domain.WorkLogEntry:
		memberID = a.State.MemberID
		dates[a.State.Date] = struct{}{}
	case *domain.Absence:
		memberID = a.State.MemberID
		dates[a.State.Date] = struct{}{}
	default:
		return "", nil
	}

	for _, event := range events {
		switch data := event.Data.(type) {
		case *domain.WorkLogEntryCreatedEvent:
			dates[data.Date] = struct{}{}
		case *domain.WorkLogEntryUpdatedEvent:
			dates[data.Date] = struct{}{}
			dates[data.PreviousDate] = struct{}{}
		case *domain.AbsenceCreatedEvent:
			dates[data.Date] = struct{}{}
		case *domain.AbsenceUpdatedEvent:
			dates[data.Date] = struct{}{}
			dates[data.PreviousDate] = struct{}{}
		}
	}

	months := map[string]struct{}{}
	for date := range dates {
		if len(date) < 7 {
			continue
		}
		months[date[:7]] = struct{}{}
	}
	return memberID, months
}
