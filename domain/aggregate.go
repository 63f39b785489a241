package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Aggregate is the interface for all event-sourced aggregates. The
// unexported replay method keeps the set of implementations closed to
// this package; outside callers go through the per-type replay factories.
type Aggregate interface {
	AggregateID() string
	AggregateType() string
	Version() int
	UncommittedEvents() []Event
	ClearUncommittedEvents()

	replayEvent(data EventData) error
}

// AggregateBase provides common aggregate functionality
type AggregateBase struct {
	id            string
	aggregateType string
	version       int
	uncommitted   []Event
	applier       func(data EventData) error
}

// newAggregateBase creates a new aggregate base bound to the concrete
// aggregate's applier function.
func newAggregateBase(id, aggregateType string, applier func(EventData) error) *AggregateBase {
	return &AggregateBase{
		id:            id,
		aggregateType: aggregateType,
		applier:       applier,
	}
}

// AggregateID returns the aggregate ID
func (a *AggregateBase) AggregateID() string {
	return a.id
}

// AggregateType returns the aggregate type tag
func (a *AggregateBase) AggregateType() string {
	return a.aggregateType
}

// Version returns the number of events applied so far, including
// uncommitted ones.
func (a *AggregateBase) Version() int {
	return a.version
}

// UncommittedEvents returns the events raised since the last save.
func (a *AggregateBase) UncommittedEvents() []Event {
	return a.uncommitted
}

// ClearUncommittedEvents clears the uncommitted event queue.
func (a *AggregateBase) ClearUncommittedEvents() {
	a.uncommitted = nil
}

// raise mutates state through the applier, bumps the version and queues
// the event for the next save. Command methods call this; replay never does.
func (a *AggregateBase) raise(data EventData) error {
	if a.applier == nil {
		return fmt.Errorf("applier is not set")
	}
	if err := a.applier(data); err != nil {
		return fmt.Errorf("failed to apply event: %w", err)
	}

	a.version++
	a.uncommitted = append(a.uncommitted, Event{
		ID:            uuid.New().String(),
		AggregateID:   a.id,
		AggregateType: a.aggregateType,
		Type:          data.EventType(),
		Version:       a.version,
		OccurredAt:    time.Now().UTC(),
		Data:          data,
	})
	return nil
}

// replayEvent mutates state and bumps the version without queueing
// anything; used exclusively by the replay engine.
func (a *AggregateBase) replayEvent(data EventData) error {
	if a.applier == nil {
		return fmt.Errorf("applier is not set")
	}
	if err := a.applier(data); err != nil {
		return fmt.Errorf("failed to apply event: %w", err)
	}
	a.version++
	return nil
}

// replay rebuilds a blank aggregate from its stored history: decode each
// record, apply in version order, leave the uncommitted queue empty.
func replay(agg Aggregate, records []StoredEvent) error {
	for _, rec := range records {
		data, err := DecodeEventData(rec.Type, rec.Data)
		if err != nil {
			return err
		}
		if err := agg.replayEvent(data); err != nil {
			return fmt.Errorf("failed to replay %s at version %d: %w", rec.Type, rec.Version, err)
		}
	}
	agg.ClearUncommittedEvents()
	return nil
}
