package domain

import (
	"fmt"
	"time"
)

// MonthlyPeriodPatternEvent is the closed set of events a period pattern can raise.
type MonthlyPeriodPatternEvent interface {
	EventData
	isMonthlyPeriodPatternEvent()
}

// MonthlyPeriodPatternCreatedEvent records a tenant's fiscal-month pattern.
type MonthlyPeriodPatternCreatedEvent struct {
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	StartDay int    `json:"start_day"`
}

func (*MonthlyPeriodPatternCreatedEvent) EventType() string { return MonthlyPeriodPatternCreated }
func (*MonthlyPeriodPatternCreatedEvent) isMonthlyPeriodPatternEvent() {}

// MonthlyPeriodPatternUpdatedEvent records a pattern change.
type MonthlyPeriodPatternUpdatedEvent struct {
	Name     string `json:"name"`
	StartDay int    `json:"start_day"`
}

func (*MonthlyPeriodPatternUpdatedEvent) EventType() string { return MonthlyPeriodPatternUpdated }
func (*MonthlyPeriodPatternUpdatedEvent) isMonthlyPeriodPatternEvent() {}

// MonthlyPeriodPatternDeletedEvent marks the pattern as logically deleted.
type MonthlyPeriodPatternDeletedEvent struct{}

func (*MonthlyPeriodPatternDeletedEvent) EventType() string { return MonthlyPeriodPatternDeleted }
func (*MonthlyPeriodPatternDeletedEvent) isMonthlyPeriodPatternEvent() {}

// MonthlyPeriodPatternState is the replay-derived state of a period pattern.
type MonthlyPeriodPatternState struct {
	TenantID string
	Name     string
	StartDay int
	Deleted  bool
}

// MonthlyPeriodPattern is the aggregate defining where a tenant's fiscal
// month begins. StartDay 1 means calendar months; StartDay 21 means the
// 21st of one month through the 20th of the next.
type MonthlyPeriodPattern struct {
	*AggregateBase
	State MonthlyPeriodPatternState
}

func newBlankMonthlyPeriodPattern(id string) *MonthlyPeriodPattern {
	p := &MonthlyPeriodPattern{}
	p.AggregateBase = newAggregateBase(id, AggregateTypeMonthlyPeriodPattern, p.applyEvent)
	return p
}

// NewMonthlyPeriodPattern creates a new period pattern aggregate.
func NewMonthlyPeriodPattern(id, tenantID, name string, startDay int) (*MonthlyPeriodPattern, error) {
	if startDay < 1 || startDay > 28 {
		return nil, fmt.Errorf("start day must be between 1 and 28, got %d", startDay)
	}
	p := newBlankMonthlyPeriodPattern(id)
	err := p.raise(&MonthlyPeriodPatternCreatedEvent{
		TenantID: tenantID,
		Name:     name,
		StartDay: startDay,
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ReplayMonthlyPeriodPattern rebuilds a pattern from its stored event history.
func ReplayMonthlyPeriodPattern(id string, records []StoredEvent) (*MonthlyPeriodPattern, error) {
	p := newBlankMonthlyPeriodPattern(id)
	if err := replay(p, records); err != nil {
		return nil, err
	}
	return p, nil
}

// Update changes the mutable fields of a non-deleted pattern.
func (p *MonthlyPeriodPattern) Update(name string, startDay int) error {
	if p.State.Deleted {
		return ErrAggregateDeleted
	}
	if startDay < 1 || startDay > 28 {
		return fmt.Errorf("start day must be between 1 and 28, got %d", startDay)
	}
	return p.raise(&MonthlyPeriodPatternUpdatedEvent{Name: name, StartDay: startDay})
}

// Delete marks the pattern as logically deleted.
func (p *MonthlyPeriodPattern) Delete() error {
	if p.State.Deleted {
		return ErrAggregateDeleted
	}
	return p.raise(&MonthlyPeriodPatternDeletedEvent{})
}

// PeriodFor returns the inclusive date bounds of the fiscal month that
// contains the given date.
func (p *MonthlyPeriodPattern) PeriodFor(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), p.State.StartDay, 0, 0, 0, 0, time.UTC)
	if date.Day() < p.State.StartDay {
		start = start.AddDate(0, -1, 0)
	}
	end := start.AddDate(0, 1, -1)
	return start, end
}

func (p *MonthlyPeriodPattern) applyEvent(data EventData) error {
	switch ev := data.(type) {
	case *MonthlyPeriodPatternCreatedEvent:
		p.State.TenantID = ev.TenantID
		p.State.Name = ev.Name
		p.State.StartDay = ev.StartDay

	case *MonthlyPeriodPatternUpdatedEvent:
		p.State.Name = ev.Name
		p.State.StartDay = ev.StartDay

	case *MonthlyPeriodPatternDeletedEvent:
		p.State.Deleted = true

	default:
		return fmt.Errorf("%w: %T for monthly_period_pattern", ErrUnknownEventType, data)
	}
	return nil
}
