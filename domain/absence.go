package domain

import (
	"fmt"
)

// AbsenceEvent is the closed set of events an absence can raise.
type AbsenceEvent interface {
	EventData
	isAbsenceEvent()
}

// AbsenceCreatedEvent records a new absence for a member and date.
type AbsenceCreatedEvent struct {
	TenantID string `json:"tenant_id"`
	MemberID string `json:"member_id"`
	Date     string `json:"date"`
	Kind     string `json:"kind"`
	Reason   string `json:"reason"`
}

func (*AbsenceCreatedEvent) EventType() string { return AbsenceCreated }
func (*AbsenceCreatedEvent) isAbsenceEvent()   {}

// AbsenceUpdatedEvent records a change to an existing absence.
// PreviousDate is the date before the change; consumers that key on the
// date (the calendar cache) need both sides of a move.
type AbsenceUpdatedEvent struct {
	Date         string `json:"date"`
	PreviousDate string `json:"previous_date"`
	Kind         string `json:"kind"`
	Reason       string `json:"reason"`
}

func (*AbsenceUpdatedEvent) EventType() string { return AbsenceUpdated }
func (*AbsenceUpdatedEvent) isAbsenceEvent()   {}

// AbsenceDeletedEvent marks the absence as logically deleted.
type AbsenceDeletedEvent struct{}

func (*AbsenceDeletedEvent) EventType() string { return AbsenceDeleted }
func (*AbsenceDeletedEvent) isAbsenceEvent()   {}

// AbsenceState is the replay-derived state of an absence.
type AbsenceState struct {
	TenantID string
	MemberID string
	Date     string
	Kind     string
	Reason   string
	Deleted  bool
}

// Absence is the aggregate for a full-day absence record.
type Absence struct {
	*AggregateBase
	State AbsenceState
}

func newBlankAbsence(id string) *Absence {
	a := &Absence{}
	a.AggregateBase = newAggregateBase(id, AggregateTypeAbsence, a.applyEvent)
	return a
}

// NewAbsence creates a new absence aggregate.
func NewAbsence(id, tenantID, memberID, date, kind, reason string) (*Absence, error) {
	a := newBlankAbsence(id)
	err := a.raise(&AbsenceCreatedEvent{
		TenantID: tenantID,
		MemberID: memberID,
		Date:     date,
		Kind:     kind,
		Reason:   reason,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ReplayAbsence rebuilds an absence from its stored event history.
func ReplayAbsence(id string, records []StoredEvent) (*Absence, error) {
	a := newBlankAbsence(id)
	if err := replay(a, records); err != nil {
		return nil, err
	}
	return a, nil
}

// Update changes the mutable fields of a non-deleted absence.
func (a *Absence) Update(date, kind, reason string) error {
	if a.State.Deleted {
		return ErrAggregateDeleted
	}
	return a.raise(&AbsenceUpdatedEvent{
		Date:         date,
		PreviousDate: a.State.Date,
		Kind:         kind,
		Reason:       reason,
	})
}

// Delete marks the absence as logically deleted.
func (a *Absence) Delete() error {
	if a.State.Deleted {
		return ErrAggregateDeleted
	}
	return a.raise(&AbsenceDeletedEvent{})
}

func (a *Absence) applyEvent(data EventData) error {
	switch ev := data.(type) {
	case *AbsenceCreatedEvent:
		a.State.TenantID = ev.TenantID
		a.State.MemberID = ev.MemberID
		a.State.Date = ev.Date
		a.State.Kind = ev.Kind
		a.State.Reason = ev.Reason

	case *AbsenceUpdatedEvent:
		a.State.Date = ev.Date
		a.State.Kind = ev.Kind
		a.State.Reason = ev.Reason

	case *AbsenceDeletedEvent:
		a.State.Deleted = true

	default:
		return fmt.Errorf("%w: %T for absence", ErrUnknownEventType, data)
	}
	return nil
}
