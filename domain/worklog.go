package domain

import (
	"fmt"
)

// WorkLogStatus is the lifecycle status of a work-log entry.
type WorkLogStatus string

const (
	WorkLogStatusDraft     WorkLogStatus = "DRAFT"
	WorkLogStatusSubmitted WorkLogStatus = "SUBMITTED"
	WorkLogStatusApproved  WorkLogStatus = "APPROVED"
)

// WorkLogEntryEvent is the closed set of events a work-log entry can raise.
type WorkLogEntryEvent interface {
	EventData
	isWorkLogEntryEvent()
}

// WorkLogEntryCreatedEvent records the initial entry fields.
type WorkLogEntryCreatedEvent struct {
	TenantID  string  `json:"tenant_id"`
	MemberID  string  `json:"member_id"`
	ProjectID string  `json:"project_id"`
	Date      string  `json:"date"`
	Hours     float64 `json:"hours"`
	Note      string  `json:"note"`
}

func (*WorkLogEntryCreatedEvent) EventType() string    { return WorkLogEntryCreated }
func (*WorkLogEntryCreatedEvent) isWorkLogEntryEvent() {}

// WorkLogEntryUpdatedEvent records a field change on a draft entry.
// PreviousDate is the date before the change; consumers that key on the
// date (the calendar cache) need both sides of a move.
type WorkLogEntryUpdatedEvent struct {
	ProjectID    string  `json:"project_id"`
	Date         string  `json:"date"`
	PreviousDate string  `json:"previous_date"`
	Hours        float64 `json:"hours"`
	Note         string  `json:"note"`
}

func (*WorkLogEntryUpdatedEvent) EventType() string    { return WorkLogEntryUpdated }
func (*WorkLogEntryUpdatedEvent) isWorkLogEntryEvent() {}

// WorkLogEntryStatusChangedEvent records a status transition.
type WorkLogEntryStatusChangedEvent struct {
	Status string `json:"status"`
}

func (*WorkLogEntryStatusChangedEvent) EventType() string    { return WorkLogEntryStatusChanged }
func (*WorkLogEntryStatusChangedEvent) isWorkLogEntryEvent() {}

// WorkLogEntryDeletedEvent marks the entry as logically deleted.
type WorkLogEntryDeletedEvent struct{}

func (*WorkLogEntryDeletedEvent) EventType() string    { return WorkLogEntryDeleted }
func (*WorkLogEntryDeletedEvent) isWorkLogEntryEvent() {}

// WorkLogEntryState is the replay-derived state of a work-log entry.
type WorkLogEntryState struct {
	TenantID  string
	MemberID  string
	ProjectID string
	Date      string
	Hours     float64
	Note      string
	Status    WorkLogStatus
	Deleted   bool
}

// WorkLogEntry is the aggregate for a single day/project time record.
type WorkLogEntry struct {
	*AggregateBase
	State WorkLogEntryState
}

func newBlankWorkLogEntry(id string) *WorkLogEntry {
	e := &WorkLogEntry{}
	e.AggregateBase = newAggregateBase(id, AggregateTypeWorkLogEntry, e.applyEvent)
	return e
}

// NewWorkLogEntry creates a new entry in DRAFT status.
func NewWorkLogEntry(id, tenantID, memberID, projectID, date string, hours float64, note string) (*WorkLogEntry, error) {
	e := newBlankWorkLogEntry(id)
	err := e.raise(&WorkLogEntryCreatedEvent{
		TenantID:  tenantID,
		MemberID:  memberID,
		ProjectID: projectID,
		Date:      date,
		Hours:     hours,
		Note:      note,
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ReplayWorkLogEntry rebuilds an entry from its stored event history.
func ReplayWorkLogEntry(id string, records []StoredEvent) (*WorkLogEntry, error) {
	e := newBlankWorkLogEntry(id)
	if err := replay(e, records); err != nil {
		return nil, err
	}
	return e, nil
}

// Update changes the mutable fields of a non-approved, non-deleted entry.
func (e *WorkLogEntry) Update(projectID, date string, hours float64, note string) error {
	if e.State.Deleted {
		return ErrAggregateDeleted
	}
	if e.State.Status == WorkLogStatusApproved {
		return fmt.Errorf("%w: entry is approved", ErrInvalidStatusTransition)
	}
	return e.raise(&WorkLogEntryUpdatedEvent{
		ProjectID:    projectID,
		Date:         date,
		PreviousDate: e.State.Date,
		Hours:        hours,
		Note:         note,
	})
}

// ChangeStatus moves the entry through DRAFT -> SUBMITTED -> APPROVED, or
// back to DRAFT from SUBMITTED on recall/reject.
func (e *WorkLogEntry) ChangeStatus(next WorkLogStatus) error {
	if e.State.Deleted {
		return ErrAggregateDeleted
	}
	if !validWorkLogTransition(e.State.Status, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, e.State.Status, next)
	}
	return e.raise(&WorkLogEntryStatusChangedEvent{Status: string(next)})
}

// Delete marks the entry as logically deleted.
func (e *WorkLogEntry) Delete() error {
	if e.State.Deleted {
		return ErrAggregateDeleted
	}
	return e.raise(&WorkLogEntryDeletedEvent{})
}

func validWorkLogTransition(from, to WorkLogStatus) bool {
	switch from {
	case WorkLogStatusDraft:
		return to == WorkLogStatusSubmitted
	case WorkLogStatusSubmitted:
		return to == WorkLogStatusApproved || to == WorkLogStatusDraft
	case WorkLogStatusApproved:
		return false
	}
	return false
}

func (e *WorkLogEntry) applyEvent(data EventData) error {
	switch ev := data.(type) {
	case *WorkLogEntryCreatedEvent:
		e.State.TenantID = ev.TenantID
		e.State.MemberID = ev.MemberID
		e.State.ProjectID = ev.ProjectID
		e.State.Date = ev.Date
		e.State.Hours = ev.Hours
		e.State.Note = ev.Note
		e.State.Status = WorkLogStatusDraft

	case *WorkLogEntryUpdatedEvent:
		e.State.ProjectID = ev.ProjectID
		e.State.Date = ev.Date
		e.State.Hours = ev.Hours
		e.State.Note = ev.Note

	case *WorkLogEntryStatusChangedEvent:
		e.State.Status = WorkLogStatus(ev.Status)

	case *WorkLogEntryDeletedEvent:
		e.State.Deleted = true

	default:
		return fmt.Errorf("%w: %T for work_log_entry", ErrUnknownEventType, data)
	}
	return nil
}
