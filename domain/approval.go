package domain

import (
	"fmt"
)

// ApprovalStatus is the lifecycle status of a monthly approval.
type ApprovalStatus string

const (
	ApprovalStatusSubmitted ApprovalStatus = "SUBMITTED"
	ApprovalStatusApproved  ApprovalStatus = "APPROVED"
	ApprovalStatusRejected  ApprovalStatus = "REJECTED"
)

// MonthlyApprovalEvent is the closed set of events a monthly approval can raise.
type MonthlyApprovalEvent interface {
	EventData
	isMonthlyApprovalEvent()
}

// MonthlyApprovalCreatedEvent records a member submitting a month for approval.
type MonthlyApprovalCreatedEvent struct {
	TenantID  string `json:"tenant_id"`
	MemberID  string `json:"member_id"`
	YearMonth string `json:"year_month"`
}

func (*MonthlyApprovalCreatedEvent) EventType() string       { return MonthlyApprovalCreated }
func (*MonthlyApprovalCreatedEvent) isMonthlyApprovalEvent() {}

// MonthlyApprovalStatusChangedEvent records an approve, reject or resubmit.
type MonthlyApprovalStatusChangedEvent struct {
	Status  string `json:"status"`
	ActorID string `json:"actor_id"`
	Comment string `json:"comment"`
}

func (*MonthlyApprovalStatusChangedEvent) EventType() string       { return MonthlyApprovalStatusChanged }
func (*MonthlyApprovalStatusChangedEvent) isMonthlyApprovalEvent() {}

// MonthlyApprovalDeletedEvent marks the approval as logically deleted.
type MonthlyApprovalDeletedEvent struct{}

func (*MonthlyApprovalDeletedEvent) EventType() string       { return MonthlyApprovalDeleted }
func (*MonthlyApprovalDeletedEvent) isMonthlyApprovalEvent() {}

// MonthlyApprovalState is the replay-derived state of a monthly approval.
type MonthlyApprovalState struct {
	TenantID  string
	MemberID  string
	YearMonth string
	Status    ApprovalStatus
	ActorID   string
	Comment   string
	Deleted   bool
}

// MonthlyApproval is the aggregate for a member's monthly timesheet approval.
type MonthlyApproval struct {
	*AggregateBase
	State MonthlyApprovalState
}

func newBlankMonthlyApproval(id string) *MonthlyApproval {
	m := &MonthlyApproval{}
	m.AggregateBase = newAggregateBase(id, AggregateTypeMonthlyApproval, m.applyEvent)
	return m
}

// NewMonthlyApproval creates a new approval in SUBMITTED status.
func NewMonthlyApproval(id, tenantID, memberID, yearMonth string) (*MonthlyApproval, error) {
	m := newBlankMonthlyApproval(id)
	err := m.raise(&MonthlyApprovalCreatedEvent{
		TenantID:  tenantID,
		MemberID:  memberID,
		YearMonth: yearMonth,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ReplayMonthlyApproval rebuilds an approval from its stored event history.
func ReplayMonthlyApproval(id string, records []StoredEvent) (*MonthlyApproval, error) {
	m := newBlankMonthlyApproval(id)
	if err := replay(m, records); err != nil {
		return nil, err
	}
	return m, nil
}

// Approve moves a SUBMITTED approval to APPROVED.
func (m *MonthlyApproval) Approve(actorID, comment string) error {
	return m.changeStatus(ApprovalStatusApproved, actorID, comment)
}

// Reject moves a SUBMITTED approval to REJECTED.
func (m *MonthlyApproval) Reject(actorID, comment string) error {
	return m.changeStatus(ApprovalStatusRejected, actorID, comment)
}

// Resubmit moves a REJECTED approval back to SUBMITTED.
func (m *MonthlyApproval) Resubmit(actorID string) error {
	return m.changeStatus(ApprovalStatusSubmitted, actorID, "")
}

// Delete marks the approval as logically deleted.
func (m *MonthlyApproval) Delete() error {
	if m.State.Deleted {
		return ErrAggregateDeleted
	}
	return m.raise(&MonthlyApprovalDeletedEvent{})
}

func (m *MonthlyApproval) changeStatus(next ApprovalStatus, actorID, comment string) error {
	if m.State.Deleted {
		return ErrAggregateDeleted
	}
	if !validApprovalTransition(m.State.Status, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, m.State.Status, next)
	}
	return m.raise(&MonthlyApprovalStatusChangedEvent{
		Status:  string(next),
		ActorID: actorID,
		Comment: comment,
	})
}

func validApprovalTransition(from, to ApprovalStatus) bool {
	switch from {
	case ApprovalStatusSubmitted:
		return to == ApprovalStatusApproved || to == ApprovalStatusRejected
	case ApprovalStatusRejected:
		return to == ApprovalStatusSubmitted
	case ApprovalStatusApproved:
		return false
	}
	return false
}

func (m *MonthlyApproval) applyEvent(data EventData) error {
	switch ev := data.(type) {
	case *MonthlyApprovalCreatedEvent:
		m.State.TenantID = ev.TenantID
		m.State.MemberID = ev.MemberID
		m.State.YearMonth = ev.YearMonth
		m.State.Status = ApprovalStatusSubmitted

	case *MonthlyApprovalStatusChangedEvent:
		m.State.Status = ApprovalStatus(ev.Status)
		m.State.ActorID = ev.ActorID
		m.State.Comment = ev.Comment

	case *MonthlyApprovalDeletedEvent:
		m.State.Deleted = true

	default:
		return fmt.Errorf("%w: %T for monthly_approval", ErrUnknownEventType, data)
	}
	return nil
}
