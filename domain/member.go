package domain

import (
	"fmt"
)

// MemberEvent is the closed set of events a member can raise.
type MemberEvent interface {
	EventData
	isMemberEvent()
}

// MemberCreatedEvent records a new member joining a tenant organization.
type MemberCreatedEvent struct {
	TenantID       string `json:"tenant_id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
}

func (*MemberCreatedEvent) EventType() string { return MemberCreated }
func (*MemberCreatedEvent) isMemberEvent()    {}

// MemberUpdatedEvent records profile or organization changes.
type MemberUpdatedEvent struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
}

func (*MemberUpdatedEvent) EventType() string { return MemberUpdated }
func (*MemberUpdatedEvent) isMemberEvent()    {}

// MemberDeletedEvent marks the member as logically deleted.
type MemberDeletedEvent struct{}

func (*MemberDeletedEvent) EventType() string { return MemberDeleted }
func (*MemberDeletedEvent) isMemberEvent()    {}

// MemberState is the replay-derived state of a member.
type MemberState struct {
	TenantID       string
	OrganizationID string
	Name           string
	Email          string
	Role           string
	Deleted        bool
}

// Member is the aggregate for an employee account within a tenant.
type Member struct {
	*AggregateBase
	State MemberState
}

func newBlankMember(id string) *Member {
	m := &Member{}
	m.AggregateBase = newAggregateBase(id, AggregateTypeMember, m.applyEvent)
	return m
}

// NewMember creates a new member aggregate.
func NewMember(id, tenantID, organizationID, name, email, role string) (*Member, error) {
	m := newBlankMember(id)
	err := m.raise(&MemberCreatedEvent{
		TenantID:       tenantID,
		OrganizationID: organizationID,
		Name:           name,
		Email:          email,
		Role:           role,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ReplayMember rebuilds a member from its stored event history.
func ReplayMember(id string, records []StoredEvent) (*Member, error) {
	m := newBlankMember(id)
	if err := replay(m, records); err != nil {
		return nil, err
	}
	return m, nil
}

// Update changes the mutable fields of a non-deleted member.
func (m *Member) Update(organizationID, name, email, role string) error {
	if m.State.Deleted {
		return ErrAggregateDeleted
	}
	return m.raise(&MemberUpdatedEvent{
		OrganizationID: organizationID,
		Name:           name,
		Email:          email,
		Role:           role,
	})
}

// Delete marks the member as logically deleted.
func (m *Member) Delete() error {
	if m.State.Deleted {
		return ErrAggregateDeleted
	}
	return m.raise(&MemberDeletedEvent{})
}

func (m *Member) applyEvent(data EventData) error {
	switch ev := data.(type) {
	case *MemberCreatedEvent:
		m.State.TenantID = ev.TenantID
		m.State.OrganizationID = ev.OrganizationID
		m.State.Name = ev.Name
		m.State.Email = ev.Email
		m.State.Role = ev.Role

	case *MemberUpdatedEvent:
		m.State.OrganizationID = ev.OrganizationID
		m.State.Name = ev.Name
		m.State.Email = ev.Email
		m.State.Role = ev.Role

	case *MemberDeletedEvent:
		m.State.Deleted = true

	default:
		return fmt.Errorf("%w: %T for member", ErrUnknownEventType, data)
	}
	return nil
}
