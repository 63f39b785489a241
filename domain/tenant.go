package domain

import (
	"fmt"
)

// TenantEvent is the closed set of events a tenant can raise.
type TenantEvent interface {
	EventData
	isTenantEvent()
}

// TenantCreatedEvent records a new tenant.
type TenantCreatedEvent struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (*TenantCreatedEvent) EventType() string { return TenantCreated }
func (*TenantCreatedEvent) isTenantEvent()    {}

// TenantUpdatedEvent records a rename or code change.
type TenantUpdatedEvent struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (*TenantUpdatedEvent) EventType() string { return TenantUpdated }
func (*TenantUpdatedEvent) isTenantEvent()    {}

// TenantDeletedEvent marks the tenant as logically deleted.
type TenantDeletedEvent struct{}

func (*TenantDeletedEvent) EventType() string { return TenantDeleted }
func (*TenantDeletedEvent) isTenantEvent()    {}

// TenantState is the replay-derived state of a tenant.
type TenantState struct {
	Name    string
	Code    string
	Deleted bool
}

// Tenant is the aggregate for a billing/isolation tenant.
type Tenant struct {
	*AggregateBase
	State TenantState
}

func newBlankTenant(id string) *Tenant {
	t := &Tenant{}
	t.AggregateBase = newAggregateBase(id, AggregateTypeTenant, t.applyEvent)
	return t
}

// NewTenant creates a new tenant aggregate.
func NewTenant(id, name, code string) (*Tenant, error) {
	t := newBlankTenant(id)
	if err := t.raise(&TenantCreatedEvent{Name: name, Code: code}); err != nil {
		return nil, err
	}
	return t, nil
}

// ReplayTenant rebuilds a tenant from its stored event history.
func ReplayTenant(id string, records []StoredEvent) (*Tenant, error) {
	t := newBlankTenant(id)
	if err := replay(t, records); err != nil {
		return nil, err
	}
	return t, nil
}

// Update changes the mutable fields of a non-deleted tenant.
func (t *Tenant) Update(name, code string) error {
	if t.State.Deleted {
		return ErrAggregateDeleted
	}
	return t.raise(&TenantUpdatedEvent{Name: name, Code: code})
}

// Delete marks the tenant as logically deleted.
func (t *Tenant) Delete() error {
	if t.State.Deleted {
		return ErrAggregateDeleted
	}
	return t.raise(&TenantDeletedEvent{})
}

func (t *Tenant) applyEvent(data EventData) error {
	switch ev := data.(type) {
	case *TenantCreatedEvent:
		t.State.Name = ev.Name
		t.State.Code = ev.Code

	case *TenantUpdatedEvent:
		t.State.Name = ev.Name
		t.State.Code = ev.Code

	case *TenantDeletedEvent:
		t.State.Deleted = true

	default:
		return fmt.Errorf("%w: %T for tenant", ErrUnknownEventType, data)
	}
	return nil
}
