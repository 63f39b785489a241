package domain

import (
	"fmt"
)

// OrganizationEvent is the closed set of events an organization can raise.
type OrganizationEvent interface {
	EventData
	isOrganizationEvent()
}

// OrganizationCreatedEvent records a new organization inside a tenant.
type OrganizationCreatedEvent struct {
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
}

func (*OrganizationCreatedEvent) EventType() string    { return OrganizationCreated }
func (*OrganizationCreatedEvent) isOrganizationEvent() {}

// OrganizationUpdatedEvent records a rename or code change.
type OrganizationUpdatedEvent struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (*OrganizationUpdatedEvent) EventType() string    { return OrganizationUpdated }
func (*OrganizationUpdatedEvent) isOrganizationEvent() {}

// OrganizationDeletedEvent marks the organization as logically deleted.
type OrganizationDeletedEvent struct{}

func (*OrganizationDeletedEvent) EventType() string    { return OrganizationDeleted }
func (*OrganizationDeletedEvent) isOrganizationEvent() {}

// OrganizationState is the replay-derived state of an organization.
type OrganizationState struct {
	TenantID string
	Name     string
	Code     string
	Deleted  bool
}

// Organization is the aggregate for an org unit within a tenant.
type Organization struct {
	*AggregateBase
	State OrganizationState
}

func newBlankOrganization(id string) *Organization {
	o := &Organization{}
	o.AggregateBase = newAggregateBase(id, AggregateTypeOrganization, o.applyEvent)
	return o
}

// NewOrganization creates a new organization aggregate.
func NewOrganization(id, tenantID, name, code string) (*Organization, error) {
	o := newBlankOrganization(id)
	err := o.raise(&OrganizationCreatedEvent{TenantID: tenantID, Name: name, Code: code})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ReplayOrganization rebuilds an organization from its stored event history.
func ReplayOrganization(id string, records []StoredEvent) (*Organization, error) {
	o := newBlankOrganization(id)
	if err := replay(o, records); err != nil {
		return nil, err
	}
	return o, nil
}

// Update changes the mutable fields of a non-deleted organization.
func (o *Organization) Update(name, code string) error {
	if o.State.Deleted {
		return ErrAggregateDeleted
	}
	return o.raise(&OrganizationUpdatedEvent{Name: name, Code: code})
}

// Delete marks the organization as logically deleted.
func (o *Organization) Delete() error {
	if o.State.Deleted {
		return ErrAggregateDeleted
	}
	return o.raise(&OrganizationDeletedEvent{})
}

func (o *Organization) applyEvent(data EventData) error {
	switch ev := data.(type) {
	case *OrganizationCreatedEvent:
		o.State.TenantID = ev.TenantID
		o.State.Name = ev.Name
		o.State.Code = ev.Code

	case *OrganizationUpdatedEvent:
		o.State.Name = ev.Name
		o.State.Code = ev.Code

	case *OrganizationDeletedEvent:
		o.State.Deleted = true

	default:
		return fmt.Errorf("%w: %T for organization", ErrUnknownEventType, data)
	}
	return nil
}
