package domain

import (
	"encoding/json"
	"fmt"
)

// ErrUnknownEventType indicates a stored event tag no version of the code
// knows how to decode. This is schema drift or data corruption, never
// something to skip over.
var ErrUnknownEventType = fmt.Errorf("unknown event type")

// EncodeEventData serializes an event payload for storage.
func EncodeEventData(data EventData) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", data.EventType(), err)
	}
	return payload, nil
}

// DecodeEventData deserializes a stored payload into its concrete event
// struct, keyed by the event-type tag.
func DecodeEventData(eventType string, payload []byte) (EventData, error) {
	var data EventData

	switch eventType {
	// WorkLogEntry events
	case WorkLogEntryCreated:
		data = &WorkLogEntryCreatedEvent{}
	case WorkLogEntryUpdated:
		data = &WorkLogEntryUpdatedEvent{}
	case WorkLogEntryStatusChanged:
		data = &WorkLogEntryStatusChangedEvent{}
	case WorkLogEntryDeleted:
		data = &WorkLogEntryDeletedEvent{}

	// Absence events
	case AbsenceCreated:
		data = &AbsenceCreatedEvent{}
	case AbsenceUpdated:
		data = &AbsenceUpdatedEvent{}
	case AbsenceDeleted:
		data = &AbsenceDeletedEvent{}

	// MonthlyApproval events
	case MonthlyApprovalCreated:
		data = &MonthlyApprovalCreatedEvent{}
	case MonthlyApprovalStatusChanged:
		data = &MonthlyApprovalStatusChangedEvent{}
	case MonthlyApprovalDeleted:
		data = &MonthlyApprovalDeletedEvent{}

	// Organization events
	case OrganizationCreated:
		data = &OrganizationCreatedEvent{}
	case OrganizationUpdated:
		data = &OrganizationUpdatedEvent{}
	case OrganizationDeleted:
		data = &OrganizationDeletedEvent{}

	// Tenant events
	case TenantCreated:
		data = &TenantCreatedEvent{}
	case TenantUpdated:
		data = &TenantUpdatedEvent{}
	case TenantDeleted:
		data = &TenantDeletedEvent{}

	// Member events
	case MemberCreated:
		data = &MemberCreatedEvent{}
	case MemberUpdated:
		data = &MemberUpdatedEvent{}
	case MemberDeleted:
		data = &MemberDeletedEvent{}

	// MonthlyPeriodPattern events
	case MonthlyPeriodPatternCreated:
		data = &MonthlyPeriodPatternCreatedEvent{}
	case MonthlyPeriodPatternUpdated:
		data = &MonthlyPeriodPatternUpdatedEvent{}
	case MonthlyPeriodPatternDeleted:
		data = &MonthlyPeriodPatternDeletedEvent{}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventType, eventType)
	}

	if err := json.Unmarshal(payload, data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s payload: %w", eventType, err)
	}
	return data, nil
}
