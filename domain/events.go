package domain

import (
	"time"
)

// Aggregate type tags
const (
	AggregateTypeWorkLogEntry         = "work_log_entry"
	AggregateTypeAbsence              = "absence"
	AggregateTypeMonthlyApproval      = "monthly_approval"
	AggregateTypeOrganization         = "organization"
	AggregateTypeTenant               = "tenant"
	AggregateTypeMember               = "member"
	AggregateTypeMonthlyPeriodPattern = "monthly_period_pattern"
)

// EventType constants
const (
	// WorkLogEntry events
	WorkLogEntryCreated       = "V1_WORK_LOG_ENTRY_CREATED"
	WorkLogEntryUpdated       = "V1_WORK_LOG_ENTRY_UPDATED"
	WorkLogEntryStatusChanged = "V1_WORK_LOG_ENTRY_STATUS_CHANGED"
	WorkLogEntryDeleted       = "V1_WORK_LOG_ENTRY_DELETED"

	// Absence events
	AbsenceCreated = "V1_ABSENCE_CREATED"
	AbsenceUpdated = "V1_ABSENCE_UPDATED"
	AbsenceDeleted = "V1_ABSENCE_DELETED"

	// MonthlyApproval events
	MonthlyApprovalCreated       = "V1_MONTHLY_APPROVAL_CREATED"
	MonthlyApprovalStatusChanged = "V1_MONTHLY_APPROVAL_STATUS_CHANGED"
	MonthlyApprovalDeleted       = "V1_MONTHLY_APPROVAL_DELETED"

	// Organization events
	OrganizationCreated = "V1_ORGANIZATION_CREATED"
	OrganizationUpdated = "V1_ORGANIZATION_UPDATED"
	OrganizationDeleted = "V1_ORGANIZATION_DELETED"

	// Tenant events
	TenantCreated = "V1_TENANT_CREATED"
	TenantUpdated = "V1_TENANT_UPDATED"
	TenantDeleted = "V1_TENANT_DELETED"

	// Member events
	MemberCreated = "V1_MEMBER_CREATED"
	MemberUpdated = "V1_MEMBER_UPDATED"
	MemberDeleted = "V1_MEMBER_DELETED"

	// MonthlyPeriodPattern events
	MonthlyPeriodPatternCreated = "V1_MONTHLY_PERIOD_PATTERN_CREATED"
	MonthlyPeriodPatternUpdated = "V1_MONTHLY_PERIOD_PATTERN_UPDATED"
	MonthlyPeriodPatternDeleted = "V1_MONTHLY_PERIOD_PATTERN_DELETED"
)

// EventData is implemented by every concrete event struct. The tag it
// returns is what gets stored in the event table's event_type column.
type EventData interface {
	EventType() string
}

// Event is the envelope wrapped around an EventData payload when it is
// raised by an aggregate and when it is handed to the projectors.
type Event struct {
	ID            string    `json:"id"`
	AggregateID   string    `json:"aggregate_id"`
	AggregateType string    `json:"aggregate_type"`
	Type          string    `json:"type"`
	Version       int       `json:"version"`
	OccurredAt    time.Time `json:"occurred_at"`
	Data          EventData `json:"data"`
}

// StoredEvent is a persisted event record as handed to the replay
// engine: the tag plus the raw payload, already ordered by version.
type StoredEvent struct {
	Type       string
	Data       []byte
	Version    int
	OccurredAt time.Time
}
