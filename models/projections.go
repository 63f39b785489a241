package models

import (
	"time"
)

// Projection tables are denormalized read models, one row per live
// aggregate, maintained inside the same transaction as the event append.
// The event table stays authoritative; any of these rows can be rebuilt
// by replaying that aggregate's events.

// WorkLogEntryProjection is the queryable snapshot of a work-log entry.
type WorkLogEntryProjection struct {
	AggregateID    string    `gorm:"primaryKey" json:"aggregate_id"`
	TenantID       string    `gorm:"index" json:"tenant_id"`
	MemberID       string    `gorm:"index:idx_worklog_member_date" json:"member_id"`
	OrganizationID string    `gorm:"index" json:"organization_id"`
	ProjectID      string    `gorm:"index" json:"project_id"`
	Date           string    `gorm:"index:idx_worklog_member_date" json:"date"`
	Hours          float64   `json:"hours"`
	Note           string    `json:"note"`
	Status         string    `gorm:"index" json:"status"`
	Version        int       `json:"version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (WorkLogEntryProjection) TableName() string { return "work_log_entries_projection" }

// AbsenceProjection is the queryable snapshot of an absence.
type AbsenceProjection struct {
	AggregateID string    `gorm:"primaryKey" json:"aggregate_id"`
	TenantID    string    `gorm:"index" json:"tenant_id"`
	MemberID    string    `gorm:"index:idx_absence_member_date" json:"member_id"`
	Date        string    `gorm:"index:idx_absence_member_date" json:"date"`
	Kind        string    `json:"kind"`
	Reason      string    `json:"reason"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (AbsenceProjection) TableName() string { return "absences_projection" }

// MonthlyApprovalProjection is the queryable snapshot of a monthly approval.
type MonthlyApprovalProjection struct {
	AggregateID string    `gorm:"primaryKey" json:"aggregate_id"`
	TenantID    string    `gorm:"index" json:"tenant_id"`
	MemberID    string    `gorm:"uniqueIndex:idx_approval_member_month" json:"member_id"`
	YearMonth   string    `gorm:"uniqueIndex:idx_approval_member_month" json:"year_month"`
	Status      string    `gorm:"index" json:"status"`
	ActorID     string    `json:"actor_id"`
	Comment     string    `json:"comment"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MonthlyApprovalProjection) TableName() string { return "monthly_approvals_projection" }

// OrganizationProjection is the queryable snapshot of an organization.
type OrganizationProjection struct {
	AggregateID string    `gorm:"primaryKey" json:"aggregate_id"`
	TenantID    string    `gorm:"index" json:"tenant_id"`
	Name        string    `json:"name"`
	Code        string    `gorm:"index" json:"code"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (OrganizationProjection) TableName() string { return "organizations_projection" }

// TenantProjection is the queryable snapshot of a tenant.
type TenantProjection struct {
	AggregateID string    `gorm:"primaryKey" json:"aggregate_id"`
	Name        string    `json:"name"`
	Code        string    `gorm:"index" json:"code"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (TenantProjection) TableName() string { return "tenants_projection" }

// MemberProjection is the queryable snapshot of a member.
type MemberProjection struct {
	AggregateID    string    `gorm:"primaryKey" json:"aggregate_id"`
	TenantID       string    `gorm:"index" json:"tenant_id"`
	OrganizationID string    `gorm:"index" json:"organization_id"`
	Name           string    `json:"name"`
	Email          string    `gorm:"index" json:"email"`
	Role           string    `json:"role"`
	Version        int       `json:"version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (MemberProjection) TableName() string { return "members_projection" }

// MonthlyPeriodPatternProjection is the queryable snapshot of a period pattern.
type MonthlyPeriodPatternProjection struct {
	AggregateID string    `gorm:"primaryKey" json:"aggregate_id"`
	TenantID    string    `gorm:"index" json:"tenant_id"`
	Name        string    `json:"name"`
	StartDay    int       `json:"start_day"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MonthlyPeriodPatternProjection) TableName() string { return "monthly_period_patterns_projection" }

// All returns every model migrated by the service.
func All() []interface{} {
	return []interface{}{
		&Event{},
		&WorkLogEntryProjection{},
		&AbsenceProjection{},
		&MonthlyApprovalProjection{},
		&OrganizationProjection{},
		&TenantProjection{},
		&MemberProjection{},
		&MonthlyPeriodPatternProjection{},
	}
}
