package models

import (
	"time"

	"gorm.io/datatypes"
)

// Event is a stored domain event. Rows are append-only; the composite
// unique index on (aggregate_id, version) is what detects concurrent
// writers racing on the same aggregate.
type Event struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	EventID       string         `gorm:"uniqueIndex" json:"event_id"`
	AggregateID   string         `gorm:"index;uniqueIndex:idx_events_aggregate_version" json:"aggregate_id"`
	AggregateType string         `gorm:"index" json:"aggregate_type"`
	EventType     string         `json:"event_type"`
	Data          datatypes.JSON `json:"data"`
	Version       int            `gorm:"uniqueIndex:idx_events_aggregate_version" json:"version"`
	OccurredAt    time.Time      `json:"occurred_at"`
	CreatedAt     time.Time      `json:"created_at"`
}
