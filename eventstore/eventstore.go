package eventstore

import (
	"context"
	"errors"

	"example.com/worklog/domain"
)

// ErrConcurrencyConflict is returned when an append's expected version no
// longer matches the stored version, i.e. another writer got there first.
// Callers reload the aggregate and retry or surface the conflict.
var ErrConcurrencyConflict = errors.New("concurrency conflict: aggregate version mismatch")

// Store is the interface for the append-only event log.
type Store interface {
	// Append writes the events with versions expectedVersion+1..+n. It
	// fails with ErrConcurrencyConflict if the aggregate's stored version
	// is no longer expectedVersion.
	Append(ctx context.Context, aggregateID, aggregateType string, events []domain.Event, expectedVersion int) error

	// Load returns the aggregate's events ascending by version; an empty
	// slice means the aggregate has never been persisted.
	Load(ctx context.Context, aggregateID string) ([]domain.StoredEvent, error)

	// CurrentVersion returns the highest stored version, 0 if absent.
	CurrentVersion(ctx context.Context, aggregateID string) (int, error)

	// AggregateIDsMatching returns the distinct aggregate ids that have an
	// event of the given type whose payload field equals value.
	AggregateIDsMatching(ctx context.Context, aggregateType, eventType, field, value string) ([]string, error)
}
