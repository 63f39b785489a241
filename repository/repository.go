package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"example.com/worklog/domain"
	"example.com/worklog/eventstore"
	"example.com/worklog/projections"
)

// ErrNotFound is returned by FindByID when the aggregate has no events or
// has been logically deleted. It is the normal miss outcome, not a failure.
var ErrNotFound = errors.New("aggregate not found")

// saveAggregate is the shared save path: append the uncommitted events
// with the pre-append version as the optimistic-lock check, project each
// event into the read model on the same transaction, then clear the queue
// and run post-save hooks once the transaction has committed.
func saveAggregate(ctx context.Context, db *gorm.DB, projector projections.Projector, hooks *HookRunner, agg domain.Aggregate) error {
	events := agg.UncommittedEvents()
	if len(events) == 0 {
		return nil
	}

	// Raising an event bumps the in-memory version, so the version before
	// the first queued event is the version the aggregate was loaded at.
	expectedVersion := events[0].Version - 1

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := eventstore.NewGormStore(tx)
		if err := store.Append(ctx, agg.AggregateID(), agg.AggregateType(), events, expectedVersion); err != nil {
			return err
		}
		for _, event := range events {
			if err := projector.Project(ctx, tx, event); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	agg.ClearUncommittedEvents()
	hooks.Run(ctx, agg, events)
	return nil
}
