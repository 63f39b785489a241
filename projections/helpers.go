package projections

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"example.com/worklog/domain"
)

// patchProjection updates specific columns of an existing projection row
// by aggregate id, also stamping version and updated_at from the event.
func patchProjection(ctx context.Context, tx *gorm.DB, model interface{}, event domain.Event, columns map[string]interface{}) error {
	columns["version"] = event.Version
	columns["updated_at"] = event.OccurredAt

	result := tx.WithContext(ctx).
		Model(model).
		Where("aggregate_id = ?", event.AggregateID).
		Updates(columns)
	if result.Error != nil {
		return fmt.Errorf("failed to patch projection for %s: %w", event.AggregateID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: no projection row for aggregate %s", ErrMissingReferenceData, event.AggregateID)
	}
	return nil
}

// deleteProjection removes the projection row for a logically deleted
// aggregate. Deleting an already-absent row is not an error.
func deleteProjection(ctx context.Context, tx *gorm.DB, model interface{}, event domain.Event) error {
	if err := tx.WithContext(ctx).
		Where("aggregate_id = ?", event.AggregateID).
		Delete(model).Error; err != nil {
		return fmt.Errorf("failed to delete projection for %s: %w", event.AggregateID, err)
	}
	return nil
}
