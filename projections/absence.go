package projections

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"example.com/worklog/domain"
	"example.com/worklog/models"
)

// AbsenceProjector maintains the absences_projection table.
type AbsenceProjector struct{}

// NewAbsenceProjector creates a new absence projector.
func NewAbsenceProjector() *AbsenceProjector {
	return &AbsenceProjector{}
}

// Project applies an absence event to the projection table.
func (p *AbsenceProjector) Project(ctx context.Context, tx *gorm.DB, event domain.Event) error {
	switch data := event.Data.(type) {
	case *domain.AbsenceCreatedEvent:
		row := models.AbsenceProjection{
			AggregateID: event.AggregateID,
			TenantID:    data.TenantID,
			MemberID:    data.MemberID,
			Date:        data.Date,
			Kind:        data.Kind,
			Reason:      data.Reason,
			Version:     event.Version,
			CreatedAt:   event.OccurredAt,
			UpdatedAt:   event.OccurredAt,
		}
		if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert absence projection: %w", err)
		}
		return nil

	case *domain.AbsenceUpdatedEvent:
		return patchProjection(ctx, tx, &models.AbsenceProjection{}, event, map[string]interface{}{
			"date":   data.Date,
			"kind":   data.Kind,
			"reason": data.Reason,
		})

	case *domain.AbsenceDeletedEvent:
		return deleteProjection(ctx, tx, &models.AbsenceProjection{}, event)

	default:
		return nil
	}
}
