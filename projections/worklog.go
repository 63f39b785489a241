package projections

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"example.com/worklog/domain"
	"example.com/worklog/models"
)

// WorkLogEntryProjector maintains the work_log_entries_projection table.
type WorkLogEntryProjector struct{}

// NewWorkLogEntryProjector creates a new work-log entry projector.
func NewWorkLogEntryProjector() *WorkLogEntryProjector {
	return &WorkLogEntryProjector{}
}

// Project applies a work-log entry event to the projection table.
func (p *WorkLogEntryProjector) Project(ctx context.Context, tx *gorm.DB, event domain.Event) error {
	switch data := event.Data.(type) {
	case *domain.WorkLogEntryCreatedEvent:
		return p.projectCreated(ctx, tx, event, data)

	case *domain.WorkLogEntryUpdatedEvent:
		return patchProjection(ctx, tx, &models.WorkLogEntryProjection{}, event, map[string]interface{}{
			"project_id": data.ProjectID,
			"date":       data.Date,
			"hours":      data.Hours,
			"note":       data.Note,
		})

	case *domain.WorkLogEntryStatusChangedEvent:
		return patchProjection(ctx, tx, &models.WorkLogEntryProjection{}, event, map[string]interface{}{
			"status": data.Status,
		})

	case *domain.WorkLogEntryDeletedEvent:
		return deleteProjection(ctx, tx, &models.WorkLogEntryProjection{}, event)

	default:
		return nil
	}
}

func (p *WorkLogEntryProjector) projectCreated(ctx context.Context, tx *gorm.DB, event domain.Event, data *domain.WorkLogEntryCreatedEvent) error {
	// The projection denormalizes the member's organization so listings
	// can filter by org without a join.
	var member models.MemberProjection
	err := tx.WithContext(ctx).Where("aggregate_id = ?", data.MemberID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: member %s not found", ErrMissingReferenceData, data.MemberID)
		}
		return fmt.Errorf("failed to resolve member %s: %w", data.MemberID, err)
	}
	if member.OrganizationID == "" {
		return fmt.Errorf("%w: member %s has no organization", ErrMissingReferenceData, data.MemberID)
	}

	row := models.WorkLogEntryProjection{
		AggregateID:    event.AggregateID,
		TenantID:       data.TenantID,
		MemberID:       data.MemberID,
		OrganizationID: member.OrganizationID,
		ProjectID:      data.ProjectID,
		Date:           data.Date,
		Hours:          data.Hours,
		Note:           data.Note,
		Status:         string(domain.WorkLogStatusDraft),
		Version:        event.Version,
		CreatedAt:      event.OccurredAt,
		UpdatedAt:      event.OccurredAt,
	}
	if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert work-log projection: %w", err)
	}
	return nil
}
