package projections

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"example.com/worklog/domain"
	"example.com/worklog/models"
)

// MonthlyApprovalProjector maintains the monthly_approvals_projection table.
type MonthlyApprovalProjector struct{}

// NewMonthlyApprovalProjector creates a new monthly approval projector.
func NewMonthlyApprovalProjector() *MonthlyApprovalProjector {
	return &MonthlyApprovalProjector{}
}

// Project applies a monthly approval event to the projection table.
func (p *MonthlyApprovalProjector) Project(ctx context.Context, tx *gorm.DB, event domain.Event) error {
	switch data := event.Data.(type) {
	case *domain.MonthlyApprovalCreatedEvent:
		row := models.MonthlyApprovalProjection{
			AggregateID: event.AggregateID,
			TenantID:    data.TenantID,
			MemberID:    data.MemberID,
			YearMonth:   data.YearMonth,
			Status:      string(domain.ApprovalStatusSubmitted),
			Version:     event.Version,
			CreatedAt:   event.OccurredAt,
			UpdatedAt:   event.OccurredAt,
		}
		if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert approval projection: %w", err)
		}
		return nil

	case *domain.MonthlyApprovalStatusChangedEvent:
		return patchProjection(ctx, tx, &models.MonthlyApprovalProjection{}, event, map[string]interface{}{
			"status":   data.Status,
			"actor_id": data.ActorID,
			"comment":  data.Comment,
		})

	case *domain.MonthlyApprovalDeletedEvent:
		return deleteProjection(ctx, tx, &models.MonthlyApprovalProjection{}, event)

	default:
		return nil
	}
}
