package projections

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"example.com/worklog/domain"
	"example.com/worklog/models"
)

// OrganizationProjector maintains the organizations_projection table.
type OrganizationProjector struct{}

// NewOrganizationProjector creates a new organization projector.
func NewOrganizationProjector() *OrganizationProjector {
	return &OrganizationProjector{}
}

func (p *OrganizationProjector) Project(ctx context.Context, tx *gorm.DB, event domain.Event) error {
	switch data := event.Data.(type) {
	case *domain.OrganizationCreatedEvent:
		row := models.OrganizationProjection{
			AggregateID: event.AggregateID,
			TenantID:    data.TenantID,
			Name:        data.Name,
			Code:        data.Code,
			Version:     event.Version,
			CreatedAt:   event.OccurredAt,
			UpdatedAt:   event.OccurredAt,
		}
		if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert organization projection: %w", err)
		}
		return nil

	case *domain.OrganizationUpdatedEvent:
		return patchProjection(ctx, tx, &models.OrganizationProjection{}, event, map[string]interface{}{
			"name": data.Name,
			"code": data.Code,
		})

	case *domain.OrganizationDeletedEvent:
		return deleteProjection(ctx, tx, &models.OrganizationProjection{}, event)

	default:
		return nil
	}
}

// TenantProjector maintains the tenants_projection table.
type TenantProjector struct{}

// NewTenantProjector creates a new tenant projector.
func NewTenantProjector() *TenantProjector {
	return &TenantProjector{}
}

func (p *TenantProjector) Project(ctx context.Context, tx *gorm.DB, event domain.Event) error {
	switch data := event.Data.(type) {
	case *domain.TenantCreatedEvent:
		row := models.TenantProjection{
			AggregateID: event.AggregateID,
			Name:        data.Name,
			Code:        data.Code,
			Version:     event.Version,
			CreatedAt:   event.OccurredAt,
			UpdatedAt:   event.OccurredAt,
		}
		if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert tenant projection: %w", err)
		}
		return nil

	case *domain.TenantUpdatedEvent:
		return patchProjection(ctx, tx, &models.TenantProjection{}, event, map[string]interface{}{
			"name": data.Name,
			"code": data.Code,
		})

	case *domain.TenantDeletedEvent:
		return deleteProjection(ctx, tx, &models.TenantProjection{}, event)

	default:
		return nil
	}
}

// MemberProjector maintains the members_projection table.
type MemberProjector struct{}

// NewMemberProjector creates a new member projector.
func NewMemberProjector() *MemberProjector {
	return &MemberProjector{}
}

func (p *MemberProjector) Project(ctx context.Context, tx *gorm.DB, event domain.Event) error {
	switch data := event.Data.(type) {
	case *domain.MemberCreatedEvent:
		row := models.MemberProjection{
			AggregateID:    event.AggregateID,
			TenantID:       data.TenantID,
			OrganizationID: data.OrganizationID,
			Name:           data.Name,
			Email:          data.Email,
			Role:           data.Role,
			Version:        event.Version,
			CreatedAt:      event.OccurredAt,
			UpdatedAt:      event.OccurredAt,
		}
		if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert member projection: %w", err)
		}
		return nil

	case *domain.MemberUpdatedEvent:
		return patchProjection(ctx, tx, &models.MemberProjection{}, event, map[string]interface{}{
			"organization_id": data.OrganizationID,
			"name":            data.Name,
			"email":           data.Email,
			"role":            data.Role,
		})

	case *domain.MemberDeletedEvent:
		return deleteProjection(ctx, tx, &models.MemberProjection{}, event)

	default:
		return nil
	}
}

// MonthlyPeriodPatternProjector maintains the monthly_period_patterns_projection table.
type MonthlyPeriodPatternProjector struct{}

// NewMonthlyPeriodPatternProjector creates a new period pattern projector.
func NewMonthlyPeriodPatternProjector() *MonthlyPeriodPatternProjector {
	return &MonthlyPeriodPatternProjector{}
}

func (p *MonthlyPeriodPatternProjector) Project(ctx context.Context, tx *gorm.DB, event domain.Event) error {
	switch data := event.Data.(type) {
	case *domain.MonthlyPeriodPatternCreatedEvent:
		row := models.MonthlyPeriodPatternProjection{
			AggregateID: event.AggregateID,
			TenantID:    data.TenantID,
			Name:        data.Name,
			StartDay:    data.StartDay,
			Version:     event.Version,
			CreatedAt:   event.OccurredAt,
			UpdatedAt:   event.OccurredAt,
		}
		if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert period pattern projection: %w", err)
		}
		return nil

	case *domain.MonthlyPeriodPatternUpdatedEvent:
		return patchProjection(ctx, tx, &models.MonthlyPeriodPatternProjection{}, event, map[string]interface{}{
			"name":      data.Name,
			"start_day": data.StartDay,
		})

	case *domain.MonthlyPeriodPatternDeletedEvent:
		return deleteProjection(ctx, tx, &models.MonthlyPeriodPatternProjection{}, event)

	default:
		return nil
	}
}
