package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"example.com/worklog/domain"
	"example.com/worklog/eventstore"
	"example.com/worklog/models"
	"example.com/worklog/projections"
)

// OrganizationRepository persists organizations through the event store.
type OrganizationRepository struct {
	db        *gorm.DB
	store     eventstore.Store
	projector *projections.OrganizationProjector
	hooks     *HookRunner
}

// NewOrganizationRepository creates a new organization repository.
func NewOrganizationRepository(db *gorm.DB, hooks *HookRunner) *OrganizationRepository {
	return &OrganizationRepository{
		db:        db,
		store:     eventstore.NewGormStore(db),
		projector: projections.NewOrganizationProjector(),
		hooks:     hooks,
	}
}

// Save appends the organization's uncommitted events and updates the
// projection atomically.
func (r *OrganizationRepository) Save(ctx context.Context, org *domain.Organization) error {
	return saveAggregate(ctx, r.db, r.projector, r.hooks, org)
}

// FindByID replays the organization from its event history.
func (r *OrganizationRepository) FindByID(ctx context.Context, id string) (*domain.Organization, error) {
	records, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	org, err := domain.ReplayOrganization(id, records)
	if err != nil {
		return nil, err
	}
	if org.State.Deleted {
		return nil, ErrNotFound
	}
	return org, nil
}

// ExistsByID reports whether any events exist for the id.
func (r *OrganizationRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	version, err := r.store.CurrentVersion(ctx, id)
	if err != nil {
		return false, err
	}
	return version > 0, nil
}

// ListByTenant returns all live organizations in a tenant.
func (r *OrganizationRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.OrganizationProjection, error) {
	var rows []models.OrganizationProjection
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return rows, nil
}
