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

// TenantRepository persists tenants through the event store.
type TenantRepository struct {
	db        *gorm.DB
	store     eventstore.Store
	projector *projections.TenantProjector
	hooks     *HookRunner
}

// NewTenantRepository creates a new tenant repository.
func NewTenantRepository(db *gorm.DB, hooks *HookRunner) *TenantRepository {
	return &TenantRepository{
		db:        db,
		store:     eventstore.NewGormStore(db),
		projector: projections.NewTenantProjector(),
		hooks:     hooks,
	}
}

// Save appends the tenant's uncommitted events and updates the projection
// atomically.
func (r *TenantRepository) Save(ctx context.Context, tenant *domain.Tenant) error {
	return saveAggregate(ctx, r.db, r.projector, r.hooks, tenant)
}

// FindByID replays the tenant from its event history.
func (r *TenantRepository) FindByID(ctx context.Context, id string) (*domain.Tenant, error) {
	records, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	tenant, err := domain.ReplayTenant(id, records)
	if err != nil {
		return nil, err
	}
	if tenant.State.Deleted {
		return nil, ErrNotFound
	}
	return tenant, nil
}

// ExistsByID reports whether any events exist for the id.
func (r *TenantRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	version, err := r.store.CurrentVersion(ctx, id)
	if err != nil {
		return false, err
	}
	return version > 0, nil
}

// List returns all live tenants.
func (r *TenantRepository) List(ctx context.Context) ([]models.TenantProjection, error) {
	var rows []models.TenantProjection
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return rows, nil
}
