package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"example.com/worklog/domain"
	"example.com/worklog/eventstore"
	"example.com/worklog/models"
	"example.com/worklog/projections"
)

// MonthlyPeriodPatternRepository persists period patterns through the
// event store.
type MonthlyPeriodPatternRepository struct {
	db        *gorm.DB
	store     eventstore.Store
	projector *projections.MonthlyPeriodPatternProjector
	hooks     *HookRunner
}

// NewMonthlyPeriodPatternRepository creates a new period pattern repository.
func NewMonthlyPeriodPatternRepository(db *gorm.DB, hooks *HookRunner) *MonthlyPeriodPatternRepository {
	return &MonthlyPeriodPatternRepository{
		db:        db,
		store:     eventstore.NewGormStore(db),
		projector: projections.NewMonthlyPeriodPatternProjector(),
		hooks:     hooks,
	}
}

// Save appends the pattern's uncommitted events and updates the
// projection atomically.
func (r *MonthlyPeriodPatternRepository) Save(ctx context.Context, pattern *domain.MonthlyPeriodPattern) error {
	return saveAggregate(ctx, r.db, r.projector, r.hooks, pattern)
}

// FindByID replays the pattern from its event history.
func (r *MonthlyPeriodPatternRepository) FindByID(ctx context.Context, id string) (*domain.MonthlyPeriodPattern, error) {
	records, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	pattern, err := domain.ReplayMonthlyPeriodPattern(id, records)
	if err != nil {
		return nil, err
	}
	if pattern.State.Deleted {
		return nil, ErrNotFound
	}
	return pattern, nil
}

// ExistsByID reports whether any events exist for the id.
func (r *MonthlyPeriodPatternRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	version, err := r.store.CurrentVersion(ctx, id)
	if err != nil {
		return false, err
	}
	return version > 0, nil
}

// FindByTenant returns the tenant's period pattern, replayed from the
// event store. Tenants have at most one pattern.
func (r *MonthlyPeriodPatternRepository) FindByTenant(ctx context.Context, tenantID string) (*domain.MonthlyPeriodPattern, error) {
	var row models.MonthlyPeriodPatternProjection
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up period pattern: %w", err)
	}
	return r.FindByID(ctx, row.AggregateID)
}
