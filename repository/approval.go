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

// MonthlyApprovalRepository persists monthly approvals through the event
// store and keeps their projection table in lockstep.
type MonthlyApprovalRepository struct {
	db        *gorm.DB
	store     eventstore.Store
	projector *projections.MonthlyApprovalProjector
	hooks     *HookRunner
}

// NewMonthlyApprovalRepository creates a new monthly approval repository.
func NewMonthlyApprovalRepository(db *gorm.DB, hooks *HookRunner) *MonthlyApprovalRepository {
	return &MonthlyApprovalRepository{
		db:        db,
		store:     eventstore.NewGormStore(db),
		projector: projections.NewMonthlyApprovalProjector(),
		hooks:     hooks,
	}
}

// Save appends the approval's uncommitted events and updates the
// projection atomically.
func (r *MonthlyApprovalRepository) Save(ctx context.Context, approval *domain.MonthlyApproval) error {
	return saveAggregate(ctx, r.db, r.projector, r.hooks, approval)
}

// FindByID replays the approval from its event history.
func (r *MonthlyApprovalRepository) FindByID(ctx context.Context, id string) (*domain.MonthlyApproval, error) {
	records, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	approval, err := domain.ReplayMonthlyApproval(id, records)
	if err != nil {
		return nil, err
	}
	if approval.State.Deleted {
		return nil, ErrNotFound
	}
	return approval, nil
}

// ExistsByID reports whether any events exist for the id.
func (r *MonthlyApprovalRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	version, err := r.store.CurrentVersion(ctx, id)
	if err != nil {
		return false, err
	}
	return version > 0, nil
}

// FindByMemberAndMonth locates the member's approval for a fiscal month
// via the projection, then replays it from the event store.
func (r *MonthlyApprovalRepository) FindByMemberAndMonth(ctx context.Context, memberID, yearMonth string) (*domain.MonthlyApproval, error) {
	var row models.MonthlyApprovalProjection
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND year_month = ?", memberID, yearMonth).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up approval: %w", err)
	}
	return r.FindByID(ctx, row.AggregateID)
}

// ListByTenantAndMonth returns all approvals in a tenant for one fiscal
// month, optionally filtered by status.
func (r *MonthlyApprovalRepository) ListByTenantAndMonth(ctx context.Context, tenantID, yearMonth string, statuses []string) ([]models.MonthlyApprovalProjection, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND year_month = ?", tenantID, yearMonth)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var rows []models.MonthlyApprovalProjection
	if err := query.Order("member_id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	return rows, nil
}
