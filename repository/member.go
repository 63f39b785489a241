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

// MemberRepository persists members through the event store.
type MemberRepository struct {
	db        *gorm.DB
	store     eventstore.Store
	projector *projections.MemberProjector
	hooks     *HookRunner
}

// NewMemberRepository creates a new member repository.
func NewMemberRepository(db *gorm.DB, hooks *HookRunner) *MemberRepository {
	return &MemberRepository{
		db:        db,
		store:     eventstore.NewGormStore(db),
		projector: projections.NewMemberProjector(),
		hooks:     hooks,
	}
}

// Save appends the member's uncommitted events and updates the projection
// atomically.
func (r *MemberRepository) Save(ctx context.Context, member *domain.Member) error {
	return saveAggregate(ctx, r.db, r.projector, r.hooks, member)
}

// FindByID replays the member from its event history.
func (r *MemberRepository) FindByID(ctx context.Context, id string) (*domain.Member, error) {
	records, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	member, err := domain.ReplayMember(id, records)
	if err != nil {
		return nil, err
	}
	if member.State.Deleted {
		return nil, ErrNotFound
	}
	return member, nil
}

// ExistsByID reports whether any events exist for the id.
func (r *MemberRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	version, err := r.store.CurrentVersion(ctx, id)
	if err != nil {
		return false, err
	}
	return version > 0, nil
}

// ListByTenant returns all live members in a tenant, optionally
// restricted to one organization.
func (r *MemberRepository) ListByTenant(ctx context.Context, tenantID, organizationID string) ([]models.MemberProjection, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if organizationID != "" {
		query = query.Where("organization_id = ?", organizationID)
	}

	var rows []models.MemberProjection
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return rows, nil
}
