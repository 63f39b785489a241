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

// AbsenceRepository persists absences through the event store and keeps
// their projection table in lockstep.
type AbsenceRepository struct {
	db        *gorm.DB
	store     eventstore.Store
	projector *projections.AbsenceProjector
	hooks     *HookRunner
}

// NewAbsenceRepository creates a new absence repository.
func NewAbsenceRepository(db *gorm.DB, hooks *HookRunner) *AbsenceRepository {
	return &AbsenceRepository{
		db:        db,
		store:     eventstore.NewGormStore(db),
		projector: projections.NewAbsenceProjector(),
		hooks:     hooks,
	}
}

// Save appends the absence's uncommitted events and updates the
// projection atomically.
func (r *AbsenceRepository) Save(ctx context.Context, absence *domain.Absence) error {
	return saveAggregate(ctx, r.db, r.projector, r.hooks, absence)
}

// FindByID replays the absence from its event history.
func (r *AbsenceRepository) FindByID(ctx context.Context, id string) (*domain.Absence, error) {
	records, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	absence, err := domain.ReplayAbsence(id, records)
	if err != nil {
		return nil, err
	}
	if absence.State.Deleted {
		return nil, ErrNotFound
	}
	return absence, nil
}

// ExistsByID reports whether any events exist for the id.
func (r *AbsenceRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	version, err := r.store.CurrentVersion(ctx, id)
	if err != nil {
		return false, err
	}
	return version > 0, nil
}

// ExistsForMemberAndDate reports whether the member already has a live
// absence on the date, optionally excluding one id.
func (r *AbsenceRepository) ExistsForMemberAndDate(ctx context.Context, memberID, date, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.AbsenceProjection{}).
		Where("member_id = ? AND date = ?", memberID, date)
	if excludeID != "" {
		query = query.Where("aggregate_id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check absence existence: %w", err)
	}
	return count > 0, nil
}

// ListByMemberAndRange returns the member's absences for an inclusive
// date range, ordered by date.
func (r *AbsenceRepository) ListByMemberAndRange(ctx context.Context, memberID, from, to string) ([]models.AbsenceProjection, error) {
	var rows []models.AbsenceProjection
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND date >= ? AND date <= ?", memberID, from, to).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	return rows, nil
}
