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

// WorkLogEntryRepository persists work-log entries through the event
// store and keeps their projection table in lockstep.
type WorkLogEntryRepository struct {
	db        *gorm.DB
	store     eventstore.Store
	projector *projections.WorkLogEntryProjector
	hooks     *HookRunner
}

// NewWorkLogEntryRepository creates a new work-log entry repository.
func NewWorkLogEntryRepository(db *gorm.DB, hooks *HookRunner) *WorkLogEntryRepository {
	return &WorkLogEntryRepository{
		db:        db,
		store:     eventstore.NewGormStore(db),
		projector: projections.NewWorkLogEntryProjector(),
		hooks:     hooks,
	}
}

// Save appends the entry's uncommitted events and updates the projection
// atomically.
func (r *WorkLogEntryRepository) Save(ctx context.Context, entry *domain.WorkLogEntry) error {
	return saveAggregate(ctx, r.db, r.projector, r.hooks, entry)
}

// FindByID replays the entry from its event history. Logically deleted
// entries report ErrNotFound even though their history still exists.
func (r *WorkLogEntryRepository) FindByID(ctx context.Context, id string) (*domain.WorkLogEntry, error) {
	records, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	entry, err := domain.ReplayWorkLogEntry(id, records)
	if err != nil {
		return nil, err
	}
	if entry.State.Deleted {
		return nil, ErrNotFound
	}
	return entry, nil
}

// ExistsByID reports whether any events exist for the id. A logically
// deleted entry still exists here; use FindByID for "exists and live".
func (r *WorkLogEntryRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	version, err := r.store.CurrentVersion(ctx, id)
	if err != nil {
		return false, err
	}
	return version > 0, nil
}

// TotalHoursForDate sums the member's hours on one date, reading the
// authoritative event log: candidate ids come from creation events, each
// candidate is replayed so later updates, moves to another date and soft
// deletes are all accounted for. excludeID skips the entry being updated.
func (r *WorkLogEntryRepository) TotalHoursForDate(ctx context.Context, memberID, date, excludeID string) (float64, error) {
	ids, err := r.store.AggregateIDsMatching(ctx, domain.AggregateTypeWorkLogEntry, domain.WorkLogEntryCreated, "member_id", memberID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, id := range ids {
		if id == excludeID {
			continue
		}
		entry, err := r.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return 0, err
		}
		if entry.State.Date == date {
			total += entry.State.Hours
		}
	}
	return total, nil
}

// ExistsForMemberProjectDate reports whether a live entry already exists
// for the member, project and date, optionally excluding one id.
func (r *WorkLogEntryRepository) ExistsForMemberProjectDate(ctx context.Context, memberID, projectID, date, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.WorkLogEntryProjection{}).
		Where("member_id = ? AND project_id = ? AND date = ?", memberID, projectID, date)
	if excludeID != "" {
		query = query.Where("aggregate_id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check work-log existence: %w", err)
	}
	return count > 0, nil
}

// ListByMemberAndRange returns the member's projection rows for an
// inclusive date range, optionally filtered by status, ordered by date.
func (r *WorkLogEntryRepository) ListByMemberAndRange(ctx context.Context, memberID, from, to string, statuses []string) ([]models.WorkLogEntryProjection, error) {
	query := r.db.WithContext(ctx).
		Where("member_id = ? AND date >= ? AND date <= ?", memberID, from, to)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var rows []models.WorkLogEntryProjection
	if err := query.Order("date ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list work-log entries: %w", err)
	}
	return rows, nil
}
