package eventstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"example.com/worklog/domain"
	"example.com/worklog/models"
)

// GormStore implements Store on a GORM database handle. Constructing it
// with a transaction handle makes every operation part of that
// transaction, which is how repositories keep the append and the
// projection updates atomic.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM event store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Append writes the batch of events, assigning versions
// expectedVersion+1..+n. The stored version is compared first and the
// (aggregate_id, version) unique index backstops the race between the
// check and the insert.
func (s *GormStore) Append(ctx context.Context, aggregateID, aggregateType string, events []domain.Event, expectedVersion int) error {
	if len(events) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := currentVersion(tx, aggregateID)
		if err != nil {
			return err
		}
		if current != expectedVersion {
			return fmt.Errorf("%w: expected version %d, stored version %d", ErrConcurrencyConflict, expectedVersion, current)
		}

		for i, event := range events {
			payload, err := domain.EncodeEventData(event.Data)
			if err != nil {
				return err
			}

			record := models.Event{
				EventID:       event.ID,
				AggregateID:   aggregateID,
				AggregateType: aggregateType,
				EventType:     event.Type,
				Data:          datatypes.JSON(payload),
				Version:       expectedVersion + i + 1,
				OccurredAt:    event.OccurredAt,
			}

			if err := tx.Create(&record).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("%w: version %d already written", ErrConcurrencyConflict, record.Version)
				}
				return fmt.Errorf("failed to save event: %w", err)
			}

			log.Debug().
				Str("aggregateID", aggregateID).
				Str("eventType", event.Type).
				Int("version", record.Version).
				Msg("Event appended")
		}

		return nil
	})
}

// Load returns the aggregate's stored events ascending by version.
func (s *GormStore) Load(ctx context.Context, aggregateID string) ([]domain.StoredEvent, error) {
	var records []models.Event
	if err := s.db.WithContext(ctx).
		Where("aggregate_id = ?", aggregateID).
		Order("version ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	events := make([]domain.StoredEvent, len(records))
	for i, record := range records {
		events[i] = domain.StoredEvent{
			Type:       record.EventType,
			Data:       record.Data,
			Version:    record.Version,
			OccurredAt: record.OccurredAt,
		}
	}
	return events, nil
}

// CurrentVersion returns the highest stored version for the aggregate,
// 0 if it has never been persisted.
func (s *GormStore) CurrentVersion(ctx context.Context, aggregateID string) (int, error) {
	return currentVersion(s.db.WithContext(ctx), aggregateID)
}

// AggregateIDsMatching returns the distinct aggregate ids having an event
// of the given type whose JSON payload field equals value.
func (s *GormStore) AggregateIDsMatching(ctx context.Context, aggregateType, eventType, field, value string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.Event{}).
		Distinct("aggregate_id").
		Where("aggregate_type = ? AND event_type = ?", aggregateType, eventType).
		Where(datatypes.JSONQuery("data").Equals(value, field)).
		Pluck("aggregate_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query events by payload: %w", err)
	}
	return ids, nil
}

func currentVersion(db *gorm.DB, aggregateID string) (int, error) {
	var version int
	err := db.Model(&models.Event{}).
		Where("aggregate_id = ?", aggregateID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&version).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read current version: %w", err)
	}
	return version, nil
}
