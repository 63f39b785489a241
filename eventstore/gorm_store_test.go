package eventstore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"example.com/worklog/domain"
	"example.com/worklog/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so every session sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newEntry(t *testing.T) *domain.WorkLogEntry {
	t.Helper()
	entry, err := domain.NewWorkLogEntry(uuid.New().String(), "tenant-1", "member-1", "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)
	return entry
}

func TestAppendAndLoad(t *testing.T) {
	store := NewGormStore(testDB(t))
	ctx := context.Background()

	entry := newEntry(t)
	require.NoError(t, entry.ChangeStatus(domain.WorkLogStatusSubmitted))

	err := store.Append(ctx, entry.AggregateID(), entry.AggregateType(), entry.UncommittedEvents(), 0)
	require.NoError(t, err)

	records, err := store.Load(ctx, entry.AggregateID())
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, domain.WorkLogEntryCreated, records[0].Type)
	require.Equal(t, 1, records[0].Version)
	require.Equal(t, domain.WorkLogEntryStatusChanged, records[1].Type)
	require.Equal(t, 2, records[1].Version)

	replayed, err := domain.ReplayWorkLogEntry(entry.AggregateID(), records)
	require.NoError(t, err)
	require.Equal(t, entry.State, replayed.State)
}

func TestLoadUnknownAggregate(t *testing.T) {
	store := NewGormStore(testDB(t))

	records, err := store.Load(context.Background(), uuid.New().String())
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestCurrentVersion(t *testing.T) {
	store := NewGormStore(testDB(t))
	ctx := context.Background()

	entry := newEntry(t)
	id := entry.AggregateID()

	version, err := store.CurrentVersion(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 0, version)

	require.NoError(t, store.Append(ctx, id, entry.AggregateType(), entry.UncommittedEvents(), 0))

	version, err = store.CurrentVersion(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, version)
}

func TestAppendConcurrencyConflict(t *testing.T) {
	store := NewGormStore(testDB(t))
	ctx := context.Background()

	entry := newEntry(t)
	id := entry.AggregateID()
	require.NoError(t, store.Append(ctx, id, entry.AggregateType(), entry.UncommittedEvents(), 0))

	// both writers load at version 1 and try to append version 2
	first, err := domain.ReplayWorkLogEntry(id, mustLoad(t, store, id))
	require.NoError(t, err)
	second, err := domain.ReplayWorkLogEntry(id, mustLoad(t, store, id))
	require.NoError(t, err)

	require.NoError(t, first.ChangeStatus(domain.WorkLogStatusSubmitted))
	require.NoError(t, second.Delete())

	require.NoError(t, store.Append(ctx, id, first.AggregateType(), first.UncommittedEvents(), 1))

	err = store.Append(ctx, id, second.AggregateType(), second.UncommittedEvents(), 1)
	require.ErrorIs(t, err, ErrConcurrencyConflict)

	// the losing write left nothing behind
	version, err := store.CurrentVersion(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 2, version)
}

func TestAppendStaleExpectedVersion(t *testing.T) {
	store := NewGormStore(testDB(t))
	ctx := context.Background()

	entry := newEntry(t)
	id := entry.AggregateID()
	require.NoError(t, store.Append(ctx, id, entry.AggregateType(), entry.UncommittedEvents(), 0))

	stale := newEntry(t)
	err := store.Append(ctx, id, stale.AggregateType(), stale.UncommittedEvents(), 0)
	require.ErrorIs(t, err, ErrConcurrencyConflict)
}

func TestAppendEmptyBatch(t *testing.T) {
	store := NewGormStore(testDB(t))
	require.NoError(t, store.Append(context.Background(), uuid.New().String(), domain.AggregateTypeWorkLogEntry, nil, 0))
}

func TestAggregateIDsMatching(t *testing.T) {
	store := NewGormStore(testDB(t))
	ctx := context.Background()

	mine := newEntry(t)
	require.NoError(t, store.Append(ctx, mine.AggregateID(), mine.AggregateType(), mine.UncommittedEvents(), 0))

	other, err := domain.NewWorkLogEntry(uuid.New().String(), "tenant-1", "member-2", "project-1", "2026-03-10", 4, "")
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, other.AggregateID(), other.AggregateType(), other.UncommittedEvents(), 0))

	ids, err := store.AggregateIDsMatching(ctx, domain.AggregateTypeWorkLogEntry, domain.WorkLogEntryCreated, "member_id", "member-1")
	require.NoError(t, err)
	require.Equal(t, []string{mine.AggregateID()}, ids)
}

func mustLoad(t *testing.T, store Store, id string) []domain.StoredEvent {
	t.Helper()
	records, err := store.Load(context.Background(), id)
	require.NoError(t, err)
	return records
}
