package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func storedEvents(t *testing.T, events []Event) []StoredEvent {
	t.Helper()
	records := make([]StoredEvent, len(events))
	for i, event := range events {
		payload, err := EncodeEventData(event.Data)
		require.NoError(t, err)
		records[i] = StoredEvent{
			Type:       event.Type,
			Data:       payload,
			Version:    event.Version,
			OccurredAt: event.OccurredAt,
		}
	}
	return records
}

func TestNewWorkLogEntry(t *testing.T) {
	id := uuid.New().String()
	entry, err := NewWorkLogEntry(id, "tenant-1", "member-1", "project-1", "2026-03-10", 7.5, "api work")
	require.NoError(t, err)

	require.Equal(t, id, entry.AggregateID())
	require.Equal(t, AggregateTypeWorkLogEntry, entry.AggregateType())
	require.Equal(t, 1, entry.Version())
	require.Equal(t, WorkLogStatusDraft, entry.State.Status)
	require.Equal(t, 7.5, entry.State.Hours)

	events := entry.UncommittedEvents()
	require.Len(t, events, 1)
	require.Equal(t, WorkLogEntryCreated, events[0].Type)
	require.Equal(t, 1, events[0].Version)
	require.NotEmpty(t, events[0].ID)
}

func TestWorkLogEntryStatusTransitions(t *testing.T) {
	entry, err := NewWorkLogEntry(uuid.New().String(), "tenant-1", "member-1", "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)

	// DRAFT cannot jump straight to APPROVED
	err = entry.ChangeStatus(WorkLogStatusApproved)
	require.ErrorIs(t, err, ErrInvalidStatusTransition)

	require.NoError(t, entry.ChangeStatus(WorkLogStatusSubmitted))
	require.Equal(t, WorkLogStatusSubmitted, entry.State.Status)

	// recall back to draft
	require.NoError(t, entry.ChangeStatus(WorkLogStatusDraft))
	require.NoError(t, entry.ChangeStatus(WorkLogStatusSubmitted))
	require.NoError(t, entry.ChangeStatus(WorkLogStatusApproved))

	// APPROVED is terminal
	err = entry.ChangeStatus(WorkLogStatusDraft)
	require.ErrorIs(t, err, ErrInvalidStatusTransition)
	require.Equal(t, 5, entry.Version())
}

func TestWorkLogEntryUpdateRules(t *testing.T) {
	entry, err := NewWorkLogEntry(uuid.New().String(), "tenant-1", "member-1", "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)

	require.NoError(t, entry.Update("project-2", "2026-03-11", 6, "moved"))
	require.Equal(t, "project-2", entry.State.ProjectID)
	require.Equal(t, "2026-03-11", entry.State.Date)
	require.Equal(t, 6.0, entry.State.Hours)

	require.NoError(t, entry.ChangeStatus(WorkLogStatusSubmitted))
	require.NoError(t, entry.ChangeStatus(WorkLogStatusApproved))

	err = entry.Update("project-3", "2026-03-12", 4, "")
	require.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestWorkLogEntryDelete(t *testing.T) {
	entry, err := NewWorkLogEntry(uuid.New().String(), "tenant-1", "member-1", "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)

	require.NoError(t, entry.Delete())
	require.True(t, entry.State.Deleted)

	require.ErrorIs(t, entry.Delete(), ErrAggregateDeleted)
	require.ErrorIs(t, entry.Update("p", "2026-03-11", 1, ""), ErrAggregateDeleted)
	require.ErrorIs(t, entry.ChangeStatus(WorkLogStatusSubmitted), ErrAggregateDeleted)
}

func TestReplayWorkLogEntry(t *testing.T) {
	id := uuid.New().String()
	entry, err := NewWorkLogEntry(id, "tenant-1", "member-1", "project-1", "2026-03-10", 8, "initial")
	require.NoError(t, err)
	require.NoError(t, entry.Update("project-1", "2026-03-10", 6.5, "corrected"))
	require.NoError(t, entry.ChangeStatus(WorkLogStatusSubmitted))

	replayed, err := ReplayWorkLogEntry(id, storedEvents(t, entry.UncommittedEvents()))
	require.NoError(t, err)

	require.Equal(t, entry.State, replayed.State)
	require.Equal(t, 3, replayed.Version())
	require.Empty(t, replayed.UncommittedEvents())
}

func TestReplayWorkLogEntryDeleted(t *testing.T) {
	id := uuid.New().String()
	entry, err := NewWorkLogEntry(id, "tenant-1", "member-1", "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)
	require.NoError(t, entry.Delete())

	replayed, err := ReplayWorkLogEntry(id, storedEvents(t, entry.UncommittedEvents()))
	require.NoError(t, err)
	require.True(t, replayed.State.Deleted)
	require.Equal(t, 2, replayed.Version())
}

func TestRaiseQueuesSequentialVersions(t *testing.T) {
	entry, err := NewWorkLogEntry(uuid.New().String(), "tenant-1", "member-1", "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)
	require.NoError(t, entry.ChangeStatus(WorkLogStatusSubmitted))
	require.NoError(t, entry.Delete())

	events := entry.UncommittedEvents()
	require.Len(t, events, 3)
	for i, event := range events {
		require.Equal(t, i+1, event.Version)
		require.False(t, event.OccurredAt.After(time.Now().UTC()))
	}

	entry.ClearUncommittedEvents()
	require.Empty(t, entry.UncommittedEvents())
	require.Equal(t, 3, entry.Version())
}
