package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"example.com/worklog/domain"
)

type recordingHook struct {
	name  string
	calls int
	err   error
	panic bool
}

func (h *recordingHook) Name() string { return h.name }

func (h *recordingHook) AfterSave(ctx context.Context, agg domain.Aggregate, events []domain.Event) error {
	h.calls++
	if h.panic {
		panic("hook exploded")
	}
	return h.err
}

func TestHookRunnerIsolatesFailures(t *testing.T) {
	runner := NewHookRunner()
	failing := &recordingHook{name: "failing", err: errors.New("index unavailable")}
	panicking := &recordingHook{name: "panicking", panic: true}
	healthy := &recordingHook{name: "healthy"}
	runner.Register(failing)
	runner.Register(panicking)
	runner.Register(healthy)

	entry, err := domain.NewWorkLogEntry(uuid.New().String(), "tenant-1", "member-1", "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)

	require.NotPanics(t, func() {
		runner.Run(context.Background(), entry, entry.UncommittedEvents())
	})

	require.Equal(t, 1, failing.calls)
	require.Equal(t, 1, panicking.calls)
	require.Equal(t, 1, healthy.calls)
}

func TestHookFailureDoesNotFailSave(t *testing.T) {
	db := testDB(t)
	seedMember(t, db, "member-1")

	runner := NewHookRunner()
	hook := &recordingHook{name: "failing", err: errors.New("redis down")}
	runner.Register(hook)
	repo := NewWorkLogEntryRepository(db, runner)
	ctx := context.Background()

	entry := newTestEntry(t, "member-1", "project-1", "2026-03-10", 8)
	require.NoError(t, repo.Save(ctx, entry))
	require.Equal(t, 1, hook.calls)

	found, err := repo.FindByID(ctx, entry.AggregateID())
	require.NoError(t, err)
	require.Equal(t, 1, found.Version())
}

func TestHooksSkippedWhenNothingToSave(t *testing.T) {
	db := testDB(t)
	seedMember(t, db, "member-1")

	runner := NewHookRunner()
	hook := &recordingHook{name: "recording"}
	runner.Register(hook)
	repo := NewWorkLogEntryRepository(db, runner)
	ctx := context.Background()

	entry := newTestEntry(t, "member-1", "project-1", "2026-03-10", 8)
	require.NoError(t, repo.Save(ctx, entry))

	// saving again with an empty queue is a no-op
	require.NoError(t, repo.Save(ctx, entry))
	require.Equal(t, 1, hook.calls)
}
