package repository

import (
	"context"

	"github.com/rs/zerolog/log"

	"example.com/worklog/domain"
)

// PostSaveHook receives the committed events of a successful save.
// Hooks are best-effort: cache invalidation, search indexing and the
// like. A failing or panicking hook is logged and must never unwind
// into the caller or affect the already-committed save.
type PostSaveHook interface {
	Name() string
	AfterSave(ctx context.Context, agg domain.Aggregate, events []domain.Event) error
}

// HookRunner holds the registered post-save hooks.
type HookRunner struct {
	hooks []PostSaveHook
}

// NewHookRunner creates an empty hook runner.
func NewHookRunner() *HookRunner {
	return &HookRunner{}
}

// Register adds a hook to run after every successful save.
func (r *HookRunner) Register(hook PostSaveHook) {
	r.hooks = append(r.hooks, hook)
}

// Run invokes each hook, isolating failures per hook.
func (r *HookRunner) Run(ctx context.Context, agg domain.Aggregate, events []domain.Event) {
	for _, hook := range r.hooks {
		r.runOne(ctx, hook, agg, events)
	}
}

func (r *HookRunner) runOne(ctx context.Context, hook PostSaveHook, agg domain.Aggregate, events []domain.Event) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Str("hook", hook.Name()).
				Str("aggregateID", agg.AggregateID()).
				Interface("panic", rec).
				Msg("Post-save hook panicked")
		}
	}()

	if err := hook.AfterSave(ctx, agg, events); err != nil {
		log.Warn().
			Err(err).
			Str("hook", hook.Name()).
			Str("aggregateType", agg.AggregateType()).
			Str("aggregateID", agg.AggregateID()).
			Msg("Post-save hook failed")
	}
}
