package runner

import (
	"log/slog"

	"github.com/loomcraft/vbed/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithHooks configures the execution event hooks.
func WithHooks(hooks Hooks) Option {
	return func(r *Runner) {
		r.Hooks = hooks
	}
}

// WithStore configures the SnapshotStore for checkpointing.
func WithStore(store ports.SnapshotStore, sessionID string) Option {
	return func(r *Runner) {
		r.Store = store
		r.SessionID = sessionID
	}
}

// WithCheckpointEvery saves a mid-run snapshot after every n accepted
// operations. Requires WithStore.
func WithCheckpointEvery(n int) Option {
	return func(r *Runner) {
		r.CheckpointEvery = n
	}
}

// WithContinueOnError records rejections in the report instead of
// aborting on the first one.
func WithContinueOnError() Option {
	return func(r *Runner) {
		r.ContinueOnError = true
	}
}
