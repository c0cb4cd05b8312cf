package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/loomcraft/vbed/pkg/machine"
	"github.com/loomcraft/vbed/pkg/ports"
)

// Hooks receive execution events. Nil funcs are skipped, so callers
// only wire what they observe.
type Hooks struct {
	// OnOperation fires after each accepted operation.
	OnOperation func(op machine.Operation)

	// OnReject fires for each rejected operation with the validation
	// error.
	OnReject func(op machine.Operation, err error)

	// OnPass fires when a carriage pass closes: on every direction
	// change and once at the end of the run.
	OnPass func(dir machine.Direction, ops int)
}

// Failure records one rejected operation and its position in the
// sequence.
type Failure struct {
	Index int
	Op    machine.Operation
	Err   error
}

// Report summarizes a run.
type Report struct {
	Executed int
	Rejected int
	Passes   int
	Failures []Failure
}

// Runner drives operation sequences through a machine.
type Runner struct {
	// Logger is used for internal debug logging. If nil, a no-op
	// logger is used.
	Logger *slog.Logger

	// Hooks observe execution events.
	Hooks Hooks

	// Store is the persistence adapter for checkpointing. If nil, runs
	// are ephemeral.
	Store ports.SnapshotStore

	// SessionID names the session for checkpointing. Required if Store
	// is set.
	SessionID string

	// CheckpointEvery saves a snapshot after every n accepted
	// operations. Zero checkpoints only at the end of the run.
	CheckpointEvery int

	// ContinueOnError records rejections and keeps going instead of
	// aborting on the first one.
	ContinueOnError bool
}

// New creates a Runner configured by the given options.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run executes ops against m in order. By default the first rejection
// aborts the run; the machine keeps every operation accepted so far,
// since rejected operations never mutate state. With ContinueOnError
// the full sequence runs and every rejection lands in the report.
func (r *Runner) Run(ctx context.Context, m *machine.Machine, ops []machine.Operation) (*Report, error) {
	report := &Report{}
	var passDir machine.Direction
	passOps := 0

	closePass := func() {
		if passOps == 0 {
			return
		}
		report.Passes++
		if r.Hooks.OnPass != nil {
			r.Hooks.OnPass(passDir, passOps)
		}
		passOps = 0
	}

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("run interrupted at op %d: %w", i, err)
		}

		if err := m.Execute(op); err != nil {
			report.Rejected++
			report.Failures = append(report.Failures, Failure{Index: i, Op: op, Err: err})
			r.Logger.Warn("operation rejected", "index", i, "op", op.String(), "error", err)
			if r.Hooks.OnReject != nil {
				r.Hooks.OnReject(op, err)
			}
			if !r.ContinueOnError {
				closePass()
				return report, fmt.Errorf("op %d (%s): %w", i, op, err)
			}
			continue
		}

		report.Executed++
		r.Logger.Debug("operation executed", "index", i, "op", op.String())
		if r.Hooks.OnOperation != nil {
			r.Hooks.OnOperation(op)
		}

		if explicitPass(op.Kind) {
			if op.Direction != passDir {
				closePass()
				passDir = op.Direction
			}
			passOps++
		}

		if err := r.checkpoint(ctx, m, i); err != nil {
			return report, err
		}
	}

	closePass()

	if err := r.finalCheckpoint(ctx, m); err != nil {
		return report, err
	}
	r.Logger.Info("run complete",
		"executed", report.Executed,
		"rejected", report.Rejected,
		"passes", report.Passes)
	return report, nil
}

// checkpoint saves mid-run snapshots at the configured cadence.
func (r *Runner) checkpoint(ctx context.Context, m *machine.Machine, index int) error {
	if r.Store == nil || r.CheckpointEvery <= 0 || (index+1)%r.CheckpointEvery != 0 {
		return nil
	}
	if err := r.Store.Save(ctx, r.SessionID, m.Snapshot()); err != nil {
		return fmt.Errorf("checkpoint at op %d: %w", index, err)
	}
	r.Logger.Debug("checkpoint saved", "session", r.SessionID, "op", index)
	return nil
}

func (r *Runner) finalCheckpoint(ctx context.Context, m *machine.Machine) error {
	if r.Store == nil {
		return nil
	}
	if err := r.Store.Save(ctx, r.SessionID, m.Snapshot()); err != nil {
		return fmt.Errorf("final checkpoint: %w", err)
	}
	return nil
}

// explicitPass reports whether the operation participates in carriage
// passes. Transfers, drops, racking and carrier management do not.
func explicitPass(kind machine.OpKind) bool {
	switch kind {
	case machine.OpKnit, machine.OpTuck, machine.OpSplit, machine.OpMiss:
		return true
	}
	return false
}
