package vbed

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/loomcraft/vbed/internal/compiler"
	"github.com/loomcraft/vbed/pkg/machine"
	"github.com/loomcraft/vbed/pkg/ports"
	"github.com/loomcraft/vbed/pkg/runner"
)

// Version is the vbed release version. Overridden at build time via
// -ldflags for tagged releases.
var Version = "0.1.0"

// Simulator is the high-level entry point: one machine plus the
// wiring to run patterns against it and persist its state.
type Simulator struct {
	machine *machine.Machine
	logger  *slog.Logger
	store   ports.SnapshotStore
	hooks   runner.Hooks
}

// Option defines a functional option for configuring the Simulator.
type Option func(*Simulator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithStore configures snapshot persistence.
func WithStore(store ports.SnapshotStore) Option {
	return func(s *Simulator) {
		s.store = store
	}
}

// WithHooks registers execution observers, e.g. a metrics collector.
func WithHooks(hooks runner.Hooks) Option {
	return func(s *Simulator) {
		s.hooks = hooks
	}
}

// New creates a Simulator with an empty machine.
func New(cfg machine.Config, opts ...Option) (*Simulator, error) {
	m, err := machine.New(cfg)
	if err != nil {
		return nil, err
	}
	return newSimulator(m, opts...), nil
}

// NewFromSnapshot creates a Simulator resuming from a saved snapshot.
func NewFromSnapshot(snap machine.Snapshot, opts ...Option) (*Simulator, error) {
	m, err := machine.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("restore snapshot: %w", err)
	}
	return newSimulator(m, opts...), nil
}

// RunPattern parses a YAML pattern document, builds a machine from its
// configuration and executes its operations. The returned report is
// valid even when the run fails partway.
func RunPattern(ctx context.Context, src []byte, opts ...Option) (*Simulator, *runner.Report, error) {
	pattern, err := compiler.NewParser().Parse(src)
	if err != nil {
		return nil, nil, err
	}

	sim, err := New(pattern.Config, opts...)
	if err != nil {
		return nil, nil, err
	}
	report, err := sim.Run(ctx, pattern.Ops)
	return sim, report, err
}

func newSimulator(m *machine.Machine, opts ...Option) *Simulator {
	s := &Simulator{machine: m}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Machine exposes the underlying machine for queries and direct
// execution.
func (s *Simulator) Machine() *machine.Machine { return s.machine }

// Execute validates and applies a single operation.
func (s *Simulator) Execute(op machine.Operation) error {
	return s.machine.Execute(op)
}

// Run executes an operation sequence, aborting on the first rejection.
func (s *Simulator) Run(ctx context.Context, ops []machine.Operation) (*runner.Report, error) {
	r := runner.New(
		runner.WithLogger(s.logger),
		runner.WithHooks(s.hooks),
	)
	return r.Run(ctx, s.machine, ops)
}

// SaveSnapshot persists the current machine state under sessionID.
// Requires WithStore.
func (s *Simulator) SaveSnapshot(ctx context.Context, sessionID string) error {
	if s.store == nil {
		return fmt.Errorf("no snapshot store configured")
	}
	if err := s.store.Save(ctx, sessionID, s.machine.Snapshot()); err != nil {
		return err
	}
	s.logger.Info("snapshot saved", "session", sessionID)
	return nil
}

// LoadSnapshot replaces the machine with the state saved under
// sessionID. Requires WithStore.
func (s *Simulator) LoadSnapshot(ctx context.Context, sessionID string) error {
	if s.store == nil {
		return fmt.Errorf("no snapshot store configured")
	}
	snap, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	m, err := machine.Restore(snap)
	if err != nil {
		return fmt.Errorf("restore snapshot %q: %w", sessionID, err)
	}
	s.machine = m
	s.logger.Info("snapshot loaded", "session", sessionID)
	return nil
}
