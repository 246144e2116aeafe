package solver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prochem/flowsim/internal/logging"
	"github.com/prochem/flowsim/internal/validator"
	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/units"
)

const (
	// DefaultTolerance is the residual below which a pass counts as stable.
	DefaultTolerance = 1e-6
	// DefaultMaxPasses bounds the convergence loop.
	DefaultMaxPasses = 200
	// DefaultStablePasses is how many consecutive stable passes are required
	// before the solve is declared converged. One suffices because the
	// seeding pass already resolved the unknown streams; an open-loop
	// flowsheet therefore converges in exactly one iteration.
	DefaultStablePasses = 1
)

// Option tweaks solver behaviour.
type Option func(*Solver)

// WithTolerance sets the convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(s *Solver) { s.tolerance = tol }
}

// WithMaxPasses caps the number of convergence passes per solve.
func WithMaxPasses(n int) Option {
	return func(s *Solver) { s.maxPasses = n }
}

// WithStablePasses sets how many consecutive passes must stay under
// tolerance before the solve converges.
func WithStablePasses(n int) Option {
	return func(s *Solver) { s.stablePasses = n }
}

// WithLogger replaces the solver's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) { s.logger = l }
}

// WithHooks attaches lifecycle hooks. Repeated options chain.
func WithHooks(h domain.LifecycleHooks) Option {
	return func(s *Solver) { s.hooks = s.hooks.Merge(h) }
}

// Solver runs a flowsheet to steady state or advances it in time. It owns
// the stream registry; a Solver is not safe for concurrent use.
type Solver struct {
	reg   *Registry
	sched *scheduler

	tolerance    float64
	maxPasses    int
	stablePasses int
	logger       *slog.Logger
	hooks        domain.LifecycleHooks
}

// New validates the topology, instantiates every unit model and wires the
// calculation order. Validation failures surface here, before any stream
// has been touched.
func New(topo *domain.Topology, bank domain.ParameterBank, env units.Env, opts ...Option) (*Solver, error) {
	if err := validator.Validate(topo, bank); err != nil {
		return nil, err
	}
	ops := make(map[string]units.Operation, len(topo.Units))
	for name, spec := range topo.Units {
		op, err := units.New(spec, bank[name], env)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", name, err)
		}
		ops[name] = op
	}
	s := &Solver{
		reg:          NewRegistry(topo),
		tolerance:    DefaultTolerance,
		maxPasses:    DefaultMaxPasses,
		stablePasses: DefaultStablePasses,
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	sched, err := newScheduler(s.reg, topo.Order, ops)
	if err != nil {
		return nil, err
	}
	s.sched = sched
	return s, nil
}

// RunSteadyState iterates the calculation order until the largest stream
// change between successive passes stays below tolerance, or the pass cap
// is hit. Each call starts from the seeded topology state.
func (s *Solver) RunSteadyState(ctx context.Context) (*domain.Result, error) {
	started := time.Now()
	s.reg.Reset()

	// Seeding pass: resolves the initially unknown streams so the
	// convergence loop compares fully populated snapshots.
	if err := s.sched.runPass(0); err != nil {
		s.hooks.EmitFailure(err)
		return nil, err
	}
	prev := s.reg.Snapshot()

	trace := make([]float64, 0, s.maxPasses)
	stable := 0
	for iter := 1; iter <= s.maxPasses; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("solve interrupted after %d passes: %w", iter, err)
		}
		s.hooks.EmitPassStart(iter)
		passStarted := time.Now()
		if err := s.sched.runPass(0); err != nil {
			s.hooks.EmitFailure(err)
			return nil, err
		}
		cur := s.reg.Snapshot()
		residual := Residual(prev, cur)
		trace = append(trace, residual)
		s.hooks.EmitPassEnd(domain.PassEvent{
			Pass:     iter,
			Residual: residual,
			Started:  passStarted,
			Elapsed:  time.Since(passStarted),
		})
		s.logger.Debug("pass complete", "pass", iter, "residual", residual)

		if residual <= s.tolerance {
			stable++
		} else {
			stable = 0
		}
		if stable >= s.stablePasses {
			s.hooks.EmitConverged(iter, residual)
			s.logger.Info("converged", "iterations", iter, "residual", residual)
			return &domain.Result{
				Streams:    cur,
				Passes:     iter + 1,
				Iterations: iter,
				Residual:   residual,
				Trace:      trace,
				Elapsed:    time.Since(started),
			}, nil
		}
		prev = cur
	}

	err := &domain.ConvergenceFailure{
		Passes:   s.maxPasses,
		Residual: trace[len(trace)-1],
		Trace:    trace,
	}
	s.hooks.EmitFailure(err)
	return nil, err
}

// Advance steps the flowsheet forward by dt hours: a single sweep of the
// calculation order with holdup terms active. It advances the registry in
// place so repeated calls walk a trajectory.
func (s *Solver) Advance(ctx context.Context, dt float64) (*domain.Result, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("time step must be positive, got %v", dt)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started := time.Now()
	prev := s.reg.Snapshot()
	if err := s.sched.runPass(dt); err != nil {
		s.hooks.EmitFailure(err)
		return nil, err
	}
	cur := s.reg.Snapshot()
	residual := Residual(prev, cur)
	return &domain.Result{
		Streams:    cur,
		Passes:     1,
		Iterations: 1,
		Residual:   residual,
		Trace:      []float64{residual},
		Elapsed:    time.Since(started),
	}, nil
}

// Snapshot freezes the solver's current stream states.
func (s *Solver) Snapshot() domain.Snapshot {
	return s.reg.Snapshot()
}

// Restore overwrites the solver's stream states from a snapshot.
func (s *Solver) Restore(snap domain.Snapshot) error {
	return s.reg.Restore(snap)
}

// Reset returns every stream to its seeded state.
func (s *Solver) Reset() {
	s.reg.Reset()
}
