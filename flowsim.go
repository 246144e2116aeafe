package flowsim

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/prochem/flowsim/internal/logging"
	"github.com/prochem/flowsim/internal/solver"
	"github.com/prochem/flowsim/internal/validator"
	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/loader"
	"github.com/prochem/flowsim/pkg/thermo"
	"github.com/prochem/flowsim/pkg/units"
)

// Engine is the high-level entry point for the flowsim library.
// It wraps the internal solver and provides a simplified API for consumers.
type Engine struct {
	solver     *solver.Solver
	topology   *domain.Topology
	parameters domain.ParameterBank
	properties thermo.Properties
	reactions  map[string]*thermo.Reaction
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	solverOpts []solver.Option
	Name       string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithTopology injects a ready topology and parameter bank, bypassing the
// default plant-directory loading.
func WithTopology(topo *domain.Topology, bank domain.ParameterBank) Option {
	return func(e *Engine) {
		e.topology = topo
		e.parameters = bank
	}
}

// WithProperties sets the thermophysical property source for unit models.
func WithProperties(p thermo.Properties) Option {
	return func(e *Engine) {
		e.properties = p
	}
}

// WithReactions sets the reaction set available to reactor units.
func WithReactions(set map[string]*thermo.Reaction) Option {
	return func(e *Engine) {
		e.reactions = set
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTolerance sets the steady-state convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(e *Engine) {
		e.solverOpts = append(e.solverOpts, solver.WithTolerance(tol))
	}
}

// WithMaxPasses caps the number of convergence passes per solve.
func WithMaxPasses(n int) Option {
	return func(e *Engine) {
		e.solverOpts = append(e.solverOpts, solver.WithMaxPasses(n))
	}
}

// WithStablePasses sets how many consecutive passes must stay under
// tolerance before a solve is declared converged.
func WithStablePasses(n int) Option {
	return func(e *Engine) {
		e.solverOpts = append(e.solverOpts, solver.WithStablePasses(n))
	}
}

// New initializes a flowsheet Engine.
// By default it loads the plant definition from the given directory
// (flowsheet.yaml plus the components/ and reactions/ banks).
// If WithTopology is provided, plantDir can be empty and loading is skipped.
func New(plantDir string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	// Apply options first to check whether a topology is injected.
	for _, opt := range opts {
		opt(eng)
	}

	if eng.topology == nil {
		if plantDir == "" {
			return nil, fmt.Errorf("plantDir is required when no topology is provided")
		}
		absPath, err := filepath.Abs(plantDir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)

		plant, err := loader.LoadPlant(absPath)
		if err != nil {
			return nil, err
		}
		eng.topology = plant.Topology
		eng.parameters = plant.Parameters
		if eng.properties == nil && plant.Components != nil {
			eng.properties = plant.Components
		}
		if eng.reactions == nil {
			eng.reactions = plant.Reactions
		}
	} else if plantDir != "" {
		// With an injected topology the path is only a descriptive label.
		eng.Name = filepath.Base(plantDir)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("plant", eng.Name)
	}

	solverOpts := []solver.Option{
		solver.WithLogger(eng.logger),
		solver.WithHooks(eng.hooks),
	}
	solverOpts = append(solverOpts, eng.solverOpts...)

	s, err := solver.New(eng.topology, eng.parameters, units.Env{
		Properties: eng.properties,
		Reactions:  eng.reactions,
	}, solverOpts...)
	if err != nil {
		return nil, err
	}
	eng.solver = s

	return eng, nil
}

// Solve runs the flowsheet to steady state from its seeded initial state.
func (e *Engine) Solve(ctx context.Context) (*domain.Result, error) {
	return e.solver.RunSteadyState(ctx)
}

// Advance steps the flowsheet forward by dt hours from its current state.
func (e *Engine) Advance(ctx context.Context, dt float64) (*domain.Result, error) {
	return e.solver.Advance(ctx, dt)
}

// Snapshot freezes the current state of every stream.
func (e *Engine) Snapshot() domain.Snapshot {
	return e.solver.Snapshot()
}

// Restore overwrites stream states from a snapshot, e.g. one read back
// from a snapshot store.
func (e *Engine) Restore(snap domain.Snapshot) error {
	return e.solver.Restore(snap)
}

// Reset returns every stream to its seeded state.
func (e *Engine) Reset() {
	e.solver.Reset()
}

// Topology returns the flowsheet definition for inspection tools.
func (e *Engine) Topology() *domain.Topology {
	return e.topology
}

// Validate checks a topology and parameter bank without building an engine.
func Validate(topo *domain.Topology, bank domain.ParameterBank) error {
	return validator.Validate(topo, bank)
}
