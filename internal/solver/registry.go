package solver

import (
	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/units"
)

// Registry is the shared mutable blackboard: every declared stream name
// mapped to its current state. All access is synchronous; there is exactly
// one writer per stream and readers always see the latest committed write.
type Registry struct {
	streams map[string]*domain.StreamState
	seeds   map[string]domain.StreamState
	owners  map[string]string
	writes  map[string]int
}

// NewRegistry builds a registry from the declared streams, seeding the ones
// that carry initial state. Unseeded streams start unknown.
func NewRegistry(topo *domain.Topology) *Registry {
	r := &Registry{
		streams: make(map[string]*domain.StreamState, len(topo.Streams)),
		seeds:   make(map[string]domain.StreamState, len(topo.Streams)),
		owners:  topo.StreamOwners(),
		writes:  make(map[string]int),
	}
	for name, seed := range topo.Streams {
		st := seed.Clone()
		r.streams[name] = &st
		r.seeds[name] = seed.Clone()
	}
	return r
}

// Reset restores every stream to its seed state and clears pass bookkeeping.
func (r *Registry) Reset() {
	for name := range r.streams {
		st := r.seeds[name].Clone()
		r.streams[name] = &st
	}
	r.writes = make(map[string]int)
}

// Get returns a copy of the named stream state.
func (r *Registry) Get(name string) (domain.StreamState, error) {
	st, ok := r.streams[name]
	if !ok {
		return domain.StreamState{}, &domain.UnknownStreamError{Name: name}
	}
	return st.Clone(), nil
}

// set overwrites the full state of a stream on behalf of a unit. The write
// is rejected when the unit does not own the stream: that is a unit-model
// bug, not a user error.
func (r *Registry) set(unit, name string, state domain.StreamState) error {
	if _, ok := r.streams[name]; !ok {
		return &domain.UnknownStreamError{Name: name}
	}
	if owner := r.owners[name]; owner != unit {
		return &domain.StreamWriteError{Unit: unit, Stream: name}
	}
	st := state.Clone()
	r.streams[name] = &st
	r.writes[name]++
	return nil
}

// BeginPass resets the per-pass write counters.
func (r *Registry) BeginPass() {
	r.writes = make(map[string]int)
}

// WriteCount reports how many times a stream was written this pass.
func (r *Registry) WriteCount(name string) int {
	return r.writes[name]
}

// Snapshot freezes the current state of every stream.
func (r *Registry) Snapshot() domain.Snapshot {
	out := make(domain.Snapshot, len(r.streams))
	for name, st := range r.streams {
		out[name] = st.Clone()
	}
	return out
}

// Restore overwrites the registry from a snapshot, bypassing ownership.
// Used to resume a dynamic run from a stored state.
func (r *Registry) Restore(snap domain.Snapshot) error {
	for name, st := range snap {
		if _, ok := r.streams[name]; !ok {
			return &domain.UnknownStreamError{Name: name}
		}
		clone := st.Clone()
		r.streams[name] = &clone
	}
	return nil
}

// unitBus is the per-unit view handed to Evaluate: reads anything, writes
// only what the unit owns.
type unitBus struct {
	reg  *Registry
	unit string
}

var _ units.Bus = unitBus{}

func (b unitBus) Get(name string) (domain.StreamState, error) {
	return b.reg.Get(name)
}

func (b unitBus) Set(name string, state domain.StreamState) error {
	return b.reg.set(b.unit, name, state)
}

// Bus returns the registry view for one unit.
func (r *Registry) Bus(unit string) units.Bus {
	return unitBus{reg: r, unit: unit}
}
