package domain

import (
	"fmt"
	"math"
)

// Phase tags the aggregate state of a stream. It is derived by unit
// operations, never read from input.
type Phase string

const (
	PhaseUnknown Phase = ""
	PhaseVapor   Phase = "vapor"
	PhaseLiquid  Phase = "liquid"
	PhaseMixed   Phase = "mixed"
)

// CompositionTol bounds how far a mole-fraction vector may drift from
// summing to exactly 1.0 before it is rejected.
const CompositionTol = 1e-3

// StreamState is the mutable record behind a stream name. A nil
// Composition marks the stream as unknown: an internal stream that has not
// been written yet during the current solve. Unknown states are the designed
// cold-start value for recycle loops, not an error.
type StreamState struct {
	// Composition is a mole-fraction vector over Components. Nil until the
	// stream is seeded or first written.
	Composition []float64 `json:"composition,omitempty" yaml:"composition,omitempty"`

	// Temperature in kelvin.
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`

	// Flow is the total molar flow in kmol/h. Zero is a valid, known value
	// (a closed valve), distinct from an unknown stream.
	Flow float64 `json:"flow,omitempty" yaml:"flow,omitempty"`

	// Phase is derived by whichever unit owns the stream.
	Phase Phase `json:"phase,omitempty" yaml:"phase,omitempty"`

	// VaporFraction is the molar vapor fraction; meaningful only when
	// Phase == PhaseMixed.
	VaporFraction float64 `json:"vapor_fraction,omitempty" yaml:"vapor_fraction,omitempty"`
}

// Known reports whether the stream carries a resolvable state.
func (s StreamState) Known() bool {
	return s.Composition != nil
}

// Clone returns a deep copy so registry snapshots cannot alias live state.
func (s StreamState) Clone() StreamState {
	out := s
	if s.Composition != nil {
		out.Composition = make([]float64, len(s.Composition))
		copy(out.Composition, s.Composition)
	}
	return out
}

// NewStreamState builds a known state from a named composition map,
// validating that the fractions cover only slate components and sum to 1.0
// within CompositionTol.
func NewStreamState(composition map[string]float64, temperatureK, flow float64) (StreamState, error) {
	vec := make([]float64, NumComponents)
	sum := 0.0
	for name, frac := range composition {
		i, ok := ComponentIndex(name)
		if !ok {
			return StreamState{}, fmt.Errorf("composition names unknown component %q", name)
		}
		vec[i] = frac
		sum += frac
	}
	if math.Abs(sum-1.0) > CompositionTol {
		return StreamState{}, fmt.Errorf("composition sums to %.6f, expected 1.0", sum)
	}
	return StreamState{
		Composition: vec,
		Temperature: temperatureK,
		Flow:        flow,
	}, nil
}
