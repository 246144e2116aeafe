package units

import (
	"fmt"

	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/thermo"
)

// Join mixes N inlet streams into one outlet: flow-weighted composition,
// enthalpy-consistent temperature, summed flow.
//
// Unknown inlets are skipped rather than raised on: during the first passes
// of a cold start a recycle inlet has no value yet, and mixing only the
// resolvable inlets is exactly what lets the loop bootstrap. Only when no
// inlet is resolvable does the join propagate unknown to its outlet.
type Join struct {
	base
	props thermo.Properties
}

func newJoin(spec domain.UnitSpec, props thermo.Properties) (*Join, error) {
	if len(spec.Inlets) < 1 {
		return nil, fmt.Errorf("join %q: want at least 1 inlet", spec.Name)
	}
	if len(spec.Outlets) != 1 {
		return nil, fmt.Errorf("join %q: want exactly 1 outlet, got %d", spec.Name, len(spec.Outlets))
	}
	return &Join{base: base{spec: spec}, props: props}, nil
}

func (j *Join) Evaluate(bus Bus, dt float64) error {
	states := make([]domain.StreamState, 0, len(j.spec.Inlets))
	for _, name := range j.spec.Inlets {
		st, err := bus.Get(name)
		if err != nil {
			return err
		}
		states = append(states, st)
	}
	return bus.Set(j.spec.Outlets[0], mixStates(states, j.props))
}

// mixStates blends the known subset of states. Shared by Join, Reactor and
// Stripper feed handling.
func mixStates(states []domain.StreamState, props thermo.Properties) domain.StreamState {
	known := states[:0:0]
	for _, st := range states {
		if st.Known() {
			known = append(known, st)
		}
	}
	if len(known) == 0 {
		return domain.StreamState{}
	}

	totalFlow := 0.0
	for _, st := range known {
		totalFlow += st.Flow
	}

	comp := make([]float64, domain.NumComponents)
	if totalFlow > 0 {
		for _, st := range known {
			for i, x := range st.Composition {
				comp[i] += st.Flow * x / totalFlow
			}
		}
	} else {
		copy(comp, known[0].Composition)
	}

	// Temperature from a heat balance with linearized cp: the mix
	// temperature is the cp-and-flow weighted mean of the inlet
	// temperatures.
	tempWeight, weight := 0.0, 0.0
	for _, st := range known {
		if st.Flow <= 0 {
			continue
		}
		cp := thermo.MixtureHeatCapacity(props, st.Composition, st.Temperature, st.Phase)
		w := st.Flow * cp
		tempWeight += w * st.Temperature
		weight += w
	}
	temperature := known[0].Temperature
	if weight > 0 {
		temperature = tempWeight / weight
	}

	return domain.StreamState{
		Composition:   comp,
		Temperature:   temperature,
		Flow:          totalFlow,
		Phase:         mixedPhase(known),
		VaporFraction: mixedVaporFraction(known, totalFlow),
	}
}

func mixedPhase(known []domain.StreamState) domain.Phase {
	phase := known[0].Phase
	for _, st := range known[1:] {
		if st.Phase != phase {
			return domain.PhaseMixed
		}
	}
	return phase
}

func mixedVaporFraction(known []domain.StreamState, totalFlow float64) float64 {
	if totalFlow <= 0 {
		return 0
	}
	vapor := 0.0
	for _, st := range known {
		switch st.Phase {
		case domain.PhaseVapor:
			vapor += st.Flow
		case domain.PhaseMixed:
			vapor += st.Flow * st.VaporFraction
		}
	}
	return vapor / totalFlow
}
