package units

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/thermo"
)

// Bus gives a unit access to the stream registry during evaluation. The
// registry enforces that a unit only writes streams it declares as outlets.
type Bus interface {
	Get(name string) (domain.StreamState, error)
	Set(name string, state domain.StreamState) error
}

// Operation is the single evaluation contract shared by all unit kinds:
// read the declared inlets from the bus, write the declared outlets.
type Operation interface {
	Name() string
	Kind() domain.Kind
	Spec() domain.UnitSpec

	// Evaluate runs the unit model once. dt is the timestep in hours for
	// dynamic stepping; zero means a steady-state balance.
	Evaluate(bus Bus, dt float64) error
}

// Env bundles the capability providers handed to unit constructors.
type Env struct {
	Properties thermo.Properties
	Reactions  map[string]*thermo.Reaction
}

// New constructs the Operation matching the declared kind, decoding the
// opaque parameter record into the kind-specific parameters.
func New(spec domain.UnitSpec, record domain.ParameterRecord, env Env) (Operation, error) {
	switch spec.Kind {
	case domain.KindSplitter:
		return newSplitter(spec, record)
	case domain.KindJoin:
		return newJoin(spec, env.Properties)
	case domain.KindReactor:
		return newReactor(spec, record, env)
	case domain.KindHeatExchanger:
		return newHeatExchanger(spec, record, env.Properties)
	case domain.KindSeparator:
		return newSeparator(spec, record, env.Properties)
	case domain.KindStripper:
		return newStripper(spec, record, env.Properties)
	case domain.KindCompressor:
		return newCompressor(spec, record, env.Properties)
	default:
		return nil, fmt.Errorf("unit %q: unrecognized kind %q", spec.Name, spec.Kind)
	}
}

// base carries the declaration shared by every implementation.
type base struct {
	spec domain.UnitSpec
}

func (b base) Name() string          { return b.spec.Name }
func (b base) Kind() domain.Kind     { return b.spec.Kind }
func (b base) Spec() domain.UnitSpec { return b.spec }

// decodeParams maps an opaque parameter record onto a typed parameter
// struct. Weak typing lets YAML integers fill float fields.
func decodeParams(record domain.ParameterRecord, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(record))
}

// writeUnknown marks every outlet of a unit as unknown. Used to propagate
// the cold-start state through a unit whose inlets are not resolvable yet.
func writeUnknown(bus Bus, outlets ...string) error {
	for _, name := range outlets {
		if err := bus.Set(name, domain.StreamState{}); err != nil {
			return err
		}
	}
	return nil
}
