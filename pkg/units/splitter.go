package units

import (
	"fmt"
	"math"

	"github.com/prochem/flowsim/pkg/domain"
)

// splitFractionTol bounds how far outlet fractions may drift from 1.0.
const splitFractionTol = 1e-6

type splitterParams struct {
	// Fractions maps outlet stream name to its share of the inlet flow.
	Fractions map[string]float64 `mapstructure:"Fractions"`

	// Position is a valve opening in [0, 100] directing flow to the
	// secondary outlet (the second declared outlet). Ignored when explicit
	// fractions are given.
	Position *float64 `mapstructure:"Position"`
}

// Splitter copies composition and temperature of its single inlet unchanged
// to every outlet and partitions the flow per the configured fractions.
type Splitter struct {
	base
	fractions []float64 // parallel to spec.Outlets
}

func newSplitter(spec domain.UnitSpec, record domain.ParameterRecord) (*Splitter, error) {
	if len(spec.Inlets) != 1 {
		return nil, fmt.Errorf("splitter %q: want exactly 1 inlet, got %d", spec.Name, len(spec.Inlets))
	}
	if len(spec.Outlets) < 2 {
		return nil, fmt.Errorf("splitter %q: want at least 2 outlets, got %d", spec.Name, len(spec.Outlets))
	}

	var params splitterParams
	if err := decodeParams(record, &params); err != nil {
		return nil, fmt.Errorf("splitter %q: %w", spec.Name, err)
	}

	fractions, err := resolveFractions(spec, params)
	if err != nil {
		return nil, err
	}
	return &Splitter{base: base{spec: spec}, fractions: fractions}, nil
}

func resolveFractions(spec domain.UnitSpec, params splitterParams) ([]float64, error) {
	n := len(spec.Outlets)
	fractions := make([]float64, n)

	switch {
	case params.Fractions != nil:
		sum := 0.0
		for i, name := range spec.Outlets {
			f, ok := params.Fractions[name]
			if !ok {
				return nil, fmt.Errorf("splitter %q: no fraction for outlet %q", spec.Name, name)
			}
			fractions[i] = f
			sum += f
		}
		if math.Abs(sum-1.0) > splitFractionTol {
			return nil, &domain.SplitFractionError{Unit: spec.Name, Sum: sum}
		}

	case params.Position != nil:
		if n != 2 {
			return nil, fmt.Errorf("splitter %q: valve position needs exactly 2 outlets, got %d", spec.Name, n)
		}
		pos := *params.Position
		if pos < 0 {
			pos = 0
		}
		if pos > 100 {
			pos = 100
		}
		fractions[1] = pos / 100
		fractions[0] = 1 - fractions[1]

	default:
		// Equal split.
		for i := range fractions {
			fractions[i] = 1.0 / float64(n)
		}
	}
	return fractions, nil
}

// Fractions exposes the resolved split fractions, parallel to the declared
// outlets.
func (s *Splitter) Fractions() []float64 {
	out := make([]float64, len(s.fractions))
	copy(out, s.fractions)
	return out
}

// Evaluate partitions the inlet flow. No phase change, composition and
// temperature pass through untouched.
func (s *Splitter) Evaluate(bus Bus, dt float64) error {
	in, err := bus.Get(s.spec.Inlets[0])
	if err != nil {
		return err
	}
	if !in.Known() {
		return writeUnknown(bus, s.spec.Outlets...)
	}

	for i, name := range s.spec.Outlets {
		out := in.Clone()
		out.Flow = in.Flow * s.fractions[i]
		if err := bus.Set(name, out); err != nil {
			return err
		}
	}
	return nil
}
