package units

import (
	"fmt"
	"math"

	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/quantity"
	"github.com/prochem/flowsim/pkg/thermo"
)

type separatorParams struct {
	Temperature quantity.Quantity `mapstructure:"Temperature"`
	Pressure    quantity.Quantity `mapstructure:"Pressure"`
}

// Separator is a single-stage vapor-liquid flash drum: the feed is
// partitioned into a vapor and a liquid outlet satisfying Raoult's-law
// equilibrium at the drum temperature and pressure.
type Separator struct {
	base
	props thermo.Properties

	temperature float64 // K; 0 means flash at feed temperature
	pressure    float64 // Pa
}

func newSeparator(spec domain.UnitSpec, record domain.ParameterRecord, props thermo.Properties) (*Separator, error) {
	if len(spec.Inlets) != 1 {
		return nil, fmt.Errorf("separator %q: want exactly 1 inlet, got %d", spec.Name, len(spec.Inlets))
	}
	if len(spec.Outlets) != 2 {
		return nil, fmt.Errorf("separator %q: want vapor and liquid outlets, got %d", spec.Name, len(spec.Outlets))
	}

	var params separatorParams
	if err := decodeParams(record, &params); err != nil {
		return nil, fmt.Errorf("separator %q: %w", spec.Name, err)
	}
	pressurePa, err := params.Pressure.Pascal()
	if err != nil {
		return nil, fmt.Errorf("separator %q pressure: %w", spec.Name, err)
	}
	sep := &Separator{
		base:     base{spec: spec},
		props:    props,
		pressure: pressurePa,
	}
	if params.Temperature.Units != "" {
		tempK, err := params.Temperature.Kelvin()
		if err != nil {
			return nil, fmt.Errorf("separator %q temperature: %w", spec.Name, err)
		}
		sep.temperature = tempK
	}
	return sep, nil
}

func (s *Separator) Evaluate(bus Bus, dt float64) error {
	feed, err := bus.Get(s.spec.Inlets[0])
	if err != nil {
		return err
	}
	if !feed.Known() {
		return writeUnknown(bus, s.spec.Outlets...)
	}

	tempK := s.temperature
	if tempK == 0 {
		tempK = feed.Temperature
	}

	ks := thermo.KValues(s.props, tempK, s.pressure)
	fl := Flash(feed.Composition, ks)

	vapor := domain.StreamState{
		Composition: fl.Vapor,
		Temperature: tempK,
		Flow:        feed.Flow * fl.VaporFraction,
		Phase:       domain.PhaseVapor,
	}
	liquid := domain.StreamState{
		Composition: fl.Liquid,
		Temperature: tempK,
		Flow:        feed.Flow * (1 - fl.VaporFraction),
		Phase:       domain.PhaseLiquid,
	}

	if err := checkSplitBalance(s.spec.Name, feed, vapor, liquid); err != nil {
		return err
	}
	if err := bus.Set(s.spec.Outlets[0], vapor); err != nil {
		return err
	}
	return bus.Set(s.spec.Outlets[1], liquid)
}

// checkSplitBalance verifies per-component mole conservation of a two-way
// equilibrium split against its combined feed.
func checkSplitBalance(unit string, feed, vapor, liquid domain.StreamState) error {
	for i, name := range domain.Components {
		in := feed.Flow * feed.Composition[i]
		out := vapor.Flow*vapor.Composition[i] + liquid.Flow*liquid.Composition[i]
		if math.IsNaN(out) || math.Abs(out-in) > massBalanceTol*math.Max(1, math.Abs(in)) {
			return &domain.MassImbalanceError{Unit: unit, Component: name, In: in, Out: out}
		}
	}
	return nil
}
