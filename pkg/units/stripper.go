package units

import (
	"fmt"

	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/quantity"
	"github.com/prochem/flowsim/pkg/thermo"
)

type stripperParams struct {
	Temperature quantity.Quantity `mapstructure:"Temperature"`
	Pressure    quantity.Quantity `mapstructure:"Pressure"`

	// Efficiency is a Murphree-style stage efficiency in (0, 1]; values
	// below 1 pull the equilibrium ratios toward unity.
	Efficiency float64 `mapstructure:"Efficiency"`
}

// Stripper is a staged column reduced to one effective equilibrium stage:
// the three feeds (fresh feed, liquid recycle, reboiler return) are combined
// and split into an overhead vapor and a bottoms liquid using
// efficiency-damped equilibrium ratios.
type Stripper struct {
	base
	props thermo.Properties

	temperature float64
	pressure    float64
	efficiency  float64
}

func newStripper(spec domain.UnitSpec, record domain.ParameterRecord, props thermo.Properties) (*Stripper, error) {
	if len(spec.Inlets) < 1 {
		return nil, fmt.Errorf("stripper %q: want at least 1 feed", spec.Name)
	}
	if len(spec.Outlets) != 2 {
		return nil, fmt.Errorf("stripper %q: want overhead and bottoms outlets, got %d", spec.Name, len(spec.Outlets))
	}

	var params stripperParams
	if err := decodeParams(record, &params); err != nil {
		return nil, fmt.Errorf("stripper %q: %w", spec.Name, err)
	}
	tempK, err := params.Temperature.Kelvin()
	if err != nil {
		return nil, fmt.Errorf("stripper %q temperature: %w", spec.Name, err)
	}
	pressurePa, err := params.Pressure.Pascal()
	if err != nil {
		return nil, fmt.Errorf("stripper %q pressure: %w", spec.Name, err)
	}
	eff := params.Efficiency
	if eff <= 0 || eff > 1 {
		eff = 1
	}
	return &Stripper{
		base:        base{spec: spec},
		props:       props,
		temperature: tempK,
		pressure:    pressurePa,
		efficiency:  eff,
	}, nil
}

func (s *Stripper) Evaluate(bus Bus, dt float64) error {
	feedStates := make([]domain.StreamState, 0, len(s.spec.Inlets))
	for _, name := range s.spec.Inlets {
		st, err := bus.Get(name)
		if err != nil {
			return err
		}
		feedStates = append(feedStates, st)
	}
	// Like a join, the column mixes whichever feeds are resolvable; the
	// reboiler return arrives late during a cold start.
	feed := mixStates(feedStates, s.props)
	if !feed.Known() {
		return writeUnknown(bus, s.spec.Outlets...)
	}

	ks := thermo.KValues(s.props, s.temperature, s.pressure)
	for i := range ks {
		ks[i] = 1 + s.efficiency*(ks[i]-1)
	}
	fl := Flash(feed.Composition, ks)

	overhead := domain.StreamState{
		Composition: fl.Vapor,
		Temperature: s.temperature,
		Flow:        feed.Flow * fl.VaporFraction,
		Phase:       domain.PhaseVapor,
	}
	bottoms := domain.StreamState{
		Composition: fl.Liquid,
		Temperature: s.temperature,
		Flow:        feed.Flow * (1 - fl.VaporFraction),
		Phase:       domain.PhaseLiquid,
	}

	if err := checkSplitBalance(s.spec.Name, feed, overhead, bottoms); err != nil {
		return err
	}
	if err := bus.Set(s.spec.Outlets[0], overhead); err != nil {
		return err
	}
	return bus.Set(s.spec.Outlets[1], bottoms)
}
