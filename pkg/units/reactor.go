package units

import (
	"fmt"
	"math"

	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/quantity"
	"github.com/prochem/flowsim/pkg/thermo"
)

// massBalanceTol is the relative tolerance on per-component conservation.
const massBalanceTol = 1e-6

type reactorParams struct {
	Volume      quantity.Quantity `mapstructure:"Volume"`
	Temperature quantity.Quantity `mapstructure:"Temperature"`
	Pressure    quantity.Quantity `mapstructure:"Pressure"`
	Reactions   []string          `mapstructure:"Reactions"`
}

// Reactor is a continuous stirred-tank model: the reacting volume sits at
// the configured operating temperature and pressure, reaction extents follow
// power-law Arrhenius rates in partial pressures, and the jacket removes the
// heat of reaction through the cooling-water pair.
type Reactor struct {
	base
	props     thermo.Properties
	reactions []*thermo.Reaction

	volume      float64 // m³
	temperature float64 // K, operating
	pressure    float64 // Pa
}

func newReactor(spec domain.UnitSpec, record domain.ParameterRecord, env Env) (*Reactor, error) {
	if len(spec.Inlets) < 1 {
		return nil, fmt.Errorf("reactor %q: want at least 1 inlet", spec.Name)
	}
	if len(spec.Outlets) != 1 {
		return nil, fmt.Errorf("reactor %q: want exactly 1 outlet, got %d", spec.Name, len(spec.Outlets))
	}

	var params reactorParams
	if err := decodeParams(record, &params); err != nil {
		return nil, fmt.Errorf("reactor %q: %w", spec.Name, err)
	}

	volume, err := params.Volume.CubicMeters()
	if err != nil {
		return nil, fmt.Errorf("reactor %q volume: %w", spec.Name, err)
	}
	tempK, err := params.Temperature.Kelvin()
	if err != nil {
		return nil, fmt.Errorf("reactor %q temperature: %w", spec.Name, err)
	}
	pressurePa, err := params.Pressure.Pascal()
	if err != nil {
		return nil, fmt.Errorf("reactor %q pressure: %w", spec.Name, err)
	}

	reactions := make([]*thermo.Reaction, 0, len(params.Reactions))
	for _, name := range params.Reactions {
		r, ok := env.Reactions[name]
		if !ok {
			return nil, fmt.Errorf("reactor %q: unknown reaction %q", spec.Name, name)
		}
		reactions = append(reactions, r)
	}

	return &Reactor{
		base:        base{spec: spec},
		props:       env.Properties,
		reactions:   reactions,
		volume:      volume,
		temperature: tempK,
		pressure:    pressurePa,
	}, nil
}

func (r *Reactor) Evaluate(bus Bus, dt float64) error {
	feedStates := make([]domain.StreamState, 0, len(r.spec.Inlets))
	for _, name := range r.spec.Inlets {
		st, err := bus.Get(name)
		if err != nil {
			return err
		}
		feedStates = append(feedStates, st)
	}
	feed := mixStates(feedStates, r.props)

	if !feed.Known() {
		if err := writeUnknown(bus, r.spec.Outlets[0]); err != nil {
			return err
		}
		return r.updateJacket(bus, 0)
	}

	inflow := make([]float64, domain.NumComponents)
	for i, x := range feed.Composition {
		inflow[i] = feed.Flow * x
	}

	extents := r.extents(feed)
	generation := make([]float64, domain.NumComponents)
	for ri, rx := range r.reactions {
		for i, name := range rx.Components {
			idx, _ := domain.ComponentIndex(name)
			generation[idx] += rx.Stoich[i] * extents[ri]
		}
	}

	outflow := make([]float64, domain.NumComponents)
	total := 0.0
	for i := range outflow {
		outflow[i] = inflow[i] + generation[i]
		total += outflow[i]
	}

	if err := r.checkBalance(inflow, generation, outflow); err != nil {
		return err
	}

	composition := make([]float64, domain.NumComponents)
	if total > 0 {
		for i := range composition {
			composition[i] = outflow[i] / total
		}
	}

	if err := bus.Set(r.spec.Outlets[0], domain.StreamState{
		Composition: composition,
		Temperature: r.temperature,
		Flow:        total,
		Phase:       domain.PhaseVapor,
	}); err != nil {
		return err
	}

	// kJ/h: extent kmol/h times enthalpy J/mol.
	duty := 0.0
	for ri, rx := range r.reactions {
		duty += extents[ri] * -rx.Enthalpy
	}
	return r.updateJacket(bus, duty)
}

// extents computes per-reaction extents in kmol/h, capped so that no
// component outflow goes negative.
func (r *Reactor) extents(feed domain.StreamState) []float64 {
	partials := make([]float64, domain.NumComponents)
	for i, x := range feed.Composition {
		partials[i] = x * r.pressure
	}

	extents := make([]float64, len(r.reactions))
	for ri, rx := range r.reactions {
		extents[ri] = rx.Rate(r.temperature, partials) * r.volume
	}

	// A rate law can overshoot the available feed of a reactant within one
	// balance; scale every extent down uniformly until all outflows stay
	// non-negative, preserving stoichiometric consistency.
	scale := 1.0
	for i := range domain.Components {
		inflow := feed.Flow * feed.Composition[i]
		consumed := 0.0
		for ri, rx := range r.reactions {
			for ci, name := range rx.Components {
				idx, _ := domain.ComponentIndex(name)
				if idx == i && rx.Stoich[ci] < 0 {
					consumed += -rx.Stoich[ci] * extents[ri]
				}
			}
		}
		if consumed > inflow && consumed > 0 {
			s := inflow / consumed * 0.999
			if s < scale {
				scale = s
			}
		}
	}
	if scale < 1.0 {
		for ri := range extents {
			extents[ri] *= scale
		}
	}
	return extents
}

func (r *Reactor) checkBalance(inflow, generation, outflow []float64) error {
	for i, name := range domain.Components {
		want := inflow[i] + generation[i]
		if math.IsNaN(outflow[i]) || math.Abs(outflow[i]-want) > massBalanceTol*math.Max(1, math.Abs(want)) {
			return &domain.MassImbalanceError{
				Unit:      r.spec.Name,
				Component: name,
				In:        want,
				Out:       outflow[i],
			}
		}
	}
	return nil
}

// updateJacket writes the cooling-water outlet: same water stream, heated by
// the removed duty. A reactor without a jacket is allowed.
func (r *Reactor) updateJacket(bus Bus, dutyKJH float64) error {
	if r.spec.Jacket == nil {
		return nil
	}
	coolant, err := bus.Get(r.spec.Jacket.Inlet)
	if err != nil {
		return err
	}
	if !coolant.Known() {
		return writeUnknown(bus, r.spec.Jacket.Outlet)
	}

	out := coolant.Clone()
	out.Phase = domain.PhaseLiquid
	if coolant.Flow > 0 && dutyKJH > 0 {
		cp := thermo.MixtureHeatCapacity(r.props, coolant.Composition, coolant.Temperature, domain.PhaseLiquid)
		out.Temperature = coolant.Temperature + dutyKJH/(coolant.Flow*cp)
	}
	return bus.Set(r.spec.Jacket.Outlet, out)
}
