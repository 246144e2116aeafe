package units

import (
	"fmt"
	"math"

	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/quantity"
	"github.com/prochem/flowsim/pkg/thermo"
)

type heatExchangerParams struct {
	// UA is the overall transfer coefficient times area, in W/K.
	UA quantity.Quantity `mapstructure:"UA"`

	// Condense enables a vapor-liquid flash of the hot outlet at the given
	// pressure, tagging its phase and vapor fraction.
	Condense bool              `mapstructure:"Condense"`
	Pressure quantity.Quantity `mapstructure:"Pressure"`
}

// HeatExchanger is a counter-current effectiveness-NTU model over a hot and
// a cold pair: inlets [hot, cold], outlets [hot out, cold out]. Composition
// passes through both sides unchanged; a condenser additionally derives the
// hot outlet phase from the vapor-liquid equilibrium capability.
type HeatExchanger struct {
	base
	props thermo.Properties

	ua       float64 // kJ/(h·K)
	condense bool
	pressure float64 // Pa, flash pressure when condensing
}

func newHeatExchanger(spec domain.UnitSpec, record domain.ParameterRecord, props thermo.Properties) (*HeatExchanger, error) {
	if len(spec.Inlets) != 2 || len(spec.Outlets) != 2 {
		return nil, fmt.Errorf("heat exchanger %q: want 2 inlets and 2 outlets, got %d/%d",
			spec.Name, len(spec.Inlets), len(spec.Outlets))
	}

	var params heatExchangerParams
	if err := decodeParams(record, &params); err != nil {
		return nil, fmt.Errorf("heat exchanger %q: %w", spec.Name, err)
	}

	if params.UA.Units == "" {
		return nil, fmt.Errorf("heat exchanger %q: missing UA", spec.Name)
	}
	uaWK := params.UA.Val
	switch params.UA.Units {
	case "W/K", "w/k":
	case "kW/K", "kw/k":
		uaWK *= 1e3
	default:
		return nil, fmt.Errorf("heat exchanger %q: unsupported UA units %q", spec.Name, params.UA.Units)
	}

	hx := &HeatExchanger{
		base:     base{spec: spec},
		props:    props,
		ua:       uaWK * 3.6, // W/K -> kJ/(h·K)
		condense: params.Condense,
	}
	if params.Condense {
		p, err := params.Pressure.Pascal()
		if err != nil {
			return nil, fmt.Errorf("heat exchanger %q pressure: %w", spec.Name, err)
		}
		hx.pressure = p
	}
	return hx, nil
}

func (h *HeatExchanger) Evaluate(bus Bus, dt float64) error {
	hot, err := bus.Get(h.spec.Inlets[0])
	if err != nil {
		return err
	}
	cold, err := bus.Get(h.spec.Inlets[1])
	if err != nil {
		return err
	}

	// One side missing: no duty, the resolvable side passes through.
	if !hot.Known() || !cold.Known() {
		if err := h.passthrough(bus, h.spec.Outlets[0], hot); err != nil {
			return err
		}
		return h.passthrough(bus, h.spec.Outlets[1], cold)
	}

	cpHot := thermo.MixtureHeatCapacity(h.props, hot.Composition, hot.Temperature, hot.Phase)
	cpCold := thermo.MixtureHeatCapacity(h.props, cold.Composition, cold.Temperature, cold.Phase)
	capHot := hot.Flow * cpHot   // kJ/(h·K)
	capCold := cold.Flow * cpCold

	duty := h.duty(hot.Temperature, cold.Temperature, capHot, capCold)

	hotOut := hot.Clone()
	coldOut := cold.Clone()
	if capHot > 0 {
		hotOut.Temperature = hot.Temperature - duty/capHot
	}
	if capCold > 0 {
		coldOut.Temperature = cold.Temperature + duty/capCold
	}

	if h.condense {
		h.tagPhase(&hotOut)
	}

	if err := bus.Set(h.spec.Outlets[0], hotOut); err != nil {
		return err
	}
	return bus.Set(h.spec.Outlets[1], coldOut)
}

// duty applies the counterflow effectiveness-NTU relation, in kJ/h.
func (h *HeatExchanger) duty(hotT, coldT, capHot, capCold float64) float64 {
	if hotT <= coldT || capHot <= 0 || capCold <= 0 {
		return 0
	}
	cmin, cmax := capHot, capCold
	if cmin > cmax {
		cmin, cmax = cmax, cmin
	}
	ntu := h.ua / cmin
	ratio := cmin / cmax

	var eff float64
	if math.Abs(1-ratio) < 1e-9 {
		eff = ntu / (1 + ntu)
	} else {
		e := math.Exp(-ntu * (1 - ratio))
		eff = (1 - e) / (1 - ratio*e)
	}
	return eff * cmin * (hotT - coldT)
}

// tagPhase flashes the cooled hot stream at the condenser pressure and
// labels its phase split. The composition is untouched; downstream vessels
// do the actual separation.
func (h *HeatExchanger) tagPhase(st *domain.StreamState) {
	ks := thermo.KValues(h.props, st.Temperature, h.pressure)
	fl := Flash(st.Composition, ks)
	switch {
	case fl.VaporFraction <= 0:
		st.Phase = domain.PhaseLiquid
		st.VaporFraction = 0
	case fl.VaporFraction >= 1:
		st.Phase = domain.PhaseVapor
		st.VaporFraction = 0
	default:
		st.Phase = domain.PhaseMixed
		st.VaporFraction = fl.VaporFraction
	}
}

func (h *HeatExchanger) passthrough(bus Bus, outlet string, in domain.StreamState) error {
	if !in.Known() {
		return writeUnknown(bus, outlet)
	}
	return bus.Set(outlet, in.Clone())
}
