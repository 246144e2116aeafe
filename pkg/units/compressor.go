package units

import (
	"fmt"
	"math"

	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/thermo"
)

type compressorParams struct {
	// PressureRatio is outlet over inlet pressure, > 1.
	PressureRatio float64 `mapstructure:"Pressure Ratio"`

	// Efficiency is the isentropic efficiency in (0, 1].
	Efficiency float64 `mapstructure:"Efficiency"`

	// Gamma is the heat capacity ratio cp/cv of the gas.
	Gamma float64 `mapstructure:"Gamma"`
}

// Compressor raises the temperature of a gas stream along an isentropic
// path corrected by efficiency. Composition and flow pass through
// unchanged.
type Compressor struct {
	base
	props thermo.Properties

	ratio      float64
	efficiency float64
	gamma      float64
}

func newCompressor(spec domain.UnitSpec, record domain.ParameterRecord, props thermo.Properties) (*Compressor, error) {
	if len(spec.Inlets) != 1 || len(spec.Outlets) != 1 {
		return nil, fmt.Errorf("compressor %q: want 1 inlet and 1 outlet, got %d/%d",
			spec.Name, len(spec.Inlets), len(spec.Outlets))
	}

	var params compressorParams
	if err := decodeParams(record, &params); err != nil {
		return nil, fmt.Errorf("compressor %q: %w", spec.Name, err)
	}
	if params.PressureRatio <= 1 {
		return nil, fmt.Errorf("compressor %q: pressure ratio must exceed 1, got %g", spec.Name, params.PressureRatio)
	}
	eff := params.Efficiency
	if eff <= 0 || eff > 1 {
		eff = 0.75
	}
	gamma := params.Gamma
	if gamma <= 1 {
		gamma = 1.3
	}
	return &Compressor{
		base:       base{spec: spec},
		props:      props,
		ratio:      params.PressureRatio,
		efficiency: eff,
		gamma:      gamma,
	}, nil
}

func (c *Compressor) Evaluate(bus Bus, dt float64) error {
	in, err := bus.Get(c.spec.Inlets[0])
	if err != nil {
		return err
	}
	if !in.Known() {
		return writeUnknown(bus, c.spec.Outlets[0])
	}

	out := in.Clone()
	exponent := (c.gamma - 1) / c.gamma
	ideal := math.Pow(c.ratio, exponent) - 1
	out.Temperature = in.Temperature * (1 + ideal/c.efficiency)
	out.Phase = domain.PhaseVapor
	out.VaporFraction = 0
	return bus.Set(c.spec.Outlets[0], out)
}

// Work returns the shaft work for a given stream state in kJ/h, a
// diagnostic used by the sensor surface.
func (c *Compressor) Work(in domain.StreamState) float64 {
	if !in.Known() || in.Flow <= 0 {
		return 0
	}
	cp := thermo.MixtureHeatCapacity(c.props, in.Composition, in.Temperature, domain.PhaseVapor)
	exponent := (c.gamma - 1) / c.gamma
	ideal := math.Pow(c.ratio, exponent) - 1
	deltaT := in.Temperature * ideal / c.efficiency
	return in.Flow * cp * deltaT
}
