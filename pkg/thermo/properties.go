package thermo

import (
	"math"

	"github.com/prochem/flowsim/pkg/domain"
)

// GasConstant in J/(mol·K).
const GasConstant = 8.314

// Correlation coefficients keep the unit conventions of the published
// benchmark data: Antoine in Pa over °C, heat capacities in cal/(g·K),
// liquid density in lb/ft³. The accessor methods return SI.
const (
	calPerGram  = 4.184    // J/g
	lbPerFt3    = 16.01846 // kg/m³
)

// Component carries the property correlations for one slate component.
type Component struct {
	Name      string
	MolarMass float64 // g/mol

	// Antoine gives ln(Pvap[Pa]) = A + B/(C + T[°C]).
	Antoine [3]float64

	// LiquidDensity polynomial A + (B + C·T)·T in lb/ft³, T in °C.
	LiquidDensity [3]float64

	// LiquidEnthalpy and VaporEnthalpy are specific heat polynomials
	// A + (B + C·T)·T in cal/(g·K), T in °C.
	LiquidEnthalpy [3]float64
	VaporEnthalpy  [3]float64

	// VaporizationHeat in cal/g.
	VaporizationHeat float64
}

// VaporPressure returns the Antoine vapor pressure in Pa.
func (c *Component) VaporPressure(tempK float64) float64 {
	t := tempK - 273.15
	a, b, cc := c.Antoine[0], c.Antoine[1], c.Antoine[2]
	return math.Exp(a + b/(cc+t))
}

// LiquidDensityAt returns the liquid density in kg/m³.
func (c *Component) LiquidDensityAt(tempK float64) float64 {
	t := tempK - 273.15
	a, b, cc := c.LiquidDensity[0], c.LiquidDensity[1], c.LiquidDensity[2]
	return (a + (b+cc*t)*t) * lbPerFt3
}

// LiquidHeatCapacity returns cp of the liquid in J/(mol·K).
func (c *Component) LiquidHeatCapacity(tempK float64) float64 {
	t := tempK - 273.15
	a, b, cc := c.LiquidEnthalpy[0], c.LiquidEnthalpy[1], c.LiquidEnthalpy[2]
	return (a + (b+cc*t)*t) * calPerGram * c.MolarMass
}

// VaporHeatCapacity returns cp of the vapor in J/(mol·K).
func (c *Component) VaporHeatCapacity(tempK float64) float64 {
	t := tempK - 273.15
	a, b, cc := c.VaporEnthalpy[0], c.VaporEnthalpy[1], c.VaporEnthalpy[2]
	return (a + (b+cc*t)*t) * calPerGram * c.MolarMass
}

// LiquidEnthalpyAt integrates the liquid cp polynomial from 0 °C, in J/mol.
func (c *Component) LiquidEnthalpyAt(tempK float64) float64 {
	t := tempK - 273.15
	a, b, cc := c.LiquidEnthalpy[0], c.LiquidEnthalpy[1], c.LiquidEnthalpy[2]
	return (a + (b/2+cc/3*t)*t) * t * calPerGram * c.MolarMass
}

// VaporEnthalpyAt integrates the vapor cp polynomial from 0 °C and adds the
// heat of vaporization, in J/mol.
func (c *Component) VaporEnthalpyAt(tempK float64) float64 {
	t := tempK - 273.15
	a, b, cc := c.VaporEnthalpy[0], c.VaporEnthalpy[1], c.VaporEnthalpy[2]
	sensible := (a + (b/2+cc/3*t)*t) * t
	return (sensible + c.VaporizationHeat) * calPerGram * c.MolarMass
}

// Properties is the capability interface the unit models depend on.
type Properties interface {
	Component(name string) (*Component, bool)
}

// Bank is the default Properties implementation: a component table loaded
// from the flowsheet's component files.
type Bank map[string]*Component

// Component looks up a component by slate name.
func (b Bank) Component(name string) (*Component, bool) {
	c, ok := b[name]
	return c, ok
}

// Fallback heat capacities, used when no property bank is configured or a
// component has no correlation. Rough mid-range values in J/(mol·K).
const (
	DefaultVaporCp  = 35.0
	DefaultLiquidCp = 120.0
)

// MixtureHeatCapacity returns the mole-weighted cp of a mixture in
// J/(mol·K). The composition vector is indexed by domain.Components.
func MixtureHeatCapacity(p Properties, composition []float64, tempK float64, phase domain.Phase) float64 {
	cp := 0.0
	for i, x := range composition {
		if x <= 0 {
			continue
		}
		cp += x * componentCp(p, domain.Components[i], tempK, phase)
	}
	if cp <= 0 {
		cp = DefaultVaporCp
	}
	return cp
}

func componentCp(p Properties, name string, tempK float64, phase domain.Phase) float64 {
	if p == nil {
		if phase == domain.PhaseLiquid {
			return DefaultLiquidCp
		}
		return DefaultVaporCp
	}
	c, ok := p.Component(name)
	if !ok {
		if phase == domain.PhaseLiquid {
			return DefaultLiquidCp
		}
		return DefaultVaporCp
	}
	if phase == domain.PhaseLiquid {
		return c.LiquidHeatCapacity(tempK)
	}
	return c.VaporHeatCapacity(tempK)
}

// KValues returns Raoult's-law equilibrium ratios K_i = Pvap_i(T)/P for the
// whole slate. Components without a correlation get K = 1.
func KValues(p Properties, tempK, pressurePa float64) []float64 {
	ks := make([]float64, domain.NumComponents)
	for i, name := range domain.Components {
		ks[i] = 1.0
		if p == nil {
			continue
		}
		if c, ok := p.Component(name); ok {
			ks[i] = c.VaporPressure(tempK) / pressurePa
		}
	}
	return ks
}
