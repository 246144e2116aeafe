package thermo

import (
	"fmt"
	"math"

	"github.com/prochem/flowsim/pkg/domain"
)

// Reaction describes one power-law reaction: stoichiometry over a subset of
// the component slate, rate orders in partial pressures, and Arrhenius
// kinetics.
type Reaction struct {
	Name       string
	Components []string  // participant names, parallel to Stoich and Order
	Stoich     []float64 // negative for reactants, positive for products
	Order      []float64 // partial-pressure exponents

	// PreExponential in kmol/(m³·h·Paⁿ) where n is the sum of orders.
	PreExponential float64
	// ActivationEnergy in J/mol.
	ActivationEnergy float64

	Phase domain.Phase
	// Enthalpy per unit extent in J/mol; negative for exothermic.
	Enthalpy float64
}

// Validate checks the parallel slices and the participant names.
func (r *Reaction) Validate() error {
	if len(r.Components) != len(r.Stoich) {
		return fmt.Errorf("reaction %q: component and stoichiometry length must match", r.Name)
	}
	if len(r.Components) != len(r.Order) {
		return fmt.Errorf("reaction %q: component and rate order length must match", r.Name)
	}
	for _, name := range r.Components {
		if _, ok := domain.ComponentIndex(name); !ok {
			return fmt.Errorf("reaction %q: unknown component %q", r.Name, name)
		}
	}
	return nil
}

// RateConstant evaluates the Arrhenius expression at the given temperature.
func (r *Reaction) RateConstant(tempK float64) float64 {
	return r.PreExponential * math.Exp(-r.ActivationEnergy/(GasConstant*tempK))
}

// Rate evaluates the power-law rate in kmol/(m³·h). Partial pressures are
// indexed by domain.Components, in Pa.
func (r *Reaction) Rate(tempK float64, partials []float64) float64 {
	rate := r.RateConstant(tempK)
	for i, name := range r.Components {
		if r.Order[i] == 0 {
			continue
		}
		idx, _ := domain.ComponentIndex(name)
		p := partials[idx]
		if p <= 0 {
			return 0
		}
		rate *= math.Pow(p, r.Order[i])
	}
	return rate
}

// ComponentRates returns the per-component generation rates for the slate,
// stoichiometry times the reaction rate, in kmol/(m³·h).
func (r *Reaction) ComponentRates(tempK float64, partials []float64) []float64 {
	rate := r.Rate(tempK, partials)
	out := make([]float64, domain.NumComponents)
	for i, name := range r.Components {
		idx, _ := domain.ComponentIndex(name)
		out[idx] = r.Stoich[i] * rate
	}
	return out
}
