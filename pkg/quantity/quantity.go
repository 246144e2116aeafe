// Package quantity handles the value-plus-units records used throughout the
// flowsheet input files. It is deliberately not a general unit system: only
// the dimensions the simulator actually consumes are supported.
package quantity

import (
	"fmt"
	"strings"
)

// Quantity is the {val, units} shape used by flowsheet and parameter files.
type Quantity struct {
	Val   float64 `json:"val" yaml:"val" mapstructure:"val"`
	Units string  `json:"units" yaml:"units" mapstructure:"units"`
}

// Kelvin converts a temperature quantity to kelvin.
func (q Quantity) Kelvin() (float64, error) {
	switch normalize(q.Units) {
	case "k", "kelvin":
		return q.Val, nil
	case "c", "celsius", "degc":
		return q.Val + 273.15, nil
	case "f", "fahrenheit", "degf":
		return (q.Val-32)/1.8 + 273.15, nil
	default:
		return 0, fmt.Errorf("not a temperature unit: %q", q.Units)
	}
}

// Pascal converts a pressure quantity to pascal.
func (q Quantity) Pascal() (float64, error) {
	switch normalize(q.Units) {
	case "pa", "pascal":
		return q.Val, nil
	case "kpa":
		return q.Val * 1e3, nil
	case "mpa":
		return q.Val * 1e6, nil
	case "bar":
		return q.Val * 1e5, nil
	case "atm":
		return q.Val * 101325, nil
	case "mmhg", "torr":
		return q.Val * 133.322, nil
	default:
		return 0, fmt.Errorf("not a pressure unit: %q", q.Units)
	}
}

// KmolPerHour converts a molar flow quantity to kmol/h.
func (q Quantity) KmolPerHour() (float64, error) {
	switch normalize(q.Units) {
	case "kmol/h", "kmol/hr", "kmol/hour":
		return q.Val, nil
	case "mol/s":
		return q.Val * 3.6, nil
	case "mol/h", "mol/hr":
		return q.Val / 1e3, nil
	default:
		return 0, fmt.Errorf("not a molar flow unit: %q", q.Units)
	}
}

// CubicMeters converts a volume quantity to cubic meters.
func (q Quantity) CubicMeters() (float64, error) {
	switch normalize(q.Units) {
	case "m3", "m**3", "m^3":
		return q.Val, nil
	case "l", "liter", "litre":
		return q.Val / 1e3, nil
	case "ft3", "ft**3", "ft^3":
		return q.Val * 0.0283168, nil
	default:
		return 0, fmt.Errorf("not a volume unit: %q", q.Units)
	}
}

// Hours converts a time quantity to hours.
func (q Quantity) Hours() (float64, error) {
	switch normalize(q.Units) {
	case "h", "hr", "hour", "hours":
		return q.Val, nil
	case "min", "minute", "minutes":
		return q.Val / 60, nil
	case "s", "sec", "second", "seconds":
		return q.Val / 3600, nil
	default:
		return 0, fmt.Errorf("not a time unit: %q", q.Units)
	}
}

// JoulesPerMol converts a molar energy quantity to J/mol. Used for
// activation energies and reaction enthalpies.
func (q Quantity) JoulesPerMol() (float64, error) {
	switch normalize(q.Units) {
	case "j/mol", "joules/mol", "joule/mol":
		return q.Val, nil
	case "kj/mol":
		return q.Val * 1e3, nil
	case "kj/kmol":
		// kJ/kmol is numerically J/mol.
		return q.Val, nil
	case "j/kmol":
		return q.Val / 1e3, nil
	case "cal/mol":
		return q.Val * 4.184, nil
	case "kcal/mol":
		return q.Val * 4184, nil
	default:
		return 0, fmt.Errorf("not a molar energy unit: %q", q.Units)
	}
}

func normalize(units string) string {
	return strings.ToLower(strings.TrimSpace(units))
}
