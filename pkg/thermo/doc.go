// Package thermo provides the physical-property capability consumed by the
// unit operation models: vapor pressures, enthalpy and density correlations
// per component, and reaction kinetics.
//
// The solver core treats properties as a pluggable provider behind the
// Properties interface; the Bank implementation in this package is the
// default, built from the component files shipped with a flowsheet.
package thermo
