package units_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/thermo"
	"github.com/prochem/flowsim/pkg/units"
)

// fakeBus is a map-backed stand-in for the solver registry. Unset streams
// read back as unknown, the same as a declared but not yet written stream.
type fakeBus struct {
	streams map[string]domain.StreamState
}

func newFakeBus() *fakeBus {
	return &fakeBus{streams: make(map[string]domain.StreamState)}
}

func (b *fakeBus) Get(name string) (domain.StreamState, error) {
	return b.streams[name].Clone(), nil
}

func (b *fakeBus) Set(name string, state domain.StreamState) error {
	b.streams[name] = state.Clone()
	return nil
}

var _ units.Bus = (*fakeBus)(nil)

func mustState(t *testing.T, composition map[string]float64, tempK, flow float64) domain.StreamState {
	t.Helper()
	st, err := domain.NewStreamState(composition, tempK, flow)
	require.NoError(t, err)
	return st
}

func idx(t *testing.T, name string) int {
	t.Helper()
	i, ok := domain.ComponentIndex(name)
	require.True(t, ok, "component %q not in slate", name)
	return i
}

// testBank covers the components the unit tests exercise: D is volatile, H
// is heavy, Water sits in between.
func testBank() thermo.Bank {
	return thermo.Bank{
		"D": {
			Name:           "D",
			MolarMass:      32,
			Antoine:        [3]float64{20.81, -1444, 259},
			LiquidEnthalpy: [3]float64{0.5, 0, 0},
			VaporEnthalpy:  [3]float64{0.3, 0, 0},
		},
		"H": {
			Name:           "H",
			MolarMass:      76,
			Antoine:        [3]float64{22.10, -3318, 249.6},
			LiquidEnthalpy: [3]float64{0.6, 0, 0},
			VaporEnthalpy:  [3]float64{0.4, 0, 0},
		},
		"Water": {
			Name:             "Water",
			MolarMass:        18,
			Antoine:          [3]float64{23.1964, -3816.44, 227.02},
			LiquidEnthalpy:   [3]float64{1.0, 0, 0},
			VaporEnthalpy:    [3]float64{0.45, 0, 0},
			VaporizationHeat: 540,
		},
	}
}

func spec(name string, kind domain.Kind, inlets, outlets []string) domain.UnitSpec {
	return domain.UnitSpec{Name: name, Kind: kind, Inlets: inlets, Outlets: outlets}
}

// componentFlows converts a stream state to per-component molar flows.
func componentFlows(st domain.StreamState) []float64 {
	out := make([]float64, domain.NumComponents)
	for i, x := range st.Composition {
		out[i] = st.Flow * x
	}
	return out
}
