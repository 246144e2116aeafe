package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/units"
)

func stripperSpec() domain.UnitSpec {
	return spec("Column", domain.KindStripper,
		[]string{"Fresh Feed", "Liquid Recycle"},
		[]string{"Overhead", "Bottoms"})
}

func stripperRecord(efficiency float64) domain.ParameterRecord {
	return domain.ParameterRecord{
		"Temperature": map[string]any{"val": 65.7, "units": "C"},
		"Pressure":    map[string]any{"val": 3100, "units": "kPa"},
		"Efficiency":  efficiency,
	}
}

func TestStripperCombinesFeedsAndSplits(t *testing.T) {
	op, err := units.New(stripperSpec(), stripperRecord(1.0), units.Env{Properties: testBank()})
	require.NoError(t, err)

	bus := newFakeBus()
	require.NoError(t, bus.Set("Fresh Feed", mustState(t, map[string]float64{"D": 0.8, "H": 0.2}, 340, 60)))
	require.NoError(t, bus.Set("Liquid Recycle", mustState(t, map[string]float64{"D": 0.1, "H": 0.9}, 330, 40)))
	require.NoError(t, op.Evaluate(bus, 0))

	overhead, _ := bus.Get("Overhead")
	bottoms, _ := bus.Get("Bottoms")
	require.True(t, overhead.Known())
	require.True(t, bottoms.Known())

	assert.InDelta(t, 100.0, overhead.Flow+bottoms.Flow, 1e-6)
	assert.InDelta(t, 338.85, overhead.Temperature, 1e-9)
	assert.InDelta(t, 338.85, bottoms.Temperature, 1e-9)
	assert.Equal(t, domain.PhaseVapor, overhead.Phase)
	assert.Equal(t, domain.PhaseLiquid, bottoms.Phase)

	// Combined feed: 52 kmol/h of D and 48 of H.
	iD, iH := idx(t, "D"), idx(t, "H")
	vapFlows := componentFlows(overhead)
	liqFlows := componentFlows(bottoms)
	assert.InDelta(t, 52.0, vapFlows[iD]+liqFlows[iD], 1e-6)
	assert.InDelta(t, 48.0, vapFlows[iH]+liqFlows[iH], 1e-6)
	assert.Greater(t, overhead.Composition[iD], bottoms.Composition[iD])
}

func TestStripperEfficiencyDampsSeparation(t *testing.T) {
	feed := mustState(t, map[string]float64{"D": 0.5, "H": 0.5}, 340, 100)

	sharp := stripperOverheadD(t, 1.0, feed)
	damped := stripperOverheadD(t, 0.6, feed)

	// A less efficient stage pulls the equilibrium ratios toward unity, so
	// the overhead is less enriched in the volatile component.
	assert.Greater(t, sharp, damped)
	assert.Greater(t, damped, 0.5)
}

func stripperOverheadD(t *testing.T, efficiency float64, feed domain.StreamState) float64 {
	t.Helper()
	sp := spec("Column", domain.KindStripper, []string{"Feed"}, []string{"Overhead", "Bottoms"})
	op, err := units.New(sp, stripperRecord(efficiency), units.Env{Properties: testBank()})
	require.NoError(t, err)

	bus := newFakeBus()
	require.NoError(t, bus.Set("Feed", feed))
	require.NoError(t, op.Evaluate(bus, 0))
	overhead, _ := bus.Get("Overhead")
	require.True(t, overhead.Known())
	return overhead.Composition[idx(t, "D")]
}

func TestStripperToleratesMissingRecycle(t *testing.T) {
	op, err := units.New(stripperSpec(), stripperRecord(0.6), units.Env{Properties: testBank()})
	require.NoError(t, err)

	bus := newFakeBus()
	require.NoError(t, bus.Set("Fresh Feed", mustState(t, map[string]float64{"D": 0.5, "H": 0.5}, 340, 50)))
	// Liquid Recycle stays unknown, as it does on the first pass.
	require.NoError(t, op.Evaluate(bus, 0))

	overhead, _ := bus.Get("Overhead")
	bottoms, _ := bus.Get("Bottoms")
	require.True(t, overhead.Known())
	assert.InDelta(t, 50.0, overhead.Flow+bottoms.Flow, 1e-6)
}

func TestStripperAllFeedsUnknown(t *testing.T) {
	op, err := units.New(stripperSpec(), stripperRecord(0.6), units.Env{Properties: testBank()})
	require.NoError(t, err)

	bus := newFakeBus()
	require.NoError(t, op.Evaluate(bus, 0))

	overhead, _ := bus.Get("Overhead")
	assert.False(t, overhead.Known())
}
