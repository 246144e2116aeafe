package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/units"
)

func separatorSpec() domain.UnitSpec {
	return spec("Drum", domain.KindSeparator, []string{"Feed"}, []string{"Overhead", "Bottoms"})
}

func separatorRecord() domain.ParameterRecord {
	return domain.ParameterRecord{
		"Temperature": map[string]any{"val": 50, "units": "C"},
		"Pressure":    map[string]any{"val": 2700, "units": "kPa"},
	}
}

func TestSeparatorSplitsAtDrumConditions(t *testing.T) {
	op, err := units.New(separatorSpec(), separatorRecord(), units.Env{Properties: testBank()})
	require.NoError(t, err)

	bus := newFakeBus()
	require.NoError(t, bus.Set("Feed", mustState(t, map[string]float64{"D": 0.5, "H": 0.5}, 400, 100)))
	require.NoError(t, op.Evaluate(bus, 0))

	overhead, _ := bus.Get("Overhead")
	bottoms, _ := bus.Get("Bottoms")
	require.True(t, overhead.Known())
	require.True(t, bottoms.Known())

	// Both outlets leave at the drum temperature and total flow is conserved.
	assert.InDelta(t, 323.15, overhead.Temperature, 1e-9)
	assert.InDelta(t, 323.15, bottoms.Temperature, 1e-9)
	assert.InDelta(t, 100.0, overhead.Flow+bottoms.Flow, 1e-6)
	assert.Equal(t, domain.PhaseVapor, overhead.Phase)
	assert.Equal(t, domain.PhaseLiquid, bottoms.Phase)

	// The volatile component concentrates overhead, the heavy one in the
	// bottoms.
	iD, iH := idx(t, "D"), idx(t, "H")
	assert.Greater(t, overhead.Composition[iD], bottoms.Composition[iD])
	assert.Less(t, overhead.Composition[iH], bottoms.Composition[iH])

	feedFlows := componentFlows(mustState(t, map[string]float64{"D": 0.5, "H": 0.5}, 400, 100))
	vapFlows := componentFlows(overhead)
	liqFlows := componentFlows(bottoms)
	for i, name := range domain.Components {
		assert.InDelta(t, feedFlows[i], vapFlows[i]+liqFlows[i], 1e-6, "component %s", name)
	}
}

func TestSeparatorFlashesAtFeedTemperatureWhenUnset(t *testing.T) {
	record := domain.ParameterRecord{
		"Pressure": map[string]any{"val": 2700, "units": "kPa"},
	}
	op, err := units.New(separatorSpec(), record, units.Env{Properties: testBank()})
	require.NoError(t, err)

	bus := newFakeBus()
	require.NoError(t, bus.Set("Feed", mustState(t, map[string]float64{"D": 0.5, "H": 0.5}, 340, 100)))
	require.NoError(t, op.Evaluate(bus, 0))

	overhead, _ := bus.Get("Overhead")
	assert.InDelta(t, 340.0, overhead.Temperature, 1e-9)
}

func TestSeparatorPropagatesUnknownFeed(t *testing.T) {
	op, err := units.New(separatorSpec(), separatorRecord(), units.Env{Properties: testBank()})
	require.NoError(t, err)

	bus := newFakeBus()
	require.NoError(t, op.Evaluate(bus, 0))

	overhead, _ := bus.Get("Overhead")
	bottoms, _ := bus.Get("Bottoms")
	assert.False(t, overhead.Known())
	assert.False(t, bottoms.Known())
}

func TestSeparatorRejectsMissingPressure(t *testing.T) {
	_, err := units.New(separatorSpec(), domain.ParameterRecord{}, units.Env{Properties: testBank()})
	require.Error(t, err)
	assert.ErrorContains(t, err, "pressure")
}
