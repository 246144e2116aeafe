package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prochem/flowsim/pkg/domain"
)

func knownState(composition []float64, tempK, flow float64) domain.StreamState {
	return domain.StreamState{Composition: composition, Temperature: tempK, Flow: flow}
}

func TestResidualIdenticalSnapshots(t *testing.T) {
	snap := domain.Snapshot{
		"S1": knownState([]float64{0.5, 0.5}, 300, 100),
	}
	assert.Zero(t, Residual(snap, snap.Clone()))
}

func TestResidualCompositionDelta(t *testing.T) {
	prev := domain.Snapshot{"S1": knownState([]float64{0.5, 0.5}, 300, 100)}
	cur := domain.Snapshot{"S1": knownState([]float64{0.52, 0.48}, 300, 100)}
	assert.InDelta(t, 0.02, Residual(prev, cur), 1e-12)
}

func TestResidualRelativeFlowDelta(t *testing.T) {
	prev := domain.Snapshot{"S1": knownState([]float64{1}, 300, 100)}
	cur := domain.Snapshot{"S1": knownState([]float64{1}, 300, 101)}
	assert.InDelta(t, 0.01, Residual(prev, cur), 1e-12)
}

func TestResidualRelativeTemperatureDelta(t *testing.T) {
	prev := domain.Snapshot{"S1": knownState([]float64{1}, 400, 100)}
	cur := domain.Snapshot{"S1": knownState([]float64{1}, 402, 100)}
	assert.InDelta(t, 0.005, Residual(prev, cur), 1e-12)
}

func TestResidualFlooredNearZeroFlow(t *testing.T) {
	// A tiny absolute change on a near-zero flow must not blow up the
	// residual; the floor keeps it absolute in that regime.
	prev := domain.Snapshot{"S1": knownState([]float64{1}, 300, 1e-9)}
	cur := domain.Snapshot{"S1": knownState([]float64{1}, 300, 2e-9)}
	assert.InDelta(t, 1e-9, Residual(prev, cur), 1e-15)
}

func TestResidualUnknownTransition(t *testing.T) {
	unknown := domain.Snapshot{"S1": {}}
	known := domain.Snapshot{"S1": knownState([]float64{1}, 300, 100)}

	// Resolving a stream counts as a full-scale change in either direction.
	assert.Equal(t, 1.0, Residual(unknown, known))
	assert.Equal(t, 1.0, Residual(known, unknown))
	assert.Zero(t, Residual(unknown, unknown.Clone()))
}

func TestResidualTakesWorstStream(t *testing.T) {
	prev := domain.Snapshot{
		"Quiet": knownState([]float64{1}, 300, 100),
		"Noisy": knownState([]float64{1}, 300, 100),
	}
	cur := domain.Snapshot{
		"Quiet": knownState([]float64{1}, 300, 100.0001),
		"Noisy": knownState([]float64{1}, 300, 150),
	}
	assert.InDelta(t, 0.5, Residual(prev, cur), 1e-12)
}
