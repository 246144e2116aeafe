package flowsim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flowsim "github.com/prochem/flowsim"
	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/loader"
)

const benchmarkPlant = "testdata/eastman"

func newBenchmarkEngine(t *testing.T, opts ...flowsim.Option) *flowsim.Engine {
	t.Helper()
	opts = append([]flowsim.Option{flowsim.WithMaxPasses(1000)}, opts...)
	eng, err := flowsim.New(benchmarkPlant, opts...)
	require.NoError(t, err)
	return eng
}

func TestEngineSolvesBenchmarkPlant(t *testing.T) {
	eng := newBenchmarkEngine(t)

	res, err := eng.Solve(context.Background())
	require.NoError(t, err)

	assert.LessOrEqual(t, res.Residual, 1e-6)
	assert.Greater(t, res.Iterations, 1, "the recycle loop needs more than one iteration")
	assert.Equal(t, res.Iterations+1, res.Passes)

	// Every declared stream resolves, including the recycle loop.
	for name, st := range res.Streams {
		assert.True(t, st.Known(), "stream %q still unknown", name)
	}

	// Gross plant balance: everything fed must leave through the product,
	// the purge or a utility return, and the product carries real flow.
	assert.Greater(t, res.Streams["Product"].Flow, 0.0)
	assert.Greater(t, res.Streams["Purge"].Flow, 0.0)
	assert.Greater(t, res.Streams["Total Recycle"].Flow, 0.0)

	// The heavy products concentrate in the stripper bottoms: the product
	// carries a larger G+H fraction than the vapor going back overhead.
	iG, _ := domain.ComponentIndex("G")
	iH, _ := domain.ComponentIndex("H")
	product := res.Streams["Product"]
	overhead := res.Streams["Stripper Vapor"]
	assert.Greater(t, product.Composition[iG]+product.Composition[iH],
		overhead.Composition[iG]+overhead.Composition[iH])
	assert.Greater(t, product.Composition[iG]+product.Composition[iH], 0.0)

	// The reactor jacket picks up the exotherm.
	cwIn := res.Streams["Reactor CW In"]
	cwOut := res.Streams["Reactor CW Out"]
	assert.Greater(t, cwOut.Temperature, cwIn.Temperature)
}

func TestEngineFullyOpenPurgeEmptiesGasRecycle(t *testing.T) {
	baseline, err := newBenchmarkEngine(t).Solve(context.Background())
	require.NoError(t, err)

	plant, err := loader.LoadPlant(benchmarkPlant)
	require.NoError(t, err)
	plant.Parameters["Purge Valve"]["Fractions"] = map[string]any{
		"Separator Recycle": 0.0,
		"Purge":             1.0,
	}

	eng, err := flowsim.New("eastman",
		flowsim.WithTopology(plant.Topology, plant.Parameters),
		flowsim.WithProperties(plant.Components),
		flowsim.WithReactions(plant.Reactions),
		flowsim.WithMaxPasses(1000),
	)
	require.NoError(t, err)

	res, err := eng.Solve(context.Background())
	require.NoError(t, err)

	// Everything leaving the purge valve exits the plant, so the gas
	// recycle carries nothing and only the stripper overhead loop remains.
	assert.Equal(t, 0.0, res.Streams["Separator Recycle"].Flow)
	assert.Greater(t, res.Streams["Purge"].Flow, 0.0)
	assert.Less(t, res.Iterations, baseline.Iterations,
		"opening the purge removes the dominant recycle loop")
}

func TestEngineSolveIsDeterministic(t *testing.T) {
	eng := newBenchmarkEngine(t)

	first, err := eng.Solve(context.Background())
	require.NoError(t, err)
	second, err := eng.Solve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Iterations, second.Iterations)
	assert.Equal(t, first.Streams, second.Streams)
}

func TestEngineAdvanceAfterSolve(t *testing.T) {
	eng := newBenchmarkEngine(t)

	_, err := eng.Solve(context.Background())
	require.NoError(t, err)

	res, err := eng.Advance(context.Background(), 0.1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Passes)
	// One step away from steady state barely moves.
	assert.Less(t, res.Residual, 1e-3)
}

func TestEngineSnapshotRestore(t *testing.T) {
	eng := newBenchmarkEngine(t)

	res, err := eng.Solve(context.Background())
	require.NoError(t, err)

	snap := eng.Snapshot()
	assert.Equal(t, res.Streams, snap)

	eng.Reset()
	assert.False(t, eng.Snapshot()["Total Recycle"].Known())

	require.NoError(t, eng.Restore(snap))
	assert.Equal(t, snap, eng.Snapshot())
}

func TestEngineWithInjectedTopology(t *testing.T) {
	feed, err := domain.NewStreamState(map[string]float64{"A": 1.0}, 300, 10)
	require.NoError(t, err)
	topo := &domain.Topology{
		Streams: map[string]domain.StreamState{
			"Feed": feed,
			"Left": {},
			"Rght": {},
		},
		Units: map[string]domain.UnitSpec{
			"Tee": {
				Name: "Tee", Kind: domain.KindSplitter,
				Inlets: []string{"Feed"}, Outlets: []string{"Left", "Rght"},
			},
		},
		Order: []string{"Tee"},
	}

	eng, err := flowsim.New("", flowsim.WithTopology(topo, nil))
	require.NoError(t, err)

	res, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)
	assert.InDelta(t, 5.0, res.Streams["Left"].Flow, 1e-9)
}

func TestEngineLifecycleHooks(t *testing.T) {
	var passes int
	converged := false
	eng := newBenchmarkEngine(t, flowsim.WithLifecycleHooks(domain.LifecycleHooks{
		OnPassEnd:   func(ev domain.PassEvent) { passes++ },
		OnConverged: func(iterations int, residual float64) { converged = true },
	}))

	res, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res.Iterations, passes)
	assert.True(t, converged)
}

func TestEngineRequiresPlantDirOrTopology(t *testing.T) {
	_, err := flowsim.New("")
	require.ErrorContains(t, err, "plantDir is required")
}

func TestValidateSurfacesTopologyErrors(t *testing.T) {
	err := flowsim.Validate(&domain.Topology{Order: []string{"Ghost"}}, nil)
	require.Error(t, err)
	var unknown *domain.UnknownUnitError
	assert.ErrorAs(t, err, &unknown)
}
