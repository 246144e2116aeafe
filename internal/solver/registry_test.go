package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prochem/flowsim/pkg/domain"
)

func registryTopology(t *testing.T) *domain.Topology {
	t.Helper()
	feed, err := domain.NewStreamState(map[string]float64{"A": 1.0}, 300, 60)
	require.NoError(t, err)
	return &domain.Topology{
		Streams: map[string]domain.StreamState{
			"Feed":    feed,
			"Mixed":   {},
			"Product": {},
		},
		Units: map[string]domain.UnitSpec{
			"Mixer": {
				Name: "Mixer", Kind: domain.KindJoin,
				Inlets: []string{"Feed"}, Outlets: []string{"Mixed"},
			},
			"Outlet": {
				Name: "Outlet", Kind: domain.KindJoin,
				Inlets: []string{"Mixed"}, Outlets: []string{"Product"},
			},
		},
		Order: []string{"Mixer", "Outlet"},
	}
}

func TestRegistrySeedsAndResets(t *testing.T) {
	reg := NewRegistry(registryTopology(t))

	feed, err := reg.Get("Feed")
	require.NoError(t, err)
	assert.True(t, feed.Known())
	assert.Equal(t, 60.0, feed.Flow)

	mixed, err := reg.Get("Mixed")
	require.NoError(t, err)
	assert.False(t, mixed.Known())

	// A write then a reset returns the stream to its seed state.
	state, err := domain.NewStreamState(map[string]float64{"A": 1.0}, 310, 60)
	require.NoError(t, err)
	require.NoError(t, reg.Bus("Mixer").Set("Mixed", state))
	mixed, err = reg.Get("Mixed")
	require.NoError(t, err)
	assert.True(t, mixed.Known())

	reg.Reset()
	mixed, err = reg.Get("Mixed")
	require.NoError(t, err)
	assert.False(t, mixed.Known())
}

func TestRegistryRejectsUndeclaredStream(t *testing.T) {
	reg := NewRegistry(registryTopology(t))

	_, err := reg.Get("Nope")
	var unknown *domain.UnknownStreamError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Nope", unknown.Name)

	err = reg.Bus("Mixer").Set("Nope", domain.StreamState{})
	require.ErrorAs(t, err, &unknown)
}

func TestRegistryEnforcesOwnership(t *testing.T) {
	reg := NewRegistry(registryTopology(t))

	// Mixer owns Mixed but not Product or Feed.
	err := reg.Bus("Mixer").Set("Product", domain.StreamState{})
	var writeErr *domain.StreamWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "Mixer", writeErr.Unit)
	assert.Equal(t, "Product", writeErr.Stream)

	err = reg.Bus("Mixer").Set("Feed", domain.StreamState{})
	require.ErrorAs(t, err, &writeErr)
}

func TestRegistryGetReturnsCopy(t *testing.T) {
	reg := NewRegistry(registryTopology(t))

	feed, err := reg.Get("Feed")
	require.NoError(t, err)
	feed.Composition[0] = 0.0
	feed.Flow = -1

	again, err := reg.Get("Feed")
	require.NoError(t, err)
	assert.Equal(t, 1.0, again.Composition[0])
	assert.Equal(t, 60.0, again.Flow)
}

func TestRegistrySnapshotRestore(t *testing.T) {
	reg := NewRegistry(registryTopology(t))

	state, err := domain.NewStreamState(map[string]float64{"B": 1.0}, 350, 25)
	require.NoError(t, err)
	require.NoError(t, reg.Bus("Mixer").Set("Mixed", state))

	snap := reg.Snapshot()
	require.Len(t, snap, 3)

	reg.Reset()
	mixed, err := reg.Get("Mixed")
	require.NoError(t, err)
	require.False(t, mixed.Known())

	require.NoError(t, reg.Restore(snap))
	mixed, err = reg.Get("Mixed")
	require.NoError(t, err)
	require.True(t, mixed.Known())
	assert.Equal(t, 25.0, mixed.Flow)

	// Mutating the snapshot after restore must not reach the registry.
	snap["Mixed"].Composition[0] = 0.5
	mixed, err = reg.Get("Mixed")
	require.NoError(t, err)
	assert.Equal(t, 0.0, mixed.Composition[0])
}

func TestRegistryRestoreRejectsUndeclaredStream(t *testing.T) {
	reg := NewRegistry(registryTopology(t))
	err := reg.Restore(domain.Snapshot{"Ghost": domain.StreamState{}})
	var unknown *domain.UnknownStreamError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Ghost", unknown.Name)
}

func TestRegistryWriteCounts(t *testing.T) {
	reg := NewRegistry(registryTopology(t))
	state, err := domain.NewStreamState(map[string]float64{"A": 1.0}, 300, 10)
	require.NoError(t, err)

	reg.BeginPass()
	require.NoError(t, reg.Bus("Mixer").Set("Mixed", state))
	require.NoError(t, reg.Bus("Mixer").Set("Mixed", state))
	assert.Equal(t, 2, reg.WriteCount("Mixed"))
	assert.Zero(t, reg.WriteCount("Product"))

	reg.BeginPass()
	assert.Zero(t, reg.WriteCount("Mixed"))
}
