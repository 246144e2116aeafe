package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prochem/flowsim/pkg/domain"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a
// SnapshotStore implementation adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	sample := func(flow float64) domain.Snapshot {
		comp := make([]float64, domain.NumComponents)
		comp[0] = 0.25
		comp[1] = 0.75
		return domain.Snapshot{
			"Reactor Feed": domain.StreamState{
				Composition: comp,
				Temperature: 359.25,
				Flow:        flow,
				Phase:       domain.PhaseVapor,
			},
			"Purge": domain.StreamState{},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		snap := sample(42.5)

		err := store.Save(ctx, runID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		require.Contains(t, loaded, "Reactor Feed")
		assert.InDelta(t, 42.5, loaded["Reactor Feed"].Flow, 1e-9)
		assert.InDelta(t, 359.25, loaded["Reactor Feed"].Temperature, 1e-9)
		assert.Equal(t, domain.PhaseVapor, loaded["Reactor Feed"].Phase)

		// Unknown streams must round-trip as unknown, not as zero vectors.
		require.Contains(t, loaded, "Purge")
		assert.False(t, loaded["Purge"].Known())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, runID, sample(10)))
		require.NoError(t, store.Save(ctx, runID, sample(20)))

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.InDelta(t, 20.0, loaded["Reactor Feed"].Flow, 1e-9)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, runID, sample(1)))

		err := store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		_ = store.Save(ctx, id1, sample(1))
		_ = store.Save(ctx, id2, sample(2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
