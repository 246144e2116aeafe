package ports

import (
	"context"

	"github.com/prochem/flowsim/pkg/domain"
)

// SnapshotStore defines the interface for persisting solved stream states.
// This allows long dynamic runs to checkpoint and resume across restarts.
type SnapshotStore interface {
	// Save persists the snapshot for a given run ID.
	Save(ctx context.Context, runID string, snap domain.Snapshot) error

	// Load retrieves the snapshot for a given run ID.
	// Returns domain.ErrSnapshotNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (domain.Snapshot, error)

	// Delete removes the snapshot for a given run ID.
	Delete(ctx context.Context, runID string) error

	// List returns the stored run IDs.
	List(ctx context.Context) ([]string, error)
}
