package domain

import "time"

// Snapshot is a frozen view of every stream at a point in the solve.
type Snapshot map[string]StreamState

// Clone deep-copies a snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for name, st := range s {
		out[name] = st.Clone()
	}
	return out
}

// Result is the outcome of a steady-state solve or a dynamic step.
type Result struct {
	// Streams holds the final state of every declared stream.
	Streams Snapshot `json:"streams"`

	// Passes is the total number of calculation-order passes executed,
	// including the initial seeding pass.
	Passes int `json:"passes"`

	// Iterations counts convergence passes, i.e. passes after the seeding
	// pass. An open-loop topology converges in exactly one iteration.
	Iterations int `json:"iterations"`

	// Residual is the last computed residual.
	Residual float64 `json:"residual"`

	// Trace records the residual after each convergence pass, in order.
	Trace []float64 `json:"trace,omitempty"`

	// Elapsed is wall-clock solve time, diagnostic only. Determinism is
	// governed by the pass cap, never by time.
	Elapsed time.Duration `json:"elapsed"`
}
