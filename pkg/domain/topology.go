package domain

// Topology is the directed graph of streams and unit operations plus the
// declared calculation order. Order entries may repeat a unit name; the
// scheduler replays the literal sequence each pass and recycle convergence
// is handled by repeating whole passes, not by unrolling the duplicates.
type Topology struct {
	// Streams maps every declared stream name to its seed state. Unseeded
	// streams map to the zero StreamState and start unknown.
	Streams map[string]StreamState

	// Units maps unit name to its declaration.
	Units map[string]UnitSpec

	// Order is the calculation order, one pass worth of unit names.
	Order []string
}

// ParameterRecord is an opaque per-unit parameter document. The core passes
// it through to the unit constructor without interpreting it.
type ParameterRecord map[string]any

// ParameterBank maps unit name to its loaded parameter record.
type ParameterBank map[string]ParameterRecord

// StreamOwners maps each stream to the unit that declares it as an outlet.
// Validation guarantees at most one owner per stream; fan-in goes through an
// explicit Join.
func (t *Topology) StreamOwners() map[string]string {
	owners := make(map[string]string)
	for name, u := range t.Units {
		for _, out := range u.AllOutlets() {
			owners[out] = name
		}
	}
	return owners
}
