package domain

// Kind identifies the behavior of a unit operation.
type Kind string

const (
	KindSplitter      Kind = "splitter"
	KindJoin          Kind = "join"
	KindReactor       Kind = "reactor"
	KindHeatExchanger Kind = "heat_exchanger"
	KindSeparator     Kind = "separator"
	KindStripper      Kind = "stripper"
	KindCompressor    Kind = "compressor"
)

// Kinds lists every recognized unit kind.
var Kinds = []Kind{
	KindSplitter,
	KindJoin,
	KindReactor,
	KindHeatExchanger,
	KindSeparator,
	KindStripper,
	KindCompressor,
}

// JacketSpec names the cooling-water pair of a jacketed vessel.
type JacketSpec struct {
	Inlet  string `json:"inlet" yaml:"Inlet"`
	Outlet string `json:"outlet" yaml:"Outlet"`
}

// UnitSpec declares a unit operation: its kind, wiring and the reference to
// its parameter record. The record content is opaque here; pkg/units decodes
// it per kind.
type UnitSpec struct {
	Name    string      `json:"name" yaml:"name"`
	Kind    Kind        `json:"kind" yaml:"kind"`
	Inlets  []string    `json:"inlets" yaml:"Inlets"`
	Outlets []string    `json:"outlets" yaml:"Outlets"`
	Jacket  *JacketSpec `json:"jacket,omitempty" yaml:"Jacket,omitempty"`

	// File is the parameter record reference. It must resolve to an entry in
	// the ParameterBank before simulation starts.
	File string `json:"file,omitempty" yaml:"File,omitempty"`
}

// AllInlets returns the declared inlets plus the jacket inlet, if any.
func (u UnitSpec) AllInlets() []string {
	if u.Jacket == nil {
		return u.Inlets
	}
	return append(append([]string{}, u.Inlets...), u.Jacket.Inlet)
}

// AllOutlets returns the declared outlets plus the jacket outlet, if any.
func (u UnitSpec) AllOutlets() []string {
	if u.Jacket == nil {
		return u.Outlets
	}
	return append(append([]string{}, u.Outlets...), u.Jacket.Outlet)
}
