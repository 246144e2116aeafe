// Package sensors models the plant's measurement layer: probes that read a
// stream property from a snapshot and report it with calibration offset and
// gaussian noise, the way a real transmitter would.
package sensors

import (
	"fmt"

	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/quantity"
)

// Property selects which stream value a probe measures.
type Property string

const (
	PropertyFlow        Property = "flow"
	PropertyTemperature Property = "temperature"
	PropertyFraction    Property = "fraction"
)

// Probe measures one property of one stream.
type Probe struct {
	Name     string
	Stream   string
	Property Property

	// Component narrows a fraction probe to one slate component.
	Component string

	// Offset is a fixed calibration bias added to every reading.
	Offset float64
	// Stdev scales the gaussian noise term. Zero gives a noiseless probe.
	Stdev float64
}

// Panel is an ordered set of probes sharing one noise generator, so a
// reading sweep is reproducible for a given seed.
type Panel struct {
	probes []Probe
	seed   uint64
}

// NewPanel creates a panel with a deterministic noise seed.
func NewPanel(seed uint64, probes ...Probe) *Panel {
	return &Panel{probes: probes, seed: seed}
}

// Reading is one measured value.
type Reading struct {
	Probe string  `json:"probe"`
	Value float64 `json:"value"`
}

// Read sweeps every probe against a snapshot. Probes of unknown streams
// report an error; a transmitter on a dead line is a fault, not a zero.
func (p *Panel) Read(snap domain.Snapshot) ([]Reading, error) {
	out := make([]Reading, 0, len(p.probes))
	for _, probe := range p.probes {
		value, err := p.measure(probe, snap)
		if err != nil {
			return nil, fmt.Errorf("probe %q: %w", probe.Name, err)
		}
		out = append(out, Reading{Probe: probe.Name, Value: value})
	}
	return out, nil
}

func (p *Panel) measure(probe Probe, snap domain.Snapshot) (float64, error) {
	stream, ok := snap[probe.Stream]
	if !ok {
		return 0, &domain.UnknownStreamError{Name: probe.Stream}
	}
	if !stream.Known() {
		return 0, fmt.Errorf("stream %q has no resolved state", probe.Stream)
	}

	var base float64
	switch probe.Property {
	case PropertyFlow:
		base = stream.Flow
	case PropertyTemperature:
		base = stream.Temperature
	case PropertyFraction:
		idx, ok := domain.ComponentIndex(probe.Component)
		if !ok {
			return 0, fmt.Errorf("unknown component %q", probe.Component)
		}
		base = stream.Composition[idx]
	default:
		return 0, fmt.Errorf("unknown probe property %q", probe.Property)
	}

	var noise float64
	if probe.Stdev > 0 {
		noise, p.seed = quantity.Noise(probe.Stdev, p.seed)
	}
	return base + probe.Offset + noise, nil
}
