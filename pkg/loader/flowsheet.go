// Package loader reads the on-disk plant definition: the flowsheet YAML,
// the per-unit parameter files it references, and the component and
// reaction banks.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/quantity"
)

// kindGroups maps the section headings under "Unit Operations" to unit
// kinds. The plural headings are the file format; the kinds are internal.
var kindGroups = map[string]domain.Kind{
	"Splits":          domain.KindSplitter,
	"Joins":           domain.KindJoin,
	"Reactors":        domain.KindReactor,
	"Heat Exchangers": domain.KindHeatExchanger,
	"Separators":      domain.KindSeparator,
	"Strippers":       domain.KindStripper,
	"Compressors":     domain.KindCompressor,
}

type streamDecl struct {
	Composition map[string]float64 `yaml:"Composition"`
	Temperature *quantity.Quantity `yaml:"Temperature"`
	Flow        *quantity.Quantity `yaml:"Flow"`
}

type jacketDecl struct {
	Inlet  string `yaml:"Inlet"`
	Outlet string `yaml:"Outlet"`
}

type unitDecl struct {
	File    string      `yaml:"File"`
	Inlets  []string    `yaml:"Inlets"`
	Outlets []string    `yaml:"Outlets"`
	Jacket  *jacketDecl `yaml:"Jacket"`
}

type flowsheetFile struct {
	Streams map[string]*streamDecl         `yaml:"Streams"`
	Units   map[string]map[string]unitDecl `yaml:"Unit Operations"`
	Order   []string                       `yaml:"Calculation Order"`
}

// LoadFlowsheet parses a flowsheet file and resolves every per-unit
// parameter file it references, relative to the flowsheet's directory.
func LoadFlowsheet(path string) (*domain.Topology, domain.ParameterBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read flowsheet: %w", err)
	}

	var file flowsheetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse flowsheet: %w", err)
	}

	topo := &domain.Topology{
		Streams: make(map[string]domain.StreamState, len(file.Streams)),
		Units:   make(map[string]domain.UnitSpec),
		Order:   file.Order,
	}

	for name, decl := range file.Streams {
		state, err := buildStream(decl)
		if err != nil {
			return nil, nil, fmt.Errorf("stream %q: %w", name, err)
		}
		topo.Streams[name] = state
	}

	baseDir := filepath.Dir(path)
	bank := make(domain.ParameterBank)
	for group, decls := range file.Units {
		kind, ok := kindGroups[group]
		if !ok {
			return nil, nil, fmt.Errorf("unknown unit operation group %q", group)
		}
		for name, decl := range decls {
			if _, dup := topo.Units[name]; dup {
				return nil, nil, fmt.Errorf("unit %q declared twice", name)
			}
			spec := domain.UnitSpec{
				Name:    name,
				Kind:    kind,
				Inlets:  decl.Inlets,
				Outlets: decl.Outlets,
				File:    decl.File,
			}
			if decl.Jacket != nil {
				spec.Jacket = &domain.JacketSpec{Inlet: decl.Jacket.Inlet, Outlet: decl.Jacket.Outlet}
			}
			topo.Units[name] = spec

			if decl.File == "" {
				continue
			}
			record, err := loadRecord(filepath.Join(baseDir, decl.File))
			if err != nil {
				if os.IsNotExist(err) {
					return nil, nil, &domain.MissingParameterFileError{Unit: name, File: decl.File}
				}
				return nil, nil, fmt.Errorf("unit %q: %w", name, err)
			}
			bank[name] = record
		}
	}

	return topo, bank, nil
}

// buildStream turns a stream declaration into a seed state. A declaration
// with no composition is an internal stream: declared, but unknown until
// first written.
func buildStream(decl *streamDecl) (domain.StreamState, error) {
	if decl == nil || decl.Composition == nil {
		return domain.StreamState{}, nil
	}
	if decl.Temperature == nil {
		return domain.StreamState{}, fmt.Errorf("seeded stream is missing Temperature")
	}
	if decl.Flow == nil {
		return domain.StreamState{}, fmt.Errorf("seeded stream is missing Flow")
	}
	tempK, err := decl.Temperature.Kelvin()
	if err != nil {
		return domain.StreamState{}, err
	}
	flow, err := decl.Flow.KmolPerHour()
	if err != nil {
		return domain.StreamState{}, err
	}
	return domain.NewStreamState(decl.Composition, tempK, flow)
}

func loadRecord(path string) (domain.ParameterRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var record domain.ParameterRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse parameter file %s: %w", filepath.Base(path), err)
	}
	return record, nil
}
