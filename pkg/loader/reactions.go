package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/quantity"
	"github.com/prochem/flowsim/pkg/thermo"
)

type arrheniusDecl struct {
	A  float64           `yaml:"A"`
	Ea quantity.Quantity `yaml:"Ea"`
}

type reactionFile struct {
	Name          string            `yaml:"Name"`
	Components    []string          `yaml:"Components"`
	Stoichiometry []float64         `yaml:"Stoichiometry"`
	RateOrder     []float64         `yaml:"Rate Order"`
	Arrhenius     arrheniusDecl     `yaml:"Arrhenius"`
	Phase         string            `yaml:"Phase"`
	Enthalpy      quantity.Quantity `yaml:"Enthalpy"`
}

// LoadReactions reads every YAML document in a directory into a reaction
// set keyed by reaction name.
func LoadReactions(dir string) (map[string]*thermo.Reaction, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read reactions directory: %w", err)
	}
	set := make(map[string]*thermo.Reaction)
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		var file reactionFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		rxn, err := buildReaction(&file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		if _, dup := set[rxn.Name]; dup {
			return nil, fmt.Errorf("reaction %q declared twice", rxn.Name)
		}
		set[rxn.Name] = rxn
	}
	return set, nil
}

func buildReaction(file *reactionFile) (*thermo.Reaction, error) {
	if file.Name == "" {
		return nil, fmt.Errorf("reaction has no Name")
	}
	ea, err := file.Arrhenius.Ea.JoulesPerMol()
	if err != nil {
		return nil, fmt.Errorf("activation energy: %w", err)
	}
	dh, err := file.Enthalpy.JoulesPerMol()
	if err != nil {
		return nil, fmt.Errorf("enthalpy: %w", err)
	}
	phase := domain.PhaseVapor
	switch file.Phase {
	case "", "vapor", "gas":
	case "liquid":
		phase = domain.PhaseLiquid
	default:
		return nil, fmt.Errorf("unknown reaction phase %q", file.Phase)
	}
	rxn := &thermo.Reaction{
		Name:             file.Name,
		Components:       file.Components,
		Stoich:           file.Stoichiometry,
		Order:            file.RateOrder,
		PreExponential:   file.Arrhenius.A,
		ActivationEnergy: ea,
		Phase:            phase,
		Enthalpy:         dh,
	}
	if err := rxn.Validate(); err != nil {
		return nil, err
	}
	return rxn, nil
}
