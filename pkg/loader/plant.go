package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prochem/flowsim/pkg/domain"
	"github.com/prochem/flowsim/pkg/thermo"
)

// Plant bundles everything a plant directory defines.
type Plant struct {
	Topology   *domain.Topology
	Parameters domain.ParameterBank
	Components thermo.Bank
	Reactions  map[string]*thermo.Reaction
}

// LoadPlant reads a plant directory: flowsheet.yaml at the root, plus the
// optional components/ and reactions/ folders. A plant without property
// data still loads; the unit models fall back to generic correlations.
func LoadPlant(dir string) (*Plant, error) {
	topo, bank, err := LoadFlowsheet(filepath.Join(dir, "flowsheet.yaml"))
	if err != nil {
		return nil, fmt.Errorf("plant %s: %w", dir, err)
	}
	plant := &Plant{Topology: topo, Parameters: bank}

	componentsDir := filepath.Join(dir, "components")
	if dirExists(componentsDir) {
		plant.Components, err = LoadComponents(componentsDir)
		if err != nil {
			return nil, fmt.Errorf("plant %s: %w", dir, err)
		}
	}

	reactionsDir := filepath.Join(dir, "reactions")
	if dirExists(reactionsDir) {
		plant.Reactions, err = LoadReactions(reactionsDir)
		if err != nil {
			return nil, fmt.Errorf("plant %s: %w", dir, err)
		}
	}
	return plant, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
