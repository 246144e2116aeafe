package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/prochem/flowsim/pkg/thermo"
)

// abc is the three-coefficient polynomial shape shared by the property
// correlations.
type abc struct {
	A float64 `yaml:"A"`
	B float64 `yaml:"B"`
	C float64 `yaml:"C"`
}

func (p abc) coefficients() [3]float64 {
	return [3]float64{p.A, p.B, p.C}
}

// componentFile mirrors one component YAML document. Coefficient units
// follow the published correlations: Antoine in Pa over °C, specific heats
// in cal/(g·K), liquid density in lb/ft³, vaporization heat in cal/g.
type componentFile struct {
	Name                   string  `yaml:"Name"`
	MolarMass              float64 `yaml:"Molar Mass"`
	Antoine                abc     `yaml:"Antoine"`
	LiquidDensity          abc     `yaml:"Liquid Density"`
	LiquidSpecificEnthalpy abc     `yaml:"Liquid Specific Enthalpy"`
	GasSpecificEnthalpy    abc     `yaml:"Gas Specific Enthalpy"`
	VaporizationHeat       float64 `yaml:"Vaporization Heat"`
}

// LoadComponents reads every YAML document in a directory into a property
// bank keyed by component name.
func LoadComponents(dir string) (thermo.Bank, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read components directory: %w", err)
	}
	bank := make(thermo.Bank)
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		var file componentFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		if file.Name == "" {
			return nil, fmt.Errorf("component file %s has no Name", entry.Name())
		}
		if file.MolarMass <= 0 {
			return nil, fmt.Errorf("component %q has a non-positive molar mass", file.Name)
		}
		if _, dup := bank[file.Name]; dup {
			return nil, fmt.Errorf("component %q declared twice", file.Name)
		}
		bank[file.Name] = &thermo.Component{
			Name:             file.Name,
			MolarMass:        file.MolarMass,
			Antoine:          file.Antoine.coefficients(),
			LiquidDensity:    file.LiquidDensity.coefficients(),
			LiquidEnthalpy:   file.LiquidSpecificEnthalpy.coefficients(),
			VaporEnthalpy:    file.GasSpecificEnthalpy.coefficients(),
			VaporizationHeat: file.VaporizationHeat,
		}
	}
	if len(bank) == 0 {
		return nil, fmt.Errorf("no component files found in %s", dir)
	}
	return bank, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
