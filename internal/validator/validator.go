package validator

import (
	"errors"
	"fmt"

	"github.com/prochem/flowsim/pkg/domain"
)

// Validate checks a topology for structural problems before any unit model
// runs: dangling stream references, units missing from the calculation
// order, contested stream ownership and unresolved parameter files. All
// findings are joined so a broken flowsheet is reported in one shot.
func Validate(topo *domain.Topology, bank domain.ParameterBank) error {
	if topo == nil {
		return errors.New("topology is nil")
	}
	var errs []error
	errs = append(errs, checkOrder(topo)...)
	errs = append(errs, checkStreams(topo)...)
	errs = append(errs, checkOwnership(topo)...)
	errs = append(errs, checkParameters(topo, bank)...)
	return errors.Join(errs...)
}

func checkOrder(topo *domain.Topology) []error {
	var errs []error
	if len(topo.Order) == 0 {
		errs = append(errs, errors.New("calculation order is empty"))
	}
	scheduled := make(map[string]bool, len(topo.Units))
	for _, name := range topo.Order {
		if _, ok := topo.Units[name]; !ok {
			errs = append(errs, &domain.UnknownUnitError{Name: name})
			continue
		}
		scheduled[name] = true
	}
	for name := range topo.Units {
		if !scheduled[name] {
			errs = append(errs, fmt.Errorf("unit %q never appears in the calculation order", name))
		}
	}
	return errs
}

func checkStreams(topo *domain.Topology) []error {
	var errs []error
	seen := make(map[string]bool)
	for _, spec := range topo.Units {
		for _, name := range append(spec.AllInlets(), spec.AllOutlets()...) {
			if _, ok := topo.Streams[name]; !ok && !seen[name] {
				seen[name] = true
				errs = append(errs, &domain.UnknownStreamError{Name: name})
			}
		}
	}
	return errs
}

// checkOwnership enforces a single producer per stream and that every
// consumed stream is either produced by some unit or externally seeded.
func checkOwnership(topo *domain.Topology) []error {
	var errs []error
	owner := make(map[string]string)
	for name, spec := range topo.Units {
		for _, out := range spec.AllOutlets() {
			if prev, ok := owner[out]; ok {
				errs = append(errs, fmt.Errorf("stream %q written by both %q and %q", out, prev, name))
				continue
			}
			owner[out] = name
		}
	}
	for name, spec := range topo.Units {
		for _, in := range spec.AllInlets() {
			if _, produced := owner[in]; produced {
				continue
			}
			seed, declared := topo.Streams[in]
			if declared && seed.Known() {
				continue
			}
			if declared {
				errs = append(errs, fmt.Errorf("stream %q feeds %q but has no producer and no seed state", in, name))
			}
		}
	}
	return errs
}

func checkParameters(topo *domain.Topology, bank domain.ParameterBank) []error {
	var errs []error
	for name, spec := range topo.Units {
		if spec.File == "" {
			continue
		}
		if _, ok := bank[name]; !ok {
			errs = append(errs, &domain.MissingParameterFileError{Unit: name, File: spec.File})
		}
	}
	return errs
}
