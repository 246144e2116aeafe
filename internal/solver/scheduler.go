package solver

import (
	"fmt"

	"github.com/prochem/flowsim/pkg/units"
)

// step is one slot in the calculation order. The same operation may appear
// in several slots; a recycle mixer is typically replayed near the end of
// the pass so the loop closes within a single sweep.
type step struct {
	op units.Operation
}

// scheduler replays the calculation order against the registry. It has no
// convergence logic of its own; the driver decides when to stop.
type scheduler struct {
	steps []step
	reg   *Registry
}

func newScheduler(reg *Registry, order []string, ops map[string]units.Operation) (*scheduler, error) {
	s := &scheduler{reg: reg, steps: make([]step, 0, len(order))}
	for _, name := range order {
		op, ok := ops[name]
		if !ok {
			return nil, fmt.Errorf("calculation order references unknown unit %q", name)
		}
		s.steps = append(s.steps, step{op: op})
	}
	return s, nil
}

// runPass executes every slot in declared order. The first failing unit
// aborts the pass; the registry keeps whatever was committed before it.
func (s *scheduler) runPass(dt float64) error {
	s.reg.BeginPass()
	for _, st := range s.steps {
		bus := s.reg.Bus(st.op.Name())
		if err := st.op.Evaluate(bus, dt); err != nil {
			return fmt.Errorf("unit %q: %w", st.op.Name(), err)
		}
	}
	return nil
}
