package solver

import (
	"math"

	"github.com/prochem/flowsim/pkg/domain"
)

// residualFloor keeps flow and temperature residuals well behaved when the
// previous value is near zero.
const residualFloor = 1.0

// Residual measures the largest change between two successive pass-end
// snapshots. Composition changes are absolute mole-fraction deltas; flow and
// temperature changes are relative to the previous value. A stream that
// resolves from unknown to known counts as a full-scale change so the loop
// never declares convergence while information is still propagating.
func Residual(prev, cur domain.Snapshot) float64 {
	worst := 0.0
	for name, after := range cur {
		before, ok := prev[name]
		if !ok {
			continue
		}
		worst = math.Max(worst, streamResidual(before, after))
	}
	return worst
}

func streamResidual(before, after domain.StreamState) float64 {
	switch {
	case !before.Known() && !after.Known():
		return 0
	case before.Known() != after.Known():
		return 1
	}
	worst := 0.0
	for i := range after.Composition {
		d := math.Abs(after.Composition[i] - before.Composition[i])
		worst = math.Max(worst, d)
	}
	worst = math.Max(worst, relDelta(before.Flow, after.Flow))
	worst = math.Max(worst, relDelta(before.Temperature, after.Temperature))
	return worst
}

func relDelta(before, after float64) float64 {
	denom := math.Max(math.Abs(before), residualFloor)
	return math.Abs(after-before) / denom
}
