package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prochem/flowsim/pkg/domain"
)

func validTopology(t *testing.T) *domain.Topology {
	t.Helper()
	feed, err := domain.NewStreamState(map[string]float64{"A": 1.0}, 300, 60)
	require.NoError(t, err)
	return &domain.Topology{
		Streams: map[string]domain.StreamState{
			"Feed":    feed,
			"Mixed":   {},
			"Product": {},
			"Recycle": {},
		},
		Units: map[string]domain.UnitSpec{
			"Mixer": {
				Name: "Mixer", Kind: domain.KindJoin,
				Inlets: []string{"Feed", "Recycle"}, Outlets: []string{"Mixed"},
			},
			"Tee": {
				Name: "Tee", Kind: domain.KindSplitter,
				Inlets: []string{"Mixed"}, Outlets: []string{"Product", "Recycle"},
			},
		},
		Order: []string{"Mixer", "Tee"},
	}
}

func TestValidateAcceptsWellFormedTopology(t *testing.T) {
	assert.NoError(t, Validate(validTopology(t), nil))
}

func TestValidateNilTopology(t *testing.T) {
	assert.ErrorContains(t, Validate(nil, nil), "topology is nil")
}

func TestValidateEmptyOrder(t *testing.T) {
	topo := validTopology(t)
	topo.Order = nil
	assert.ErrorContains(t, Validate(topo, nil), "calculation order is empty")
}

func TestValidateUnknownUnitInOrder(t *testing.T) {
	topo := validTopology(t)
	topo.Order = append(topo.Order, "Ghost")

	err := Validate(topo, nil)
	var unknown *domain.UnknownUnitError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Ghost", unknown.Name)
}

func TestValidateUnscheduledUnit(t *testing.T) {
	topo := validTopology(t)
	topo.Order = []string{"Mixer"}
	assert.ErrorContains(t, Validate(topo, nil), `unit "Tee" never appears in the calculation order`)
}

func TestValidateUndeclaredStream(t *testing.T) {
	topo := validTopology(t)
	delete(topo.Streams, "Recycle")

	err := Validate(topo, nil)
	var unknown *domain.UnknownStreamError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Recycle", unknown.Name)
}

func TestValidateDualWriter(t *testing.T) {
	topo := validTopology(t)
	topo.Streams["Extra"] = domain.StreamState{}
	topo.Units["Rogue"] = domain.UnitSpec{
		Name: "Rogue", Kind: domain.KindJoin,
		Inlets: []string{"Feed"}, Outlets: []string{"Mixed"},
	}
	topo.Order = append(topo.Order, "Rogue")

	err := Validate(topo, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, `stream "Mixed" written by both`)
}

func TestValidateSeedlessInlet(t *testing.T) {
	// Feed has no producer, so it must carry a seed state.
	topo := validTopology(t)
	topo.Streams["Feed"] = domain.StreamState{}
	assert.ErrorContains(t, Validate(topo, nil), `stream "Feed" feeds "Mixer" but has no producer and no seed state`)
}

func TestValidateJacketStreamsChecked(t *testing.T) {
	topo := validTopology(t)
	topo.Units["Mixer"] = domain.UnitSpec{
		Name: "Mixer", Kind: domain.KindJoin,
		Inlets: []string{"Feed", "Recycle"}, Outlets: []string{"Mixed"},
		Jacket: &domain.JacketSpec{Inlet: "CW In", Outlet: "CW Out"},
	}

	// Neither jacket stream is declared.
	err := Validate(topo, nil)
	var unknown *domain.UnknownStreamError
	require.ErrorAs(t, err, &unknown)
}

func TestValidateMissingParameterFile(t *testing.T) {
	topo := validTopology(t)
	tee := topo.Units["Tee"]
	tee.File = "units/tee.yaml"
	topo.Units["Tee"] = tee

	err := Validate(topo, nil)
	var missing *domain.MissingParameterFileError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Tee", missing.Unit)
	assert.Equal(t, "units/tee.yaml", missing.File)

	// With the record loaded the same topology passes.
	bank := domain.ParameterBank{"Tee": {}}
	assert.NoError(t, Validate(topo, bank))
}

func TestValidateReportsAllFindings(t *testing.T) {
	topo := validTopology(t)
	topo.Order = []string{"Mixer", "Ghost"}
	delete(topo.Streams, "Product")

	err := Validate(topo, nil)
	require.Error(t, err)
	var unknownUnit *domain.UnknownUnitError
	var unknownStream *domain.UnknownStreamError
	assert.ErrorAs(t, err, &unknownUnit)
	assert.ErrorAs(t, err, &unknownStream)
	assert.ErrorContains(t, err, `unit "Tee" never appears`)
}
