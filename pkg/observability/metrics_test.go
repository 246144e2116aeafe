package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prochem/flowsim/pkg/domain"
)

func TestMetricsRegister(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	// Double registration is the caller's bug and must surface.
	assert.Error(t, m.Register(reg))
}

func TestHooksFeedMetrics(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	hooks := m.Hooks()
	hooks.EmitPassEnd(domain.PassEvent{Pass: 1, Residual: 0.25, Elapsed: 3 * time.Millisecond})
	hooks.EmitPassEnd(domain.PassEvent{Pass: 2, Residual: 1e-7, Elapsed: 2 * time.Millisecond})
	hooks.EmitConverged(2, 1e-7)
	hooks.EmitFailure(errors.New("no convergence"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.passes))
	assert.Equal(t, 1e-7, testutil.ToFloat64(m.residual))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.convergences.WithLabelValues("converged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.convergences.WithLabelValues("failed")))

	count := testutil.CollectAndCount(m.passDuration, "flowsim_pass_duration_seconds")
	assert.Equal(t, 1, count)
}

func TestMustRegisterPanicsOnConflict(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	m.MustRegister(reg)
	assert.Panics(t, func() { m.MustRegister(reg) })
}
