package observability

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomcraft/vbed/pkg/machine"
	"github.com/loomcraft/vbed/pkg/runner"
)

func TestCollectorCountsRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewCollector(reg)

	cfg := machine.DefaultConfig()
	cfg.Width = 10
	m, err := machine.New(cfg)
	require.NoError(t, err)

	ops := []machine.Operation{
		machine.BringIn(1),
		machine.Knit(machine.FrontNeedle(2), []int{1}, machine.Rightward),
		machine.Knit(machine.FrontNeedle(4), []int{1}, machine.Rightward),
		machine.Knit(machine.FrontNeedle(0), []int{1}, machine.Rightward), // behind the carriage
		machine.Out(1),
	}
	r := runner.New(runner.WithHooks(collector.Hooks()), runner.WithContinueOnError())
	report, err := r.Run(context.Background(), m, ops)
	require.NoError(t, err)
	require.Equal(t, 1, report.Rejected)

	assert.Equal(t, float64(2),
		testutil.ToFloat64(collector.operations.WithLabelValues("knit", "accepted")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(collector.operations.WithLabelValues("knit", "rejected")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(collector.passes.WithLabelValues("+")))
}
