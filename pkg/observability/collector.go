// Package observability exposes run metrics in Prometheus format.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/loomcraft/vbed/pkg/machine"
	"github.com/loomcraft/vbed/pkg/runner"
)

// Collector counts operations and carriage passes. Wire it into a
// runner through Hooks.
type Collector struct {
	operations *prometheus.CounterVec
	passes     *prometheus.CounterVec
	passOps    prometheus.Histogram
}

// NewCollector registers the vbed metrics with reg and returns the
// collector. Pass prometheus.DefaultRegisterer for the default
// registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vbed",
			Name:      "operations_total",
			Help:      "Operations processed, by kind and result.",
		}, []string{"kind", "result"}),
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vbed",
			Name:      "passes_total",
			Help:      "Carriage passes completed, by direction.",
		}, []string{"direction"}),
		passOps: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vbed",
			Name:      "pass_operations",
			Help:      "Operations per carriage pass.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

// Hooks bridges the collector into a runner.
func (c *Collector) Hooks() runner.Hooks {
	return runner.Hooks{
		OnOperation: func(op machine.Operation) {
			c.operations.WithLabelValues(string(op.Kind), "accepted").Inc()
		},
		OnReject: func(op machine.Operation, err error) {
			c.operations.WithLabelValues(string(op.Kind), "rejected").Inc()
		},
		OnPass: func(dir machine.Direction, ops int) {
			c.passes.WithLabelValues(string(dir)).Inc()
			c.passOps.Observe(float64(ops))
		},
	}
}
