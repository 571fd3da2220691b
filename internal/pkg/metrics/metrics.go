// Package metrics exposes Prometheus collectors for the fulfillment core.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// OrdersPulled counts orders fetched from sales channels by channel and result.
	// Result is one of "created", "skipped" (duplicate) or "failed".
	OrdersPulled = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fulfillment_orders_pulled_total", Help: "Orders pulled from sales channels."},
		[]string{"channel", "result"},
	)

	// StageTransitions counts orchestrator stage outcomes by stage and result.
	// Stage is "label" or "sync"; result is "success", "failed" or "exception".
	StageTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fulfillment_stage_transitions_total", Help: "Order stage transitions by outcome."},
		[]string{"stage", "result"},
	)

	// BatchesGenerated counts generated batches by channel.
	BatchesGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fulfillment_batches_generated_total", Help: "Order batches generated."},
		[]string{"channel"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors plus Go/process collectors
// on the package registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(OrdersPulled)
		Registry.MustRegister(StageTransitions)
		Registry.MustRegister(BatchesGenerated)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
