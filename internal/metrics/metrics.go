package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	OrdersSubmitted       prometheus.Counter
	DuplicateReferences   prometheus.Counter
	OrdersCompleted       prometheus.Counter
	OrdersRejected        prometheus.Counter
	FulfillmentErrors     prometheus.Counter
	FulfillmentLatencySec prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	submitted := prometheus.NewCounter(prometheus.CounterOpts{Name: "topup_orders_submitted_total"})
	duplicates := prometheus.NewCounter(prometheus.CounterOpts{Name: "topup_duplicate_references_total"})
	completed := prometheus.NewCounter(prometheus.CounterOpts{Name: "topup_orders_completed_total"})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "topup_orders_rejected_total"})
	fulfillErrors := prometheus.NewCounter(prometheus.CounterOpts{Name: "topup_fulfillment_errors_total"})
	fulfillLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "topup_fulfillment_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(submitted, duplicates, completed, rejected, fulfillErrors, fulfillLatency)
	return &Registry{
		reg:                   r,
		OrdersSubmitted:       submitted,
		DuplicateReferences:   duplicates,
		OrdersCompleted:       completed,
		OrdersRejected:        rejected,
		FulfillmentErrors:     fulfillErrors,
		FulfillmentLatencySec: fulfillLatency,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
