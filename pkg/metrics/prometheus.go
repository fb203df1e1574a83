package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusSink exports the <BUILD>/<CUSTOMIZE> timer families as a single
// labeled histogram, so the resolution engine's timing calls show up
// alongside the rest of a host process's Prometheus metrics.
type PrometheusSink struct {
	histogram *prometheus.HistogramVec
}

// NewPrometheusSink creates a sink registering its histogram on reg. Pass
// prometheus.DefaultRegisterer to use the global registry.
func NewPrometheusSink(reg prometheus.Registerer, namespace string) *PrometheusSink {
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "factory",
		Name:      "operation_duration_seconds",
		Help:      "Duration of factory build and customize operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"key"})
	reg.MustRegister(h)
	return &PrometheusSink{histogram: h}
}

func (p *PrometheusSink) Time(key string, d time.Duration) {
	p.histogram.WithLabelValues(key).Observe(d.Seconds())
}
