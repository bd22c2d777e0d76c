package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus exports operation metrics through client_golang. It owns its
// registry so several instances can coexist in tests.
type Prometheus struct {
	registry *prometheus.Registry

	opLatency *prometheus.HistogramVec
	ops       *prometheus.CounterVec
	edges     prometheus.Counter
	saved     prometheus.Counter
	results   *prometheus.HistogramVec
}

// NewPrometheus creates and registers the castIndex metrics.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "castindex_operation_latency_seconds",
			Help:    "Latency of index operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "castindex_operations_total",
			Help: "Total index operations",
		}, []string{"op", "status"}),
		edges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "castindex_edges_loaded_total",
			Help: "Total edges read from persisted files",
		}),
		saved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "castindex_bytes_saved_total",
			Help: "Total bytes written by save operations",
		}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "castindex_query_results",
			Help:    "Number of names returned per query",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"kind"}),
	}

	p.registry.MustRegister(p.opLatency)
	p.registry.MustRegister(p.ops)
	p.registry.MustRegister(p.edges)
	p.registry.MustRegister(p.saved)
	p.registry.MustRegister(p.results)
	return p
}

// Registry returns the registry the metrics are registered with.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (p *Prometheus) observe(op string, d time.Duration, err error) {
	p.opLatency.WithLabelValues(op, status(err)).Observe(d.Seconds())
	p.ops.WithLabelValues(op, status(err)).Inc()
}

// RecordLoad implements Collector.
func (p *Prometheus) RecordLoad(edges int, d time.Duration, err error) {
	p.observe("load", d, err)
	if err == nil {
		p.edges.Add(float64(edges))
	}
}

// RecordSave implements Collector.
func (p *Prometheus) RecordSave(bytes int, d time.Duration, err error) {
	p.observe("save", d, err)
	if err == nil {
		p.saved.Add(float64(bytes))
	}
}

// RecordMerge implements Collector.
func (p *Prometheus) RecordMerge(_ int, d time.Duration, err error) {
	p.observe("merge", d, err)
}

// RecordQuery implements Collector.
func (p *Prometheus) RecordQuery(kind string, results int, d time.Duration, err error) {
	p.observe("query_"+kind, d, err)
	if err == nil {
		p.results.WithLabelValues(kind).Observe(float64(results))
	}
}
