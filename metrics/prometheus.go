package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Key struct {
	Namespace string
	Name      string
}

// Prometheus creates collectors lazily and registers them on the registry.
// Copies created with WithPrefix share the collectors.
type Prometheus struct {
	prefix   string
	registry *prometheus.Registry
	entries  map[Key]prometheus.Collector
	mu       *sync.RWMutex
}

// NewPrometheus creates Prometheus metrics backed by a new registry.
func NewPrometheus() Prometheus {
	return Prometheus{
		registry: prometheus.NewRegistry(),
		entries:  make(map[Key]prometheus.Collector),
		mu:       new(sync.RWMutex),
	}
}

// Registry returns the underlying registry.
func (p Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p Prometheus) WithPrefix(prefix string) Metrics {
	if p.prefix != "" {
		p.prefix += "_" + prefix
	} else {
		p.prefix = prefix
	}

	return p
}

func (p Prometheus) Counter(name string, labels Labels) Counter {
	entry := p.collector(name, func() prometheus.Collector {
		opts := prometheus.CounterOpts{
			Namespace: p.prefix,
			Name:      name,
		}

		if labels == nil {
			return prometheus.NewCounter(opts)
		}

		return prometheus.NewCounterVec(opts, labels.Keys())
	})

	if labels != nil {
		return entry.(*prometheus.CounterVec).With(prometheus.Labels(labels))
	}

	return entry.(prometheus.Counter)
}

func (p Prometheus) Gauge(name string, labels Labels) Gauge {
	entry := p.collector(name, func() prometheus.Collector {
		opts := prometheus.GaugeOpts{
			Namespace: p.prefix,
			Name:      name,
		}

		if labels == nil {
			return prometheus.NewGauge(opts)
		}

		return prometheus.NewGaugeVec(opts, labels.Keys())
	})

	if labels != nil {
		return entry.(*prometheus.GaugeVec).With(prometheus.Labels(labels))
	}

	return entry.(prometheus.Gauge)
}

func (p Prometheus) collector(name string, create func() prometheus.Collector) prometheus.Collector {
	key := Key{p.prefix, name}
	p.mu.RLock()
	entry, ok := p.entries[key]
	p.mu.RUnlock()
	if ok {
		return entry
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if entry, ok := p.entries[key]; ok {
		return entry
	}

	entry = create()
	p.registry.MustRegister(entry)
	p.entries[key] = entry
	return entry
}
