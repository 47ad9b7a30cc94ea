// Package metrics exposes regdash session counters as Prometheus metrics.
//
// There is no HTTP endpoint; a session writes its metrics once at exit in
// the node_exporter textfile collector format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dkoosis/regdash/pkg/registry"
)

const namespace = "regdash"

// Collector owns a private Prometheus registry fed by registry events.
type Collector struct {
	reg           *prometheus.Registry
	added         prometheus.Counter
	removed       prometheus.Counter
	statusUpdates *prometheus.CounterVec
	records       *prometheus.GaugeVec
}

// New creates a collector with all metrics registered.
func New() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		added: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "added_total",
			Help:      "Number of test records created.",
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "removed_total",
			Help:      "Number of test records removed.",
		}),
		statusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "status_updates_total",
			Help:      "Number of status updates by resulting status.",
		}, []string{"status"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Current number of test records by status.",
		}, []string{"status"}),
	}
	c.reg.MustRegister(c.added, c.removed, c.statusUpdates, c.records)
	for _, st := range registry.Statuses {
		c.statusUpdates.WithLabelValues(st.String())
		c.records.WithLabelValues(st.String())
	}
	return c
}

// Hook returns a registry hook that updates the collector.
func (c *Collector) Hook() registry.Hook {
	return c.Observe
}

// Observe records one registry event.
func (c *Collector) Observe(ev registry.Event) {
	switch ev.Kind {
	case registry.EventAdded:
		c.added.Inc()
		c.records.WithLabelValues(ev.Record.Status.String()).Inc()
	case registry.EventStatusChanged:
		c.statusUpdates.WithLabelValues(ev.Record.Status.String()).Inc()
		c.records.WithLabelValues(ev.Previous.String()).Dec()
		c.records.WithLabelValues(ev.Record.Status.String()).Inc()
	case registry.EventRemoved:
		c.removed.Inc()
		c.records.WithLabelValues(ev.Record.Status.String()).Dec()
	}
}

// Gatherer exposes the underlying registry, mainly for tests.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.reg
}

// WriteTextfile writes all metrics to path atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.reg); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
