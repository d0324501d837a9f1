// Package metrics records Prometheus counters for session reads and MR
// decoding.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Collector owns the statmeta metrics and the registry they are registered
// with. A nil *Collector is valid and records nothing.
//
// Metrics:
//   - statmeta_session_reads_total: Read calls by backend
//   - statmeta_session_bytes_read_total: bytes delivered by Read, by backend
//   - statmeta_session_aborts_total: reads stopped by a progress handler
//   - statmeta_mrsets_decoded_total: MR sets produced by successful decodes
//   - statmeta_mrsets_failures_total: blobs rejected by the decoder
//   - statmeta_mrsets_decode_seconds: decode latency
type Collector struct {
	registry *prometheus.Registry

	readsTotal     *prometheus.CounterVec
	bytesReadTotal *prometheus.CounterVec
	abortsTotal    prometheus.Counter
	setsDecoded    prometheus.Counter
	decodeFailures prometheus.Counter
	decodeDuration prometheus.Histogram
}

// NewCollector creates a collector and registers its metrics with registry.
// If registry is nil, a fresh registry is created.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		readsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "statmeta",
				Subsystem: "session",
				Name:      "reads_total",
				Help:      "Total number of Read calls",
			},
			[]string{"backend"},
		),
		bytesReadTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "statmeta",
				Subsystem: "session",
				Name:      "bytes_read_total",
				Help:      "Total number of bytes delivered by Read",
			},
			[]string{"backend"},
		),
		abortsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statmeta",
			Subsystem: "session",
			Name:      "aborts_total",
			Help:      "Total number of reads aborted by a progress handler",
		}),
		setsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statmeta",
			Subsystem: "mrsets",
			Name:      "decoded_total",
			Help:      "Total number of multiple response sets decoded",
		}),
		decodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statmeta",
			Subsystem: "mrsets",
			Name:      "failures_total",
			Help:      "Total number of malformed MR blobs",
		}),
		decodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "statmeta",
			Subsystem: "mrsets",
			Name:      "decode_seconds",
			Help:      "MR blob decode latency in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
	}

	registry.MustRegister(
		c.readsTotal,
		c.bytesReadTotal,
		c.abortsTotal,
		c.setsDecoded,
		c.decodeFailures,
		c.decodeDuration,
	)

	return c
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// RecordRead records one Read call that delivered n bytes.
func (c *Collector) RecordRead(backend string, n int) {
	if c == nil {
		return
	}
	c.readsTotal.WithLabelValues(backend).Inc()
	c.bytesReadTotal.WithLabelValues(backend).Add(float64(n))
}

// RecordAbort records a read stopped by its progress handler.
func (c *Collector) RecordAbort() {
	if c == nil {
		return
	}
	c.abortsTotal.Inc()
}

// RecordDecode records one decoder run. sets is ignored when failed is true.
func (c *Collector) RecordDecode(sets int, failed bool, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.decodeDuration.Observe(elapsed.Seconds())
	if failed {
		c.decodeFailures.Inc()
		return
	}
	c.setsDecoded.Add(float64(sets))
}

// WriteText writes every gathered metric family to w in the Prometheus text
// exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	if c == nil {
		return nil
	}

	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
