// Package cellmetrics is an optional Prometheus instrumentation hook for
// the codec packages. It is never imported by cell, boc, tlb, or dict
// themselves — callers that want visibility wrap their own BoC/dict
// calls and report through a Metrics instance, mirroring how the
// teacher's services register a metrics struct against their own
// registry rather than baking Prometheus into library internals.
package cellmetrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters and histograms exposed for BoC and
// dictionary operations.
type Metrics struct {
	BocEncodeCount   *prometheus.CounterVec
	BocEncodeBytes   prometheus.Histogram
	BocDecodeCount   *prometheus.CounterVec
	DictBuildEntries prometheus.Histogram
	DictBuildCells   prometheus.Histogram
}

// New registers the metrics under the given namespace and returns the
// handle callers record against. Register it with a
// prometheus.Registerer of the caller's choosing.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BocEncodeCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boc_encode_total",
			Help:      "Number of BoC envelopes serialized, labeled by outcome.",
		}, []string{"outcome"}),
		BocEncodeBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "boc_encode_bytes",
			Help:      "Size in bytes of serialized BoC envelopes.",
			Buckets:   prometheus.ExponentialBuckets(32, 2, 16),
		}),
		BocDecodeCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boc_decode_total",
			Help:      "Number of BoC envelopes parsed, labeled by outcome.",
		}, []string{"outcome"}),
		DictBuildEntries: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dict_build_entries",
			Help:      "Number of entries per dictionary build.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
		DictBuildCells: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dict_build_cells",
			Help:      "Number of cells produced per dictionary build.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
	}
	reg.MustRegister(
		m.BocEncodeCount,
		m.BocEncodeBytes,
		m.BocDecodeCount,
		m.DictBuildEntries,
		m.DictBuildCells,
	)
	return m
}

// RecordBocEncode records one completed (or failed) BoC serialization.
func (m *Metrics) RecordBocEncode(bytes int, err error) {
	if err != nil {
		m.BocEncodeCount.WithLabelValues("error").Inc()
		return
	}
	m.BocEncodeCount.WithLabelValues("ok").Inc()
	m.BocEncodeBytes.Observe(float64(bytes))
}

// RecordBocDecode records one completed (or failed) BoC parse.
func (m *Metrics) RecordBocDecode(err error) {
	if err != nil {
		m.BocDecodeCount.WithLabelValues("error").Inc()
		return
	}
	m.BocDecodeCount.WithLabelValues("ok").Inc()
}

// RecordDictBuild records one dictionary build's entry and cell counts.
func (m *Metrics) RecordDictBuild(entries, cells int) {
	m.DictBuildEntries.Observe(float64(entries))
	m.DictBuildCells.Observe(float64(cells))
}
