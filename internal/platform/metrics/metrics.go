// Package metrics exposes Prometheus counters for pipeline visibility.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds the pipeline's Prometheus instruments. A nil Manager is a
// valid no-op so tests and one-off runs don't need a registry.
type Manager struct {
	matchesMaterialized prometheus.Counter
	matchesSkipped      prometheus.Counter
	matchesFailed       prometheus.Counter
	bronzeFilesWritten  prometheus.Counter
	factRowsWritten     *prometheus.CounterVec
	recordsRejected     prometheus.Counter
	unmappedEventTypes  *prometheus.CounterVec
}

func NewManager(registry prometheus.Registerer) *Manager {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Manager{
		matchesMaterialized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pitchmart",
			Name:      "matches_materialized_total",
			Help:      "Matches whose fact rows were committed.",
		}),
		matchesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pitchmart",
			Name:      "matches_skipped_total",
			Help:      "Matches skipped because they were already materialized.",
		}),
		matchesFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pitchmart",
			Name:      "matches_failed_total",
			Help:      "Matches discarded by the all-or-nothing fact insert.",
		}),
		bronzeFilesWritten: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pitchmart",
			Name:      "bronze_files_written_total",
			Help:      "Bronze parquet files written (excludes idempotent skips).",
		}),
		factRowsWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pitchmart",
			Name:      "fact_rows_written_total",
			Help:      "Fact rows written, by table.",
		}, []string{"table"}),
		recordsRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pitchmart",
			Name:      "records_rejected_total",
			Help:      "Raw records rejected during normalization.",
		}),
		unmappedEventTypes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pitchmart",
			Name:      "unmapped_event_types_total",
			Help:      "Events passed through without type-specific enrichment.",
		}, []string{"event_type"}),
	}
}

func (m *Manager) MatchMaterialized() {
	if m != nil {
		m.matchesMaterialized.Inc()
	}
}

func (m *Manager) MatchSkipped() {
	if m != nil {
		m.matchesSkipped.Inc()
	}
}

func (m *Manager) MatchFailed() {
	if m != nil {
		m.matchesFailed.Inc()
	}
}

func (m *Manager) BronzeFileWritten() {
	if m != nil {
		m.bronzeFilesWritten.Inc()
	}
}

func (m *Manager) FactRowsWritten(table string, n int) {
	if m != nil && n > 0 {
		m.factRowsWritten.WithLabelValues(table).Add(float64(n))
	}
}

func (m *Manager) RecordsRejected(n int) {
	if m != nil && n > 0 {
		m.recordsRejected.Add(float64(n))
	}
}

func (m *Manager) UnmappedEventType(eventType string, n int) {
	if m != nil && n > 0 {
		m.unmappedEventTypes.WithLabelValues(eventType).Add(float64(n))
	}
}
