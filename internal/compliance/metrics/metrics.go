package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the compliance engine.
type Metrics struct {
	// Per-evaluator latency, including sanctions screening and the vendor call
	EvaluatorLatency *prometheus.HistogramVec

	// Evaluator failures that degraded a check
	EvaluatorFailures *prometheus.CounterVec

	// Check outcomes by recommendation and risk level
	CheckOutcome *prometheus.CounterVec

	// Overall check latency
	CheckLatency prometheus.Histogram

	SanctionsMatches prometheus.Counter

	// Entities across all loaded sanctions lists
	SanctionsEntities prometheus.Gauge

	DocumentVerifications *prometheus.CounterVec

	ReportsGenerated prometheus.Counter

	PublishFailures prometheus.Counter

	AuditEvents         *prometheus.CounterVec
	AuditPersistLatency prometheus.Histogram
}

// New creates a Metrics instance registered with reg.
// A nil reg registers with the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		EvaluatorLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kycaml_evaluator_duration_seconds",
			Help:    "Duration of risk evaluators by name",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"evaluator"}),

		EvaluatorFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kycaml_evaluator_failures_total",
			Help: "Total evaluator failures that degraded a compliance check",
		}, []string{"evaluator"}),

		CheckOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kycaml_check_outcomes_total",
			Help: "Total compliance check outcomes by recommendation and risk level",
		}, []string{"recommendation", "risk_level"}),

		CheckLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kycaml_check_duration_seconds",
			Help:    "Duration of a full compliance check including screening and persistence",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		SanctionsMatches: factory.NewCounter(prometheus.CounterOpts{
			Name: "kycaml_sanctions_matches_total",
			Help: "Total sanctions matches found across checks",
		}),

		SanctionsEntities: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kycaml_sanctions_entities",
			Help: "Number of sanctioned entities in the active registry snapshot",
		}),

		DocumentVerifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kycaml_document_verifications_total",
			Help: "Total document verifications by validity",
		}, []string{"valid"}),

		ReportsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "kycaml_reports_generated_total",
			Help: "Total compliance reports generated",
		}),

		PublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "kycaml_publish_failures_total",
			Help: "Total failures handing approved assessments downstream",
		}),

		AuditEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kycaml_audit_events_total",
			Help: "Total audit events by action and persistence outcome",
		}, []string{"action", "outcome"}),

		AuditPersistLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kycaml_audit_persist_duration_seconds",
			Help:    "Duration of synchronous audit event persistence",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveEvaluatorLatency records the duration of one evaluator or screening step.
func (m *Metrics) ObserveEvaluatorLatency(evaluator string, d time.Duration) {
	if m != nil {
		m.EvaluatorLatency.WithLabelValues(evaluator).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementEvaluatorFailure(evaluator string) {
	if m != nil {
		m.EvaluatorFailures.WithLabelValues(evaluator).Inc()
	}
}

// IncrementOutcome records a check outcome.
func (m *Metrics) IncrementOutcome(recommendation, riskLevel string) {
	if m != nil {
		m.CheckOutcome.WithLabelValues(recommendation, riskLevel).Inc()
	}
}

// ObserveCheckLatency records the total check duration.
func (m *Metrics) ObserveCheckLatency(d time.Duration) {
	if m != nil {
		m.CheckLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) AddSanctionsMatches(n int) {
	if m != nil && n > 0 {
		m.SanctionsMatches.Add(float64(n))
	}
}

func (m *Metrics) SetSanctionsEntities(n int) {
	if m != nil {
		m.SanctionsEntities.Set(float64(n))
	}
}

func (m *Metrics) IncrementDocumentVerification(valid bool) {
	if m != nil {
		label := "false"
		if valid {
			label = "true"
		}
		m.DocumentVerifications.WithLabelValues(label).Inc()
	}
}

func (m *Metrics) IncrementReportsGenerated() {
	if m != nil {
		m.ReportsGenerated.Inc()
	}
}

func (m *Metrics) IncrementPublishFailure() {
	if m != nil {
		m.PublishFailures.Inc()
	}
}

// IncrementAuditEvent counts one audit emission; outcome is "persisted" or "failed".
func (m *Metrics) IncrementAuditEvent(action, outcome string) {
	if m != nil {
		m.AuditEvents.WithLabelValues(action, outcome).Inc()
	}
}

func (m *Metrics) ObserveAuditPersist(d time.Duration) {
	if m != nil {
		m.AuditPersistLatency.Observe(d.Seconds())
	}
}
