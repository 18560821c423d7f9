package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveEvaluatorLatency("sanctions_hit", time.Millisecond)
		m.IncrementEvaluatorFailure("vendor")
		m.IncrementOutcome("APPROVED", "LOW")
		m.ObserveCheckLatency(time.Millisecond)
		m.AddSanctionsMatches(2)
		m.SetSanctionsEntities(5)
		m.IncrementDocumentVerification(true)
		m.IncrementReportsGenerated()
		m.IncrementPublishFailure()
	})
}

func TestCountersRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementOutcome("REJECTED", "CRITICAL")
	m.IncrementOutcome("REJECTED", "CRITICAL")
	m.AddSanctionsMatches(3)
	m.AddSanctionsMatches(0)
	m.SetSanctionsEntities(7)
	m.IncrementDocumentVerification(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CheckOutcome.WithLabelValues("REJECTED", "CRITICAL")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SanctionsMatches))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.SanctionsEntities))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocumentVerifications.WithLabelValues("false")))
}
