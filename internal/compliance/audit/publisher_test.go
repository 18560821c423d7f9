package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycaml/internal/compliance/metrics"
	"kycaml/internal/compliance/models"
)

type failingStore struct{}

func (failingStore) Append(context.Context, models.AuditEvent) error {
	return errors.New("connection reset")
}

func (failingStore) ListRecent(context.Context, int) ([]models.AuditEvent, error) {
	return nil, errors.New("connection reset")
}

func TestPublisher_Emit(t *testing.T) {
	store := NewInMemoryStore()
	pub, err := New(store)
	require.NoError(t, err)

	err = pub.Emit(context.Background(), models.AuditEvent{
		Action:   models.AuditCheckCompleted,
		Subject:  "tx-1",
		Operator: "analyst-7",
		Decision: string(models.RecommendationApproved),
	})
	require.NoError(t, err)

	events, err := pub.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.AuditCheckCompleted, events[0].Action)
	assert.NotEmpty(t, events[0].ID, "id is assigned")
	assert.False(t, events[0].Timestamp.IsZero(), "timestamp is assigned")
}

func TestPublisher_KeepsProvidedTimestamp(t *testing.T) {
	pub, err := New(NewInMemoryStore())
	require.NoError(t, err)
	at := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

	require.NoError(t, pub.Emit(context.Background(), models.AuditEvent{
		ID:        "evt-1",
		Action:    models.AuditSanctionsListAdded,
		Subject:   "ofac",
		Timestamp: at,
	}))

	events, err := pub.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, at, events[0].Timestamp)
}

func TestPublisher_RejectsIncompleteEvents(t *testing.T) {
	pub, err := New(NewInMemoryStore())
	require.NoError(t, err)

	assert.Error(t, pub.Emit(context.Background(), models.AuditEvent{Subject: "tx-1"}), "action is required")
	assert.Error(t, pub.Emit(context.Background(), models.AuditEvent{Action: models.AuditCheckCompleted}), "subject is required")
}

func TestPublisher_FailClosed(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	pub, err := New(failingStore{}, WithMetrics(m))
	require.NoError(t, err)

	err = pub.Emit(context.Background(), models.AuditEvent{
		Action:  models.AuditCheckCompleted,
		Subject: "tx-1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compliance audit persistence failed")
	assert.Equal(t, float64(1), promtest.ToFloat64(m.AuditEvents.WithLabelValues(string(models.AuditCheckCompleted), "failed")))

	_, err = pub.Recent(context.Background(), 5)
	assert.Error(t, err)
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestInMemoryStore_ListRecent(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	for _, subject := range []string{"tx-1", "tx-2", "tx-3"} {
		require.NoError(t, store.Append(ctx, models.AuditEvent{Action: models.AuditCheckCompleted, Subject: subject}))
	}

	events, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "tx-3", events[0].Subject)
	assert.Equal(t, "tx-2", events[1].Subject)

	events, err = store.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestInMemoryStore_ConcurrentAppend(t *testing.T) {
	store := NewInMemoryStore()
	pub, err := New(store)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			_ = pub.Emit(context.Background(), models.AuditEvent{Action: models.AuditCheckCompleted, Subject: "tx"})
		})
	}
	wg.Wait()

	events, err := store.ListRecent(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, events, 50)
}
