// Package publisher hands approved assessments to the downstream signing layer over Kafka.
//
// Publish is synchronous: the caller blocks until the broker acknowledges the record
// or the context expires. Records are keyed by transaction id so every assessment for
// a transaction lands on the same partition in order.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"kycaml/internal/compliance/metrics"
	"kycaml/internal/compliance/models"
)

// DefaultTopic receives approved assessments.
const DefaultTopic = "compliance.assessments.approved"

// Header keys set on every record.
const (
	HeaderRecommendation = "recommendation"
	HeaderRiskLevel      = "risk_level"
	HeaderInputDigest    = "input_digest"
)

// Producer is the subset of *kgo.Client the publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Kafka publishes assessments as JSON records.
type Kafka struct {
	producer Producer
	topic    string
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures the publisher.
type Option func(*Kafka)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(k *Kafka) {
		k.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(k *Kafka) {
		k.metrics = m
	}
}

// WithTopic overrides DefaultTopic.
func WithTopic(topic string) Option {
	return func(k *Kafka) {
		if topic != "" {
			k.topic = topic
		}
	}
}

func NewKafka(producer Producer, opts ...Option) (*Kafka, error) {
	if producer == nil {
		return nil, fmt.Errorf("kafka producer is required")
	}
	k := &Kafka{producer: producer, topic: DefaultTopic}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// Topic returns the destination topic.
func (k *Kafka) Topic() string {
	return k.topic
}

// Publish writes one assessment and waits for the broker acknowledgement.
func (k *Kafka) Publish(ctx context.Context, assessment models.RiskAssessment) error {
	start := time.Now()
	payload, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("encode assessment %s: %w", assessment.ID, err)
	}
	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(assessment.TransactionID),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: HeaderRecommendation, Value: []byte(assessment.Recommendation)},
			{Key: HeaderRiskLevel, Value: []byte(assessment.RiskLevel)},
			{Key: HeaderInputDigest, Value: []byte(assessment.InputDigest)},
		},
		Timestamp: assessment.AssessedAt,
	}

	if err := k.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		k.metrics.IncrementPublishFailure()
		if k.logger != nil {
			k.logger.ErrorContext(ctx, "failed to publish assessment",
				"assessment_id", assessment.ID,
				"transaction_id", assessment.TransactionID,
				"topic", k.topic,
				"error", err,
			)
		}
		return fmt.Errorf("publish assessment %s: %w", assessment.ID, err)
	}

	k.metrics.ObserveEvaluatorLatency("publish", time.Since(start))
	return nil
}

// Decode parses a record produced by Publish.
func Decode(record *kgo.Record) (models.RiskAssessment, error) {
	var a models.RiskAssessment
	if err := json.Unmarshal(record.Value, &a); err != nil {
		return models.RiskAssessment{}, fmt.Errorf("decode assessment record: %w", err)
	}
	return a, nil
}

// EnsureTopic creates the topic if it does not exist.
func EnsureTopic(ctx context.Context, client *kgo.Client, topic string, partitions int32, replicationFactor int16) error {
	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopics(ctx, partitions, replicationFactor, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}
