// Package store holds the append-only assessment log.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"kycaml/internal/compliance/models"
)

// InMemoryStore implements ports.AssessmentStore with a mutex-guarded slice.
// Records are copied on the way in and out so callers cannot mutate history.
type InMemoryStore struct {
	mu           sync.RWMutex
	assessments  []models.RiskAssessment
	transactions []models.Transaction
	sequence     int64
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) RecordAssessment(_ context.Context, assessment models.RiskAssessment) (models.RiskAssessment, error) {
	if assessment.ID == "" {
		return models.RiskAssessment{}, fmt.Errorf("assessment id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence++
	recorded := cloneAssessment(assessment)
	recorded.Sequence = s.sequence
	s.assessments = append(s.assessments, recorded)
	return cloneAssessment(recorded), nil
}

func (s *InMemoryStore) RecordTransaction(_ context.Context, tx models.Transaction) error {
	if tx.ID == "" {
		return fmt.Errorf("transaction id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, tx)
	return nil
}

func (s *InMemoryStore) ListAssessments(_ context.Context, from, to time.Time) ([]models.RiskAssessment, error) {
	period := models.ReportPeriod{StartDate: from, EndDate: to}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.RiskAssessment, 0, len(s.assessments))
	for _, a := range s.assessments {
		if period.Contains(a.AssessedAt) {
			out = append(out, cloneAssessment(a))
		}
	}
	return out, nil
}

func (s *InMemoryStore) AllAssessments(_ context.Context) ([]models.RiskAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.RiskAssessment, 0, len(s.assessments))
	for _, a := range s.assessments {
		out = append(out, cloneAssessment(a))
	}
	return out, nil
}

func (s *InMemoryStore) AssessmentsWithFlag(_ context.Context, flagType string) ([]models.RiskAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.RiskAssessment
	for _, a := range s.assessments {
		if a.HasFlagType(flagType) {
			out = append(out, cloneAssessment(a))
		}
	}
	return out, nil
}

func (s *InMemoryStore) ListTransactions(_ context.Context) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.transactions), nil
}

func cloneAssessment(a models.RiskAssessment) models.RiskAssessment {
	a.Factors = slices.Clone(a.Factors)
	a.Flags = slices.Clone(a.Flags)
	return a
}
