// Package risk turns a transaction, its customer, and screening results into
// weighted risk factors and a bounded score.
//
// Evaluators are pure: the same Input always yields the same factors. The
// engine composes them at construction and runs every one on every check.
package risk

import (
	"fmt"
	"time"

	"kycaml/internal/compliance/country"
	"kycaml/internal/compliance/models"
)

// Input is everything an evaluator may look at.
type Input struct {
	Transaction     models.Transaction
	Customer        models.Customer
	SanctionMatches []models.SanctionMatch
	PEPMatches      []models.PEPMatch
	ScreeningHits   []models.ScreeningHit
	Config          models.EngineConfig
	Countries       *country.Table
	AssessedAt      time.Time
}

// Evaluator emits zero or more factors for one signal.
type Evaluator interface {
	Name() string
	Evaluate(in Input) ([]models.RiskFactor, error)
}

type funcEvaluator struct {
	name string
	fn   func(Input) ([]models.RiskFactor, error)
}

func (f funcEvaluator) Name() string { return f.name }

func (f funcEvaluator) Evaluate(in Input) ([]models.RiskFactor, error) { return f.fn(in) }

// Func adapts a function to the Evaluator interface.
func Func(name string, fn func(Input) ([]models.RiskFactor, error)) Evaluator {
	return funcEvaluator{name: name, fn: fn}
}

// Failure records an evaluator that returned an error or panicked.
type Failure struct {
	Evaluator string
	Err       error
}

// RunResult is the combined output of every evaluator.
type RunResult struct {
	Factors  []models.RiskFactor
	Failures []Failure
}

// Degraded reports whether any evaluator failed.
func (r RunResult) Degraded() bool { return len(r.Failures) > 0 }

// Observer receives the duration of each evaluator run.
type Observer func(evaluator string, d time.Duration)

// Run executes evaluators in order. A failing evaluator contributes a MEDIUM
// system factor instead of its own output; the remaining evaluators still run.
func Run(evaluators []Evaluator, in Input, observe Observer) RunResult {
	var res RunResult
	for _, ev := range evaluators {
		start := time.Now()
		factors, err := safeEvaluate(ev, in)
		if observe != nil {
			observe(ev.Name(), time.Since(start))
		}
		if err != nil {
			res.Failures = append(res.Failures, Failure{Evaluator: ev.Name(), Err: err})
			res.Factors = append(res.Factors, FailureFactor(ev.Name(), err, in.Config.Weights.EvaluatorFailure))
			continue
		}
		res.Factors = append(res.Factors, factors...)
	}
	return res
}

// FailureFactor describes a component that could not produce its signal.
func FailureFactor(component string, err error, weight int) models.RiskFactor {
	return models.RiskFactor{
		Type:        TypeEvaluatorFailure,
		Category:    models.CategorySystem,
		Severity:    models.SeverityMedium,
		Weight:      weight,
		Description: fmt.Sprintf("%s unavailable: %v", component, err),
	}
}

func safeEvaluate(ev Evaluator, in Input) (factors []models.RiskFactor, err error) {
	defer func() {
		if r := recover(); r != nil {
			factors, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return ev.Evaluate(in)
}
