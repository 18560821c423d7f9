package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/risk"
	"kycaml/internal/compliance/sanctions"
)

// Screening component names, used in failure factors and metrics.
const (
	componentCustomerScreening = "customer_sanctions_screening"
	componentSenderScreening   = "sender_sanctions_screening"
	componentReceiverScreening = "receiver_sanctions_screening"
	componentPEPScreening      = "pep_screening"
	componentVendorScreening   = "adverse_media_vendor"
)

var errCircuitOpen = errors.New("circuit open")

type screeningFailure struct {
	component string
	err       error
}

// screeningResult is the combined output of the parallel screening phase.
type screeningResult struct {
	mu              sync.Mutex
	sanctionMatches []models.SanctionMatch
	pepMatches      []models.PEPMatch
	hits            []models.ScreeningHit
	failures        []screeningFailure
}

func (r *screeningResult) addMatches(m []models.SanctionMatch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sanctionMatches = append(r.sanctionMatches, m...)
}

func (r *screeningResult) fail(component string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, screeningFailure{component: component, err: err})
}

// failureFactors converts failures to system factors in component order.
func (r *screeningResult) failureFactors(cfg models.EngineConfig) []models.RiskFactor {
	order := []string{
		componentCustomerScreening,
		componentSenderScreening,
		componentReceiverScreening,
		componentPEPScreening,
		componentVendorScreening,
	}
	var out []models.RiskFactor
	for _, component := range order {
		for _, f := range r.failures {
			if f.component == component {
				out = append(out, risk.FailureFactor(f.component, f.err, cfg.Weights.EvaluatorFailure))
			}
		}
	}
	return out
}

// screen runs sanctions, PEP, and vendor screening in parallel against one
// pinned registry snapshot. Every goroutine records its own failure and
// returns nil, so one failing source never cancels the others.
func (e *Engine) screen(ctx context.Context, tx models.Transaction, customer models.Customer, cfg models.EngineConfig, snap *sanctions.Snapshot) *screeningResult {
	res := &screeningResult{}
	g, gctx := errgroup.WithContext(ctx)

	if cfg.SanctionsCheckEnabled {
		checker := sanctions.NewChecker(snap,
			sanctions.WithMatchFloor(cfg.MatchScoreFloor),
			sanctions.WithFuzzyThreshold(cfg.FuzzyMatchThreshold),
		)
		e.goScreen(g, componentCustomerScreening, res, func() error {
			m, err := checker.CheckCustomer(customer)
			res.addMatches(m)
			return err
		})
		e.goScreen(g, componentSenderScreening, res, func() error {
			m, err := checker.CheckTransactionParty(tx.Sender)
			res.addMatches(m)
			return err
		})
		e.goScreen(g, componentReceiverScreening, res, func() error {
			m, err := checker.CheckTransactionParty(tx.Receiver)
			res.addMatches(m)
			return err
		})
	}

	if cfg.PEPCheckEnabled {
		e.goScreen(g, componentPEPScreening, res, func() error {
			matches := e.peps.Screen(customer, cfg.NameMatchThreshold)
			res.mu.Lock()
			res.pepMatches = matches
			res.mu.Unlock()
			return nil
		})
	}

	if cfg.AdverseMediaCheckEnabled && e.vendor != nil {
		e.goScreen(g, componentVendorScreening, res, func() error {
			hits, err := e.callVendor(gctx, customer, cfg.VendorTimeout)
			if err != nil {
				return err
			}
			res.mu.Lock()
			res.hits = hits
			res.mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	sanctions.SortMatches(res.sanctionMatches)
	res.sanctionMatches = dedupeMatches(res.sanctionMatches)
	return res
}

// dedupeMatches keeps the best-scoring match per list entity. Input must be sorted.
func dedupeMatches(matches []models.SanctionMatch) []models.SanctionMatch {
	seen := make(map[string]struct{}, len(matches))
	out := matches[:0]
	for _, m := range matches {
		key := m.ListID + "\x00" + m.Entity.Name
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}

func (e *Engine) goScreen(g *errgroup.Group, component string, res *screeningResult, fn func() error) {
	g.Go(func() error {
		start := time.Now()
		err := safeCall(fn)
		e.metrics.ObserveEvaluatorLatency(component, time.Since(start))
		if err != nil {
			e.metrics.IncrementEvaluatorFailure(component)
			res.fail(component, err)
		}
		return nil
	})
}

// callVendor queries the screening vendor under a timeout and reports the
// outcome to the breaker. While the circuit is open the response is discarded.
func (e *Engine) callVendor(ctx context.Context, customer models.Customer, timeout time.Duration) ([]models.ScreeningHit, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	hits, err := e.vendor.Screen(ctx, customer)
	if err != nil {
		_, change := e.breaker.RecordFailure()
		if change.Opened && e.logger != nil {
			e.logger.WarnContext(ctx, "screening vendor circuit opened", "breaker", e.breaker.Name(), "error", err)
		}
		return nil, err
	}
	usePrimary, change := e.breaker.RecordSuccess()
	if change.Closed && e.logger != nil {
		e.logger.InfoContext(ctx, "screening vendor circuit closed", "breaker", e.breaker.Name())
	}
	if !usePrimary {
		return nil, errCircuitOpen
	}
	return hits, nil
}

func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
