package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"kycaml/pkg/platform/httputil"
)

// New builds an HTTP server with sane defaults for this project.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Check probes one backend dependency.
type Check func(ctx context.Context) error

// Readiness reports ready only when every check passes.
type Readiness struct {
	Checks  map[string]Check
	Timeout time.Duration
	// OnResult observes each overall outcome; may be nil.
	OnResult func(ready bool)
}

// run executes every check in parallel and returns the failures by name.
func (rd Readiness) run(ctx context.Context) map[string]string {
	timeout := rd.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	errs := make([]error, 0, len(rd.Checks))
	names := make([]string, 0, len(rd.Checks))
	var g errgroup.Group
	for name, check := range rd.Checks {
		i := len(names)
		names = append(names, name)
		errs = append(errs, nil)
		g.Go(func() error {
			errs[i] = check(ctx)
			return nil
		})
	}
	_ = g.Wait()

	failed := map[string]string{}
	for i, err := range errs {
		if err != nil {
			failed[names[i]] = err.Error()
		}
	}
	return failed
}

// NewOpsRouter serves liveness, readiness and metrics.
func NewOpsRouter(readiness Readiness, metrics http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		failed := readiness.run(req.Context())
		if readiness.OnResult != nil {
			readiness.OnResult(len(failed) == 0)
		}
		if len(failed) > 0 {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "failed": failed})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}
	return r
}
