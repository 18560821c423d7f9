// Package metrics owns the process Prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry wraps a dedicated Prometheus registry with process-level metrics.
type Registry struct {
	*prometheus.Registry

	Ready     prometheus.Gauge
	BuildInfo *prometheus.GaugeVec
}

// NewRegistry creates a registry with Go runtime and process collectors.
func NewRegistry(version string) *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	r := &Registry{
		Registry: reg,
		Ready: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kycaml_ready",
			Help: "1 when every backend dependency passed its last readiness check",
		}),
		BuildInfo: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kycaml_build_info",
			Help: "Build information for the running binary",
		}, []string{"version"}),
	}
	r.BuildInfo.WithLabelValues(version).Set(1)
	return r
}

// SetReady records the outcome of a readiness check.
func (r *Registry) SetReady(ready bool) {
	if r == nil {
		return
	}
	if ready {
		r.Ready.Set(1)
		return
	}
	r.Ready.Set(0)
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{Registry: r.Registry})
}
