// Package httptransport assembles the service's HTTP surface: CRM routes,
// health, and metrics. Domain handlers register themselves; this package only
// mounts them.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	crmhandler "clienthub/internal/crm/handler"
)

// Deps carries everything the router mounts.
type Deps struct {
	CRM          *crmhandler.Handler
	HealthChecks map[string]HealthChecker
}

// NewRouter wires all endpoints.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Method(http.MethodGet, "/healthz", &healthHandler{checks: deps.HealthChecks})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	deps.CRM.Register(r)

	return r
}
