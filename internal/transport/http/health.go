package httptransport

import (
	"context"
	"net/http"
	"time"

	"clienthub/pkg/platform/httputil"
)

// HealthChecker reports whether one backing dependency is reachable.
type HealthChecker func(ctx context.Context) error

// healthHandler reports overall service health plus per-dependency detail.
// Optional dependencies that are not configured simply do not appear.
type healthHandler struct {
	checks map[string]HealthChecker
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			deps[name] = "unreachable"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	body := map[string]any{"status": "ok"}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if len(deps) > 0 {
		body["dependencies"] = deps
	}
	httputil.WriteJSON(w, status, body)
}
