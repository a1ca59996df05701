package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"verifid/internal/platform/metrics"
	"verifid/internal/platform/middleware"
	"verifid/pkg/platform/httputil"
)

// RouterConfig carries the router's collaborators. Readiness checks are
// keyed by component name; a nil map means the process is ready as soon as
// it serves.
type RouterConfig struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Capture   *CaptureHandler
	Readiness map[string]func(context.Context) error
}

// NewRouter wires the full HTTP surface: middleware chain, health and
// metrics endpoints, and the capture routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Timeout(60 * time.Second))
	if cfg.Metrics != nil {
		r.Use(middleware.Latency(cfg.Metrics))
	}

	r.Get("/healthz", handleHealthz)
	r.Get("/readyz", handleReadyz(cfg.Readiness))
	r.Handle("/metrics", promhttp.Handler())

	cfg.Capture.Register(r)
	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReadyz(checks map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		failures := map[string]string{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failures[name] = err.Error()
			}
		}
		if len(failures) > 0 {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status":   "degraded",
				"failures": failures,
			})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
