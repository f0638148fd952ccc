package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/user/filmdata-service/internal/delivery/http/handler"
	"github.com/user/filmdata-service/internal/delivery/http/middleware"
	"github.com/user/filmdata-service/pkg/metrics"
)

func New(h *handler.Handler, logger *zap.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/api/health", h.HandleHealthCheck)

	r.Route("/api/jobs", func(r chi.Router) {
		r.Post("/", h.HandleSubmitJob)
		r.Post("/retry", h.HandleRetryJobs)
		r.Get("/{id}", h.HandleGetJob)
	})

	return r
}
