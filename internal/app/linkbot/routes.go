package linkbot

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/linkbot/internal/http/handlers/health"
	"github.com/magabrotheeeer/linkbot/internal/http/mware"
)

// RegisterRoutes регистрирует маршруты служебного сервера.
func RegisterRoutes(r chi.Router, logger *slog.Logger, gatherer prometheus.Gatherer, probe health.Probe) {
	r.Use(
		middleware.RequestID,
		mware.Logger(logger),
		middleware.Recoverer,
	)

	r.Get("/health", health.New(logger, probe).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
