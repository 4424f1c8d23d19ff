package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/afercon/delivery-notifier/internal/http/handlers"
	appmw "github.com/afercon/delivery-notifier/internal/http/middleware"
	"github.com/afercon/delivery-notifier/internal/http/middleware/ratelimit"
	"github.com/afercon/delivery-notifier/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(h *handlers.Handlers, inbox *handlers.InboxHandler, rl *ratelimit.Middleware, logger logx.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))
	r.Use(appmw.Observability(logger))
	if rl != nil {
		r.Use(rl.Handler())
	}

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/users/{userID}/notifications", inbox.List)
	r.Post("/notifications/{id}/read", inbox.MarkRead)

	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}
