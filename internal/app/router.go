package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/heartmarshall/writeassist-backend/internal/auth"
	"github.com/heartmarshall/writeassist-backend/internal/config"
	"github.com/heartmarshall/writeassist-backend/internal/transport/middleware"
	"github.com/heartmarshall/writeassist-backend/internal/transport/rest"
)

type routerDeps struct {
	cfg      *config.Config
	log      *slog.Logger
	tokens   *auth.JWTManager
	health   *rest.HealthHandler
	assist   *rest.AssistHandler
	settings *rest.SettingsHandler
	limiter  *middleware.RateLimiter // nil when rate limiting is disabled
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.Chain(
		middleware.Recovery(d.log),
		middleware.RequestID(),
		middleware.Logger(d.log),
		middleware.CORS(d.cfg.CORS),
	))

	r.Get("/live", d.health.Live)
	r.Get("/ready", d.health.Ready)
	r.Get("/health", d.health.Health)

	var limit middleware.Middleware
	if d.limiter != nil {
		limit = d.limiter.Limit(d.cfg.RateLimit.RequestsPerMinute)
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(chimw.RequestSize(d.cfg.Server.MaxBodyBytes))
		api.Use(middleware.Auth(d.tokens))

		api.Get("/session", d.settings.Session)
		api.Get("/settings", d.settings.Get)
		api.Put("/settings", d.settings.Save)
		api.Get("/languages", d.settings.Languages)

		api.Group(func(ar chi.Router) {
			ar.Use(middleware.Chain(limit))
			ar.Post("/assist/{operation}", d.assist.Operation)
			ar.Post("/ajax", d.assist.Ajax)
		})
	})

	return r
}
