package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/estrie-eats/checkout-backend/api/controllers"
	"github.com/estrie-eats/checkout-backend/api/middleware"
	"github.com/estrie-eats/checkout-backend/internal/checkout"
	"github.com/estrie-eats/checkout-backend/internal/profiles"
	"github.com/estrie-eats/checkout-backend/internal/submission"
	"github.com/estrie-eats/checkout-backend/pkg/config"
	"github.com/estrie-eats/checkout-backend/pkg/logger"
	"github.com/estrie-eats/checkout-backend/pkg/metrics"
	pkgredis "github.com/estrie-eats/checkout-backend/pkg/redis"
)

type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DBPinger     controllers.Pinger
	RedisPinger  controllers.Pinger
	Idempotency  pkgredis.IdempotencyStore
	SessionStore checkout.SessionStore
	Profiles     profiles.Store
	Coordinator  *submission.Coordinator
	Metrics      *metrics.CheckoutMetrics
	Registry     *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(
			middleware.OptionalAuth(cfg.JWT, logg),
			middleware.ShopperID(logg),
			middleware.Idempotency(deps.Idempotency, cfg.Checkout.IdempotencyTTL, logg),
		)

		r.Get("/profile", controllers.Profile(deps.Profiles, logg))
		r.Post("/quote", controllers.Quote(logg))
		r.Post("/validate", controllers.ValidateForm(logg))
		r.Post("/continue", controllers.ContinueCheckout(logg))
		r.Post("/back", controllers.BackCheckout(logg))
		r.Post("/submit", controllers.Submit(deps.Coordinator, logg))
		r.Get("/session", controllers.Session(deps.SessionStore, deps.Metrics, logg))
		r.Delete("/session", controllers.ClearSession(deps.SessionStore, logg))
	})

	return r
}
