package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tgshop/miniapp-backend/api/controllers"
	"github.com/tgshop/miniapp-backend/api/middleware"
	"github.com/tgshop/miniapp-backend/pkg/config"
	"github.com/tgshop/miniapp-backend/pkg/logger"
)

// Deps are the collaborators the HTTP surface needs. Limiter and the
// readiness pingers are optional.
type Deps struct {
	Relay     controllers.OrderRelayer
	Limiter   middleware.RateLimitStore
	Readiness map[string]controllers.Pinger
	Gatherer  prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
	)

	debug := !cfg.App.IsProd()

	sendOrderPolicy := middleware.NewRateLimitPolicy(
		"send_order",
		cfg.RateLimit.Window,
		cfg.RateLimit.IPLimit,
		cfg.RateLimit.PhoneLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.Health())
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Readiness))
	})

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.RateLimit(sendOrderPolicy, deps.Limiter, logg)).
			Post("/send-order", controllers.SendOrder(deps.Relay, logg, debug))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
