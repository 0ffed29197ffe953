package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ycl-dev/storefront/internal/auth"
	"github.com/ycl-dev/storefront/internal/catalog"
	"github.com/ycl-dev/storefront/internal/common"
	"github.com/ycl-dev/storefront/internal/config"
	"github.com/ycl-dev/storefront/internal/health"
	"github.com/ycl-dev/storefront/internal/obs"
	"github.com/ycl-dev/storefront/internal/order"
	"github.com/ycl-dev/storefront/internal/ratelimit"
	"github.com/ycl-dev/storefront/internal/security"
	"github.com/ycl-dev/storefront/internal/user"
)

// Role names carried in token claims.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config         *config.Config
	Logger         zerolog.Logger
	AuthHandler    *auth.Handler
	AuthMiddleware auth.Middleware
	UserHandler    *user.Handler
	CatalogHandler *catalog.Handler
	OrderHandler   *order.Handler
	HealthHandler  health.Handler
	Redis          *redis.Client
	Metrics        *obs.HTTPMetrics
	TracingEnabled bool
}

// NewRouter assembles the HTTP surface. Access rules live here, in one
// place, rather than scattered across handlers.
func NewRouter(deps Deps) chi.Router {
	cfg := deps.Config

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if deps.TracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if deps.Metrics != nil {
		r.Use(obs.HTTPObs{Metrics: deps.Metrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: deps.Logger}.Middleware)
	r.Use(security.Headers{Enable: true, EnableHSTS: true}.Middleware)
	r.Use(security.BodyLimit{Max: cfg.BodyMaxBytes}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health/live", deps.HealthHandler.Live)
	r.Get("/health/ready", deps.HealthHandler.Ready)

	tokenLimiter := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: deps.Redis, Prefix: "rl:token:"},
		Config: ratelimit.Config{
			Key:    common.ClientIP,
			Window: cfg.TokenRateWindow,
			Max:    cfg.TokenRateMax,
		},
		OnError: func(err error) {
			deps.Logger.Warn().Err(err).Msg("token rate limiter unavailable")
		},
	}

	requireAuth := deps.AuthMiddleware.RequireAuth
	requireAdmin := deps.AuthMiddleware.RequireRole(RoleAdmin)
	requireUser := deps.AuthMiddleware.RequireRole(RoleUser)

	r.Route("/api", func(api chi.Router) {
		api.With(tokenLimiter.Middleware).Post("/token", deps.AuthHandler.IssueToken)
		api.With(requireAuth).Get("/token/roles", deps.AuthHandler.Roles)

		api.Post("/user", deps.UserHandler.Register)

		api.Route("/product", func(p chi.Router) {
			p.Use(requireAuth)
			p.Get("/", deps.CatalogHandler.List)
			p.Get("/{productID}", deps.CatalogHandler.Get)

			p.Group(func(admin chi.Router) {
				admin.Use(requireAdmin)
				admin.Post("/", deps.CatalogHandler.Create)
				admin.Put("/{productID}", deps.CatalogHandler.Update)
				admin.Delete("/{productID}", deps.CatalogHandler.Delete)
			})
		})

		api.Route("/order", func(o chi.Router) {
			o.Use(requireAuth)
			o.Use(requireUser)
			o.Post("/", deps.OrderHandler.Place)
			o.Get("/orderdetails", deps.OrderHandler.Details)
		})
	})

	return r
}

func allowedOrigins(cfg *config.Config) []string {
	if cfg == nil || len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
