package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"

	"github.com/ycl-dev/storefront/internal/app"
	"github.com/ycl-dev/storefront/internal/auth"
	"github.com/ycl-dev/storefront/internal/catalog"
	"github.com/ycl-dev/storefront/internal/config"
	"github.com/ycl-dev/storefront/internal/db"
	"github.com/ycl-dev/storefront/internal/health"
	"github.com/ycl-dev/storefront/internal/obs"
	"github.com/ycl-dev/storefront/internal/order"
	"github.com/ycl-dev/storefront/internal/user"
)

const metricsNamespace = "storefront"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("LOG_FORMAT", "json")
	logLevel := envOrDefault("LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	obs.MustRegisterDomainMetrics(metricsNamespace, nil)
	httpMetrics := obs.NewHTTPMetrics(metricsNamespace, obs.ParseBucketsCSV(cfg.MetricsBuckets), nil)

	tracingEnabled := cfg.TracingEnabled
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "storefront-api",
			Endpoint:      cfg.TracingEndpoint,
			SamplingRatio: cfg.TracingSampleRatio,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "storefront-api"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	queries := db.New(pool)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis metrics")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}

	authService, err := auth.NewService(auth.Config{
		Queries:        queries,
		Secret:         cfg.JWTSecret,
		AccessTokenTTL: cfg.AccessTokenTTL,
		Issuer:         cfg.JWTIssuer,
		Audience:       cfg.JWTAudience,
		ClockSkew:      cfg.ClockSkew,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise auth service")
	}

	userService, err := user.NewService(queries)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise user service")
	}

	catalogService, err := catalog.NewService(catalog.ServiceConfig{
		Queries: queries,
		Cache:   catalog.NewCache(redisClient, cfg.ProductCacheTTL),
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise catalog service")
	}

	orderService, err := order.NewService(order.ServiceConfig{
		Queries: queries,
		Pool:    pool,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise order service")
	}

	router := app.NewRouter(app.Deps{
		Config:         cfg,
		Logger:         logger,
		AuthHandler:    &auth.Handler{Service: authService},
		AuthMiddleware: auth.Middleware{Service: authService},
		UserHandler:    &user.Handler{Service: userService, Validate: validator.New()},
		CatalogHandler: &catalog.Handler{Service: catalogService},
		OrderHandler:   &order.Handler{Service: orderService},
		HealthHandler: health.Handler{
			Checker: health.Deps{Pool: pool, Redis: redisClient},
		},
		Redis:          redisClient,
		Metrics:        httpMetrics,
		TracingEnabled: tracingEnabled,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		health.SetReady(false)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
