// Package main is the entrypoint for the feedgate gateway.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/svitlogram/feedgate/internal/aggregator"
	"github.com/svitlogram/feedgate/internal/api"
	"github.com/svitlogram/feedgate/internal/cache"
	"github.com/svitlogram/feedgate/internal/config"
	"github.com/svitlogram/feedgate/internal/handler"
	"github.com/svitlogram/feedgate/internal/metrics"
	"github.com/svitlogram/feedgate/internal/middleware"
	"github.com/svitlogram/feedgate/internal/server"
	"github.com/svitlogram/feedgate/internal/service"
	"github.com/svitlogram/feedgate/internal/session"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to Redis",
			slog.String("error", err.Error()),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	sessions := newSessionStore(cfg, cacheClient)

	apiClient := api.New(
		cfg.APIBaseURL,
		api.NewHTTPClient(cfg.UpstreamTimeout),
		sessions,
		logger,
	)

	recorder := metrics.NewInMemory()
	feed := aggregator.NewFeed(apiClient, cfg.OwnerLookupConcurrency, logger, recorder)
	search := aggregator.NewSearch(apiClient, cfg.OwnerLookupConcurrency, logger, recorder)
	accounts := service.NewAccount(apiClient, sessions, logger)

	r := setupRouter(cfg, logger, cacheClient, feed, search, accounts, recorder)

	srv := server.New(r, cfg.AppPort, cfg.ReadTimeout, cfg.WriteTimeout, cfg.ShutdownTimeout, logger)
	srv.OnShutdown("redis", func(context.Context) error { return cacheClient.Close() })

	logger.Info("starting gateway",
		"port", cfg.AppPort,
		"api_base_url", cfg.APIBaseURL,
		"session_backend", cfg.SessionBackend,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newSessionStore selects the session persistence backend.
func newSessionStore(cfg *config.Config, c *cache.Cache) session.Store {
	switch cfg.SessionBackend {
	case config.SessionBackendFile:
		return session.NewFile(cfg.SessionFile)
	case config.SessionBackendMemory:
		return session.NewMemory()
	default:
		return session.NewRedis(c, cfg.SessionKey)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	cfg *config.Config,
	logger *slog.Logger,
	cacheClient *cache.Cache,
	feed *aggregator.Feed,
	search *aggregator.Search,
	accounts *service.Account,
	snapshotter metrics.Snapshotter,
) *chi.Mux {
	h := handler.New()
	healthHandler := handler.NewHealthHandler(cacheClient)
	metricsHandler := handler.NewMetricsHandler(snapshotter)
	feedHandler := handler.NewFeedHandler(feed, logger)
	searchHandler := handler.NewSearchHandler(search, logger)
	profileHandler := handler.NewProfileHandler(accounts, logger)
	authHandler := handler.NewAuthHandler(accounts, logger)

	rateLimit := middleware.RateLimitIP(middleware.RateLimitConfig{
		Logger:   logger,
		Cache:    cacheClient,
		Enabled:  cfg.RateLimitEnabled,
		Requests: cfg.RateLimitRequests,
		Window:   cfg.RateLimitWindow,
	})

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)
	r.Get("/", h.Root)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/feed", feedHandler.Get)
		r.With(rateLimit).Get("/search", searchHandler.Get)
		r.Get("/profiles/{username}", profileHandler.Get)

		r.Route("/auth", func(r chi.Router) {
			r.Use(rateLimit)
			r.Post("/login", authHandler.Login)
			r.Post("/signup", authHandler.Signup)
			r.Post("/logout", authHandler.Logout)
			r.Post("/refresh", authHandler.Refresh)
		})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

// redactURL strips credentials from a URL before logging.
func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}
	if parsed.User != nil {
		parsed.User = url.User("redacted")
	}
	return parsed.String()
}
