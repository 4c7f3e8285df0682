package main

import (
	"net/http"
	"os"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/filmrec/viewer/handlers"
	"github.com/filmrec/viewer/lib/api"
	"github.com/filmrec/viewer/lib/config"
	"github.com/filmrec/viewer/lib/health"
)

type App struct {
	cfg    *config.Config
	client *api.Client
	router *chi.Mux
	logger *slog.Logger
}

func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	app := &App{
		cfg:    cfg,
		client: api.NewClient(cfg.APIBaseURL, logger),
		router: chi.NewRouter(),
		logger: logger,
	}

	app.setupRoutes()
	return app
}

func (a *App) setupRoutes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/", handlers.HandleHome(a.cfg, a.client, a.logger))
	a.router.Post("/rate", handlers.HandleRate(a.client, a.logger))
	a.router.Get("/healthz", health.Check(a.client))
	a.router.Handle("/metrics", promhttp.Handler())
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
	logger := slog.Default()

	cfg := config.Load()
	app := NewApp(cfg, logger)

	logger.Info("Starting server",
		slog.String("port", cfg.Port),
		slog.String("api_base_url", cfg.APIBaseURL),
		slog.Bool("user_store_configured", cfg.DatabaseURL != ""))
	if err := http.ListenAndServe(":"+cfg.Port, app.router); err != nil {
		logger.Error("Server failed", slog.Any("error", err))
		os.Exit(1)
	}
}
