package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ranjitbudhathoki/cricbelbari/handlers"
	"github.com/ranjitbudhathoki/cricbelbari/middleware"
	"github.com/ranjitbudhathoki/cricbelbari/monitor"
)

type Options struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	Metrics        *monitor.Metrics
}

func SetupRoutes(
	router chi.Router,
	screenHandler *handlers.ScreenHandler,
	formHandler *handlers.FormHandler,
	opts Options,
) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
		router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	router.Get("/health", handlers.Health)

	router.Route("/screens", func(r chi.Router) {
		r.Post("/roster", screenHandler.OpenRoster)
		r.Post("/players/{id}", screenHandler.OpenPlayer)

		r.Route("/{screenID}", func(r chi.Router) {
			r.Get("/", screenHandler.GetScreen)
			r.Delete("/", screenHandler.CloseScreen)
			r.Post("/focus", screenHandler.Focus)
			r.Post("/search", screenHandler.Search)
		})
	})

	router.Route("/forms/players", func(r chi.Router) {
		r.Post("/", formHandler.AddPlayer)
		r.Post("/{id}/stats", formHandler.AddStat)
	})
}
