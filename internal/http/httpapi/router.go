package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"donations/internal/http/handlers"
	"donations/internal/middleware"
)

// Options tunes the middleware stack. A nil Registry disables metrics and /metrics.
type Options struct {
	Logger             zerolog.Logger
	Registry           *prometheus.Registry
	CORSAllowedOrigins []string
	RateLimitPerMin    int
	DefaultLocale      string
	CountryLookup      middleware.CountryLookup
}

func NewRouter(app *handlers.App, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer, middleware.Logger(opts.Logger))
	if opts.Registry != nil {
		r.Use(middleware.NewHTTPMetrics(opts.Registry).Middleware)
	}
	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSAllowedOrigins,
			AllowedMethods:   []string{stdhttp.MethodGet, stdhttp.MethodPost, stdhttp.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type", "X-Locale", middleware.RequestIDHeader},
			ExposedHeaders:   []string{middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	r.Use(middleware.I18N(opts.DefaultLocale, opts.CountryLookup))

	r.Get("/", app.Root)

	// Health
	r.Get("/health", app.Health)
	r.Get("/api/health", app.HealthLegacy)
	r.Get("/api/health/", app.HealthLegacy)

	r.Route("/donations", func(r chi.Router) {
		r.Get("/", app.DonationsList)
		r.Post("/", app.DonationsCreate)
	})

	r.Get("/openapi.json", app.OpenAPIJSON)
	r.Get("/docs", app.OpenAPIDocs)

	if opts.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	return r
}
