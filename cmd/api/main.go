package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"donations/internal/adapter/repo"
	"donations/internal/domain"
	"donations/internal/http/handlers"
	httpapi "donations/internal/http/httpapi"
	"donations/internal/infra"
	"donations/internal/infra/geoip"
)

func main() {
	// Both files are optional. Load never overrides, so .env.local wins.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("api exited")
	}
	logger.Info().Msg("server stopped")
}

func run(cfg *infra.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	donations, closeStore, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		// Country detection degrades to headers only.
		logger.Warn().Err(err).Str("path", cfg.GeoIPDBPath).Msg("geoip disabled")
	}
	defer resolver.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := handlers.NewApp(logger, donations, handlers.NewDonationMetrics(reg))
	app.DefaultLocale = cfg.DefaultLocale
	app.MaxBodyBytes = cfg.MaxBodyBytes

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:             logger,
		Registry:           reg,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMin:    cfg.RateLimitPerMin,
		DefaultLocale:      cfg.DefaultLocale,
		CountryLookup:      resolver.Lookup(),
	})
	server := infra.NewHTTPServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", server.Addr()).Str("storage", cfg.StorageBackend).Msg("API listening")
		return server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// openRepository builds the configured storage backend. The returned func
// releases its connections.
func openRepository(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (domain.DonationRepository, func(), error) {
	switch cfg.StorageBackend {
	case infra.StoragePostgres:
		pool, err := infra.NewDBPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		pg := repo.NewDonationRepository(infra.NewSQLRunner(pool, logger))
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg, pool.Close, nil
	case infra.StorageRedis:
		client, err := infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewDonationRedisRepository(client, cfg.RedisKeyPrefix), func() { _ = client.Close() }, nil
	default:
		return repo.NewDonationMemoryRepository(), func() {}, nil
	}
}
