// Package main is the entry point for the fare quotation service.
//
//	@title						Fare Quotation API
//	@version					1.0.0
//	@description				Searches wholesaler fares, prices them with agency rules, builds client quotes and records bookings.
//
//	@contact.name				Lucky Tour Ventas
//	@contact.email				ventas@luckytourviajes.com
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/luckytour/fare-quotation-service/docs"

	"github.com/luckytour/fare-quotation-service/internal/adapter/cache/redis"
	farehttp "github.com/luckytour/fare-quotation-service/internal/adapter/http"
	"github.com/luckytour/fare-quotation-service/internal/adapter/http/middleware"
	"github.com/luckytour/fare-quotation-service/internal/adapter/pdf"
	"github.com/luckytour/fare-quotation-service/internal/adapter/provider/glas"
	"github.com/luckytour/fare-quotation-service/internal/adapter/storage/memory"
	"github.com/luckytour/fare-quotation-service/internal/adapter/storage/postgres"
	"github.com/luckytour/fare-quotation-service/internal/config"
	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/logger"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/retry"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/timeutil"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/tracing"
	"github.com/luckytour/fare-quotation-service/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
	startupTimeout  = 15 * time.Second
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)
	appLog := logger.New(cfg.LoggerConfig())

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Bool("postgres", cfg.Postgres.DSN != "").
		Bool("redis", cfg.Redis.Addr != "").
		Msg("Configuration loaded")

	shutdownTracing, err := tracing.Init(cfg.Tracing)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	deps, closers, err := buildDependencies(startCtx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize dependencies")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.IsDevelopment()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, appLog)
	farehttp.RegisterRoutes(e, farehttp.NewHandler(deps))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, func(ctx context.Context) {
		for _, c := range closers {
			c()
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Error().Err(err).Msg("Error flushing traces")
		}
	})
}

// setupLogger configures the global zerolog logger based on config.
func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.Logging.Format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	switch cfg.Logging.Level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// buildDependencies wires storage, cache, the GDS client and the use cases.
// The returned closers release connections on shutdown.
func buildDependencies(ctx context.Context, cfg *config.Config) (farehttp.Deps, []func(), error) {
	var closers []func()
	checks := map[string]farehttp.HealthCheck{}

	var bookings domain.BookingRepository
	if cfg.Postgres.DSN != "" {
		repo, err := postgres.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			return farehttp.Deps{}, nil, err
		}
		if cfg.Postgres.Migrate {
			if err := repo.Migrate(ctx); err != nil {
				repo.Close()
				return farehttp.Deps{}, nil, err
			}
		}
		bookings = repo
		checks["postgres"] = repo.Ping
		closers = append(closers, repo.Close)
	} else {
		log.Warn().Msg("POSTGRES_DSN not set, bookings are kept in memory")
		bookings = memory.NewBookingStore()
	}

	var searchCache domain.SearchCache
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache := redis.NewSearchCache(client, cfg.Cache.KeyPrefix)
		if err := cache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable at startup, searches will skip the cache until it recovers")
		}
		searchCache = cache
		checks["redis"] = cache.Ping
		closers = append(closers, func() { _ = client.Close() })
	}

	upstreamHTTP := &http.Client{Timeout: cfg.Timeouts.UpstreamCall}
	tokens := glas.NewCachedTokenProvider(cfg.GDS.BaseURL, glas.Credentials{
		Username:     cfg.GDS.Username,
		Password:     cfg.GDS.Password,
		Channel:      cfg.GDS.Channel,
		WholesalerID: cfg.GDS.WholesalerID,
	}, cfg.GDS.TokenTTL, timeutil.NewRealClock(), upstreamHTTP)

	provider := glas.NewClient(glas.Config{
		BaseURL:              cfg.GDS.BaseURL,
		CompanyAssociationID: cfg.GDS.CompanyAssociationID,
		Origin:               cfg.GDS.Origin,
		MaxResults:           cfg.GDS.MaxResults,
		Timeout:              cfg.Timeouts.UpstreamCall,
		Retry:                retry.UpstreamConfig.WithMaxAttempts(cfg.GDS.RetryAttempts),
	}, tokens, upstreamHTTP)

	ucConfig := &usecase.Config{
		SearchTimeout: cfg.Timeouts.Search,
		QuoteTimeout:  cfg.Timeouts.Quote,
		CacheTTL:      cfg.Cache.SearchTTL,
	}
	clock := timeutil.NewRealClock()
	sellers := cfg.SellerDirectory()

	return farehttp.Deps{
		Search:       usecase.NewQuotationSearchUseCase(provider, searchCache, ucConfig),
		Quotes:       usecase.NewQuoteUseCase(provider, ucConfig),
		Bookings:     usecase.NewBookingUseCase(provider, bookings, clock, ucConfig),
		Sellers:      sellers,
		Renderer:     pdf.NewRenderer(sellers.Lookup("").Name),
		Clock:        clock,
		HealthChecks: checks,
	}, closers, nil
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, release func(ctx context.Context)) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}
	release(ctx)

	log.Info().Msg("Server stopped")
}
