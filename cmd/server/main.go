package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/assembler"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/cache"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/catalogjson"
	contracts "github.com/murkotick/listing-pricing-service/internal/app/listing/contracts"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain/services"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/projector"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/queries"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/queries/get_listing"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/queries/list_listings"
	"github.com/murkotick/listing-pricing-service/internal/config"
	"github.com/murkotick/listing-pricing-service/internal/obs"
	"github.com/murkotick/listing-pricing-service/internal/pkg/clock"
	grpclisting "github.com/murkotick/listing-pricing-service/internal/transport/grpc/listing"
	httplisting "github.com/murkotick/listing-pricing-service/internal/transport/http/listing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("load config")
	}
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM.
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		logger.Info().Msg("shutdown signal received")
		cancel()
	}()

	reader, closeReader, err := newCatalogReader(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("catalog reader")
	}
	defer closeReader()

	var listingCache contracts.ListingCache
	if cfg.CacheEnabled() {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		rdb := redis.NewClient(opts)
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
		listingCache = cache.NewRedisListingCache(rdb, cfg.ListingCacheTTL)
	}

	metrics := obs.NewListingMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)
	clk := clock.FromReference(cfg.ReferenceTime)
	calc := services.NewPricingCalculator()

	asm := assembler.New(assembler.Config{
		Aggregator:   services.NewVariantAggregator(services.NewPromotionEvaluator(), calc),
		Projector:    projector.NewCatalogProjector(calc, cfg.ImagePlaceholder),
		ImageBaseURL: cfg.ImageBaseURL,
		Cache:        listingCache,
		Metrics:      metrics,
		Logger:       &logger,
	})
	getQ := get_listing.NewHandler(reader, asm, clk, metrics)
	listQ := list_listings.NewHandler(reader, asm, clk, cfg.ListMaxConcurrency, &logger)

	// gRPC server
	grpcSrv := grpc.NewServer()
	grpclisting.RegisterListingServiceServer(grpcSrv, grpclisting.NewHandler(grpclisting.Queries{Get: getQ, List: listQ}))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.GRPCAddr).Msg("listen")
	}
	go func() {
		logger.Info().Str("addr", cfg.GRPCAddr).Msg("gRPC server listening")
		if err := grpcSrv.Serve(lis); err != nil {
			logger.Error().Err(err).Msg("grpc serve")
			cancel()
		}
	}()

	// HTTP server
	httpSrv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httplisting.NewHandler(httplisting.HandlerConfig{
			Get: getQ, List: listQ, Logger: &logger,
		}).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http serve")
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}

	stopped := make(chan struct{})
	go func() {
		grpcSrv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		grpcSrv.Stop()
	}

	logger.Info().Msg("server stopped")
}

func newCatalogReader(ctx context.Context, cfg *config.Config) (contracts.CatalogReader, func(), error) {
	if cfg.CatalogSource == config.SourceFile {
		r, err := catalogjson.NewFileReader(cfg.CatalogFile)
		return r, func() {}, err
	}
	client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		return nil, nil, err
	}
	return queries.NewSpannerCatalogReader(client), client.Close, nil
}
