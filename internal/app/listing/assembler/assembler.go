package assembler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	contracts "github.com/murkotick/listing-pricing-service/internal/app/listing/contracts"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain/services"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/dto"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/projector"
	"github.com/murkotick/listing-pricing-service/internal/obs"
)

// Assembler turns a product snapshot into its listing projection:
// aggregate variant prices, report anomalies, project display fields.
// It is safe for concurrent use.
type Assembler struct {
	evaluator    *services.PromotionEvaluator
	aggregator   *services.VariantAggregator
	projector    *projector.CatalogProjector
	imageBaseURL string
	cache        contracts.ListingCache
	metrics      *obs.ListingMetrics
	logger       zerolog.Logger
}

// Config groups Assembler dependencies. Cache and Metrics are optional.
type Config struct {
	Aggregator   *services.VariantAggregator
	Projector    *projector.CatalogProjector
	ImageBaseURL string
	Cache        contracts.ListingCache
	Metrics      *obs.ListingMetrics
	Logger       *zerolog.Logger
}

// New constructs an Assembler, filling unset engine components with defaults.
func New(cfg Config) *Assembler {
	calc := services.NewPricingCalculator()
	evaluator := services.NewPromotionEvaluator()
	if cfg.Aggregator == nil {
		cfg.Aggregator = services.NewVariantAggregator(evaluator, calc)
	}
	if cfg.Projector == nil {
		cfg.Projector = projector.NewCatalogProjector(calc, "")
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Assembler{
		evaluator:    evaluator,
		aggregator:   cfg.Aggregator,
		projector:    cfg.Projector,
		imageBaseURL: cfg.ImageBaseURL,
		cache:        cfg.Cache,
		metrics:      cfg.Metrics,
		logger:       logger,
	}
}

// Assemble prices product at now and returns its listing.
// Errors wrap domain.ErrEmptyVariantSet or domain.ErrInvalidBasePrice.
func (a *Assembler) Assemble(ctx context.Context, product *domain.Product, now time.Time) (*dto.ProductListingDTO, error) {
	if product == nil {
		return nil, fmt.Errorf("assemble listing: %w", domain.ErrProductNotFound)
	}

	var window domain.PricingWindow
	if a.cache != nil {
		window = a.evaluator.StableWindow(product.Variants(), now)
		cached, ok, err := a.cache.Get(ctx, product.ID(), window)
		if err != nil {
			a.logger.Warn().Err(err).Str("product_id", product.ID()).Msg("listing cache read failed")
		} else if ok {
			a.metrics.ObserveProjection(obs.ResultCached, 0)
			return cached, nil
		}
	}

	start := time.Now()
	summary, err := a.aggregator.Aggregate(product.Variants(), now)
	if err != nil {
		a.metrics.ObserveProjection(resultFor(err), time.Since(start))
		return nil, fmt.Errorf("product %s: %w", product.ID(), err)
	}

	for _, an := range summary.Anomalies {
		a.logger.Warn().
			Err(an.Err).
			Str("product_id", product.ID()).
			Str("variant_id", an.VariantID).
			Str("promotion_id", an.PromotionID).
			Msg("promotion value clamped")
		a.metrics.ObserveAnomaly(anomalyKind(summary, an))
	}

	listing := a.projector.Project(product, summary, a.imageBaseURL)
	a.metrics.ObserveProjection(obs.ResultOK, time.Since(start))

	if a.cache != nil {
		if err := a.cache.Set(ctx, product.ID(), window, listing); err != nil {
			a.logger.Warn().Err(err).Str("product_id", product.ID()).Msg("listing cache write failed")
		}
	}
	return listing, nil
}

func resultFor(err error) string {
	if errors.Is(err, domain.ErrEmptyVariantSet) {
		return obs.ResultNoVariants
	}
	return obs.ResultInvalid
}

func anomalyKind(summary *domain.PriceSummary, an domain.Anomaly) string {
	for _, v := range summary.Variants {
		if v.VariantID == an.VariantID && v.Promotion != nil {
			return string(v.Promotion.Kind())
		}
	}
	return "unknown"
}
