package services

import (
	"fmt"
	"time"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
)

// VariantAggregator prices every variant of a product and reduces the
// results to a product-level PriceSummary.
type VariantAggregator struct {
	evaluator  *PromotionEvaluator
	calculator *PricingCalculator
}

// NewVariantAggregator wires the aggregator to its collaborators.
// Nil arguments fall back to fresh instances.
func NewVariantAggregator(evaluator *PromotionEvaluator, calculator *PricingCalculator) *VariantAggregator {
	if evaluator == nil {
		evaluator = NewPromotionEvaluator()
	}
	if calculator == nil {
		calculator = NewPricingCalculator()
	}
	return &VariantAggregator{evaluator: evaluator, calculator: calculator}
}

// PriceVariant selects the eligible promotion for v at now and applies it.
// The returned anomaly is non-nil when the selected promotion carried an
// out-of-range value that had to be clamped.
func (va *VariantAggregator) PriceVariant(v *domain.Variant, now time.Time) (domain.EffectiveVariantPrice, *domain.Anomaly, error) {
	if v.BasePrice() == nil || v.BasePrice().IsNegative() {
		return domain.EffectiveVariantPrice{}, nil, fmt.Errorf("variant %s: %w", v.ID(), domain.ErrInvalidBasePrice)
	}

	promo := va.evaluator.SelectPromotion(v.Promotions(), now)

	var anomaly *domain.Anomaly
	if promo != nil {
		if err := promo.Validate(); err != nil {
			anomaly = &domain.Anomaly{VariantID: v.ID(), PromotionID: promo.ID(), Err: err}
		}
	}

	return domain.EffectiveVariantPrice{
		VariantID:      v.ID(),
		OriginalPrice:  v.BasePrice(),
		EffectivePrice: va.calculator.ComputeEffectivePrice(v.BasePrice(), promo),
		Promotion:      promo,
	}, anomaly, nil
}

// Aggregate computes the PriceSummary for variants at now.
//
// Min/max are seeded from the first variant and only replaced on a strict
// improvement, so among equal effective prices the earliest variant wins.
// The original price and promotion are taken from the same variant that
// holds the effective extreme.
func (va *VariantAggregator) Aggregate(variants []*domain.Variant, now time.Time) (*domain.PriceSummary, error) {
	if len(variants) == 0 {
		return nil, domain.ErrEmptyVariantSet
	}

	summary := &domain.PriceSummary{
		Variants: make([]domain.EffectiveVariantPrice, 0, len(variants)),
	}

	var minHolder, maxHolder *domain.EffectiveVariantPrice
	for i, v := range variants {
		if v == nil {
			return nil, fmt.Errorf("variant at index %d is nil: %w", i, domain.ErrInvalidBasePrice)
		}

		priced, anomaly, err := va.PriceVariant(v, now)
		if err != nil {
			return nil, err
		}
		if anomaly != nil {
			summary.Anomalies = append(summary.Anomalies, *anomaly)
		}
		summary.Variants = append(summary.Variants, priced)

		summary.TotalStock += v.Stock()
		summary.TotalSold += v.Sold()
	}

	for i := range summary.Variants {
		cur := &summary.Variants[i]
		if minHolder == nil || cur.EffectivePrice.LessThan(minHolder.EffectivePrice) {
			minHolder = cur
		}
		if maxHolder == nil || cur.EffectivePrice.GreaterThan(maxHolder.EffectivePrice) {
			maxHolder = cur
		}
	}

	summary.MinEffective = minHolder.EffectivePrice
	summary.MinOriginal = minHolder.OriginalPrice
	summary.DiscountInfo = minHolder.Promotion
	summary.MinVariantID = minHolder.VariantID
	summary.MaxEffective = maxHolder.EffectivePrice
	summary.MaxOriginal = maxHolder.OriginalPrice

	return summary, nil
}
