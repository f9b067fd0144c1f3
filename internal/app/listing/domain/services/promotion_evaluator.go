package services

import (
	"time"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
)

// PromotionEvaluator picks the promotion that applies to a variant.
type PromotionEvaluator struct{}

// NewPromotionEvaluator creates a new PromotionEvaluator instance.
func NewPromotionEvaluator() *PromotionEvaluator {
	return &PromotionEvaluator{}
}

// SelectPromotion returns the first promotion, in input order, that is
// eligible at now. It does not look for the largest discount: callers that
// want "best deal" semantics must sort promotions by savings beforehand.
// Returns nil when nothing is eligible.
func (pe *PromotionEvaluator) SelectPromotion(promotions []*domain.Promotion, now time.Time) *domain.Promotion {
	for _, p := range promotions {
		if p == nil {
			continue
		}
		if p.IsEligibleAt(now) {
			return p
		}
	}
	return nil
}

// StableWindow returns the window around now in which the set of eligible
// promotions across variants stays the same.
//
// Eligibility flips on at startsAt and off one nanosecond after endsAt, so
// those are the boundaries. Promotions that are never eligible contribute none.
func (pe *PromotionEvaluator) StableWindow(variants []*domain.Variant, now time.Time) domain.PricingWindow {
	var w domain.PricingWindow
	consider := func(b time.Time) {
		if b.After(now) {
			if w.Until.IsZero() || b.Before(w.Until) {
				w.Until = b
			}
			return
		}
		if w.From.IsZero() || b.After(w.From) {
			w.From = b
		}
	}
	for _, v := range variants {
		if v == nil {
			continue
		}
		for _, p := range v.Promotions() {
			if p == nil || p.Status() != domain.PromotionStatusActive {
				continue
			}
			consider(p.StartsAt())
			consider(p.EndsAt().Add(time.Nanosecond))
		}
	}
	return w
}
