package services

import (
	"math/big"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
)

// PricingCalculator is a domain service that applies a promotion to a base price.
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// ComputeEffectivePrice returns the price after promo, floored at zero.
//
//	percentage:   base * (1 - value/100)
//	fixed_amount: base - value
//
// The promotion value is clamped (see Promotion.EffectiveValue) so the result
// never exceeds basePrice. basePrice must be non-negative; that is enforced
// when variants are constructed, not here.
func (pc *PricingCalculator) ComputeEffectivePrice(basePrice *domain.Money, promo *domain.Promotion) *domain.Money {
	if promo == nil {
		return basePrice
	}

	value := promo.EffectiveValue()

	var effective *domain.Money
	switch promo.Kind() {
	case domain.PromotionKindPercentage:
		// 1 - value/100
		multiplier := new(big.Rat).Sub(big.NewRat(1, 1), new(big.Rat).Quo(value, big.NewRat(100, 1)))
		effective = basePrice.MultiplyByRat(multiplier)
	case domain.PromotionKindFixedAmount:
		effective = basePrice.Subtract(domain.NewMoneyFromRat(value))
	default:
		return basePrice
	}

	return effective.FloorAtZero()
}

// CalculateSavings returns how much the promotion takes off basePrice.
func (pc *PricingCalculator) CalculateSavings(basePrice *domain.Money, promo *domain.Promotion) *domain.Money {
	if promo == nil {
		return domain.Zero()
	}
	return basePrice.Subtract(pc.ComputeEffectivePrice(basePrice, promo))
}
