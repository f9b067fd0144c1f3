package domain

import "time"

// EffectiveVariantPrice is the priced view of one variant at a reference instant.
type EffectiveVariantPrice struct {
	VariantID      string
	OriginalPrice  *Money
	EffectivePrice *Money
	// Promotion is the selected promotion, nil when none was eligible.
	Promotion *Promotion
}

// HasDiscount reports whether a promotion was applied.
func (p EffectiveVariantPrice) HasDiscount() bool {
	return p.Promotion != nil
}

// Anomaly records a malformed promotion that was clamped before use.
type Anomaly struct {
	VariantID   string
	PromotionID string
	Err         error
}

// PriceSummary is the product-level roll-up of variant prices.
//
// MinOriginal/MaxOriginal belong to the same variants that hold
// MinEffective/MaxEffective; they are not independent extremes.
type PriceSummary struct {
	MinEffective *Money
	MaxEffective *Money
	MinOriginal  *Money
	MaxOriginal  *Money

	// DiscountInfo is the promotion of the min-effective variant (nil-able).
	DiscountInfo *Promotion
	// MinVariantID identifies the variant that produced the listing price.
	MinVariantID string

	TotalStock int64
	TotalSold  int64

	Variants  []EffectiveVariantPrice
	Anomalies []Anomaly
}

// PricingWindow is the span of reference instants around a given instant in
// which no promotion of a product changes eligibility, so every instant in it
// prices identically. From is inclusive and Until exclusive; a zero bound
// means the window is open on that side.
type PricingWindow struct {
	From  time.Time
	Until time.Time
}

// Contains reports whether t lies in the window.
func (w PricingWindow) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.Until.IsZero() && !t.Before(w.Until) {
		return false
	}
	return true
}

// Remaining is the time from t until the window closes, or -1 when it never does.
func (w PricingWindow) Remaining(t time.Time) time.Duration {
	if w.Until.IsZero() {
		return -1
	}
	return w.Until.Sub(t)
}
