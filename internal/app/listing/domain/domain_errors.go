package domain

import "errors"

// Errors raised while aggregating variant prices.
var (
	// ErrEmptyVariantSet indicates a product without variants; no min/max price exists.
	// Callers decide on a fallback display (e.g. "unavailable").
	ErrEmptyVariantSet = errors.New("product has no variants")

	// ErrInvalidBasePrice indicates a negative variant base price.
	ErrInvalidBasePrice = errors.New("variant base price must be non-negative")

	// ErrInvalidQuantity indicates negative stock or sold counts.
	ErrInvalidQuantity = errors.New("variant stock and sold must be non-negative")
)

// Errors for the Promotion value object.
var (
	// ErrInvalidPromotionValue indicates a negative value or a percentage above 100.
	// The engine clamps such values before use and reports the anomaly.
	ErrInvalidPromotionValue = errors.New("promotion value out of range")

	// ErrInvalidPromotionKind indicates a kind other than percentage or fixed_amount.
	ErrInvalidPromotionKind = errors.New("unknown promotion kind")

	// ErrInvalidPromotionPeriod indicates a promotion that ends before it starts.
	ErrInvalidPromotionPeriod = errors.New("promotion end must not be before start")
)

// Errors for catalog lookups.
var (
	// ErrProductNotFound indicates that a product with the given ID does not exist.
	ErrProductNotFound = errors.New("product not found")
)
