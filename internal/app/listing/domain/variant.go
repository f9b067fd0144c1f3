package domain

import "fmt"

// Variant is a purchasable configuration (SKU) of a product.
type Variant struct {
	id         string
	basePrice  *Money
	stock      int64
	sold       int64
	promotions []*Promotion
}

// NewVariant creates a Variant and enforces the catalog preconditions:
// a non-negative base price and non-negative stock/sold counts.
// Promotions keep the order they are supplied in.
func NewVariant(id string, basePrice *Money, stock, sold int64, promotions []*Promotion) (*Variant, error) {
	if basePrice == nil || basePrice.IsNegative() {
		return nil, fmt.Errorf("variant %s: %w", id, ErrInvalidBasePrice)
	}
	if stock < 0 || sold < 0 {
		return nil, fmt.Errorf("variant %s: %w", id, ErrInvalidQuantity)
	}
	return ReconstructVariant(id, basePrice, stock, sold, promotions), nil
}

// ReconstructVariant builds a Variant from persisted state without validation.
// Used by catalog readers; the aggregator re-checks the base price.
func ReconstructVariant(id string, basePrice *Money, stock, sold int64, promotions []*Promotion) *Variant {
	promos := make([]*Promotion, len(promotions))
	copy(promos, promotions)
	return &Variant{
		id:         id,
		basePrice:  basePrice,
		stock:      stock,
		sold:       sold,
		promotions: promos,
	}
}

func (v *Variant) ID() string {
	return v.id
}

func (v *Variant) BasePrice() *Money {
	return v.basePrice
}

func (v *Variant) Stock() int64 {
	return v.stock
}

func (v *Variant) Sold() int64 {
	return v.sold
}

// Promotions returns the promotions in catalog order.
func (v *Variant) Promotions() []*Promotion {
	return v.promotions
}
