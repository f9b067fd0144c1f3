package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductListingDTO is the flat listing projection of one product.
// Money fields are decimals; Price is the "starting from" price and equals MinPrice.
type ProductListingDTO struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl"`

	Price          decimal.Decimal `json:"price"`
	MinPrice       decimal.Decimal `json:"minPrice"`
	MaxPrice       decimal.Decimal `json:"maxPrice"`
	MinOriginPrice decimal.Decimal `json:"minOriginPrice"`
	MaxOriginPrice decimal.Decimal `json:"maxOriginPrice"`

	DiscountInfo   *DiscountInfoDTO `json:"discountInfo"`
	DiscountAmount decimal.Decimal  `json:"discountAmount"`
	OnSale         bool             `json:"onSale"`

	Stock int64 `json:"stock"`
	Sold  int64 `json:"sold"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Status    string    `json:"status"`
}

// DiscountInfoDTO describes the promotion behind the listing price.
type DiscountInfoDTO struct {
	ID       string          `json:"id"`
	Kind     string          `json:"kind"`
	Value    decimal.Decimal `json:"value"`
	Status   string          `json:"status"`
	StartsAt time.Time       `json:"startsAt"`
	EndsAt   time.Time       `json:"endsAt"`
}

// ListingResult pairs a product id with either its listing or the reason it
// could not be priced. Batch queries return one per requested product.
type ListingResult struct {
	ProductID string             `json:"productId"`
	Listing   *ProductListingDTO `json:"listing,omitempty"`

	// Availability is "available" when Listing is set, otherwise "unavailable".
	Availability string `json:"availability"`
	Error        string `json:"error,omitempty"`
	Err          error  `json:"-"`
}

const (
	AvailabilityAvailable   = "available"
	AvailabilityUnavailable = "unavailable"
)
