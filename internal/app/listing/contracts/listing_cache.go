package contracts

import (
	"context"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/dto"
)

// ListingCache stores projected listings keyed by product and the pricing
// window they were computed in.
// A miss is reported as (nil, false, nil).
type ListingCache interface {
	Get(ctx context.Context, productID string, window domain.PricingWindow) (*dto.ProductListingDTO, bool, error)
	Set(ctx context.Context, productID string, window domain.PricingWindow, listing *dto.ProductListingDTO) error
}
