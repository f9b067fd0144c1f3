package contracts

import (
	"context"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
)

// CatalogReader is the read-side boundary to the external catalog store.
// Implementations return fully populated snapshots (variants and their
// promotions in catalog order) and never price anything themselves.
type CatalogReader interface {
	// GetProduct returns domain.ErrProductNotFound when id is unknown.
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts returns active products ordered by name, optionally filtered
	// by category name. limit <= 0 means no limit; a negative offset is 0.
	ListProducts(ctx context.Context, category *string, limit, offset int) ([]*domain.Product, error)
}
