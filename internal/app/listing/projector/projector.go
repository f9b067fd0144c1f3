package projector

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain/services"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/dto"
)

// CatalogProjector merges a PriceSummary with product display metadata.
type CatalogProjector struct {
	calculator  *services.PricingCalculator
	placeholder string
}

// NewCatalogProjector creates a projector. placeholder is the image URL used
// when a product has no default image; it may be empty.
func NewCatalogProjector(calculator *services.PricingCalculator, placeholder string) *CatalogProjector {
	if calculator == nil {
		calculator = services.NewPricingCalculator()
	}
	return &CatalogProjector{calculator: calculator, placeholder: placeholder}
}

// Project builds the listing DTO for product from summary.
// It has no failure modes of its own; aggregation errors are the caller's.
func (cp *CatalogProjector) Project(product *domain.Product, summary *domain.PriceSummary, imageBaseURL string) *dto.ProductListingDTO {
	out := &dto.ProductListingDTO{
		ID:       product.ID(),
		Code:     displayCode(product),
		Name:     product.Name(),
		Brand:    derefString(product.BrandName()),
		Category: derefString(product.CategoryName()),
		ImageURL: ResolveImageURL(product.DefaultImagePath(), imageBaseURL, cp.placeholder),

		Price:          summary.MinEffective.Decimal(),
		MinPrice:       summary.MinEffective.Decimal(),
		MaxPrice:       summary.MaxEffective.Decimal(),
		MinOriginPrice: summary.MinOriginal.Decimal(),
		MaxOriginPrice: summary.MaxOriginal.Decimal(),

		DiscountAmount: decimal.Zero,
		OnSale:         summary.MinEffective.LessThan(summary.MinOriginal),

		Stock: summary.TotalStock,
		Sold:  summary.TotalSold,

		CreatedAt: product.CreatedAt().UTC(),
		UpdatedAt: product.UpdatedAt().UTC(),
		Status:    string(product.Status()),
	}

	if d := summary.DiscountInfo; d != nil {
		out.DiscountInfo = &dto.DiscountInfoDTO{
			ID:       d.ID(),
			Kind:     string(d.Kind()),
			Value:    decimal.NewFromBigRat(d.Value(), 10),
			Status:   string(d.Status()),
			StartsAt: d.StartsAt().UTC(),
			EndsAt:   d.EndsAt().UTC(),
		}
		out.DiscountAmount = cp.calculator.CalculateSavings(summary.MinOriginal, d).Decimal()
	}

	return out
}

// ResolveImageURL prefixes root-relative paths with base. Absolute URLs pass
// through unchanged and an empty path maps to placeholder.
func ResolveImageURL(path, base, placeholder string) string {
	if path == "" {
		return placeholder
	}
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return path
	}
	if base == "" {
		return path
	}
	return strings.TrimRight(base, "/") + path
}

func displayCode(c domain.DisplayCoder) string {
	return c.DisplayCode()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
