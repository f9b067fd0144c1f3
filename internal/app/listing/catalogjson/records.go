// Package catalogjson decodes catalog snapshots in their JSON wire form into
// domain products. It is the fetch boundary: every field is mapped
// explicitly, including the display code.
package catalogjson

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
)

// ProductRecord is one product as supplied by the catalog.
type ProductRecord struct {
	ID               string          `json:"id" validate:"required"`
	Code             string          `json:"code"`
	Name             string          `json:"name" validate:"required"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        *time.Time      `json:"updatedAt,omitempty"`
	Brand            *NamedRecord    `json:"brand,omitempty"`
	Category         *NamedRecord    `json:"category,omitempty"`
	DefaultImagePath string          `json:"defaultImagePath"`
	Variants         []VariantRecord `json:"variants" validate:"dive"`
}

// NamedRecord is a nested {name} object such as a brand or category.
type NamedRecord struct {
	Name string `json:"name"`
}

// VariantRecord is one SKU of a product.
type VariantRecord struct {
	ID         string            `json:"id" validate:"required"`
	BasePrice  decimal.Decimal   `json:"basePrice"`
	Stock      int64             `json:"stock" validate:"gte=0"`
	Sold       int64             `json:"sold" validate:"gte=0"`
	Promotions []PromotionRecord `json:"promotions" validate:"dive"`
}

// PromotionRecord is one time-boxed discount rule.
type PromotionRecord struct {
	ID       string          `json:"id" validate:"required"`
	Kind     string          `json:"kind" validate:"required"`
	Value    decimal.Decimal `json:"value"`
	Status   string          `json:"status"`
	StartsAt time.Time       `json:"startsAt" validate:"required"`
	EndsAt   time.Time       `json:"endsAt" validate:"required"`
}

// ToDomain converts a validated record into a domain snapshot.
func (r ProductRecord) ToDomain() (*domain.Product, error) {
	variants := make([]*domain.Variant, 0, len(r.Variants))
	for _, vr := range r.Variants {
		v, err := vr.toDomain()
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", r.ID, err)
		}
		variants = append(variants, v)
	}

	snap := domain.ProductSnapshot{
		ID:               r.ID,
		Code:             strings.TrimSpace(r.Code),
		Name:             strings.TrimSpace(r.Name),
		BrandName:        optionalName(r.Brand),
		CategoryName:     optionalName(r.Category),
		DefaultImagePath: strings.TrimSpace(r.DefaultImagePath),
		Status:           domain.ParseProductStatus(r.Status),
		CreatedAt:        r.CreatedAt.UTC(),
		Variants:         variants,
	}
	if r.UpdatedAt != nil {
		snap.UpdatedAt = r.UpdatedAt.UTC()
	}
	return domain.ReconstructProduct(snap), nil
}

func (r VariantRecord) toDomain() (*domain.Variant, error) {
	promos := make([]*domain.Promotion, 0, len(r.Promotions))
	for _, pr := range r.Promotions {
		p, err := pr.toDomain()
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", r.ID, err)
		}
		promos = append(promos, p)
	}
	return domain.NewVariant(r.ID, domain.MoneyFromDecimal(r.BasePrice), r.Stock, r.Sold, promos)
}

func (r PromotionRecord) toDomain() (*domain.Promotion, error) {
	kind, err := domain.ParsePromotionKind(strings.TrimSpace(r.Kind))
	if err != nil {
		return nil, fmt.Errorf("promotion %s: %w", r.ID, err)
	}
	p, err := domain.NewPromotion(r.ID, kind, r.Value.Rat(), domain.ParsePromotionStatus(r.Status), r.StartsAt.UTC(), r.EndsAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("promotion %s: %w", r.ID, err)
	}
	return p, nil
}

func optionalName(n *NamedRecord) *string {
	if n == nil {
		return nil
	}
	name := strings.TrimSpace(n.Name)
	if name == "" {
		return nil
	}
	return &name
}
