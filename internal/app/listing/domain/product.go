package domain

import (
	"strings"
	"time"
)

// ProductStatus represents the lifecycle state of a product.
type ProductStatus string

const (
	// ProductStatusDraft indicates a product that is being prepared.
	ProductStatusDraft ProductStatus = "draft"

	// ProductStatusActive indicates a product that is available for sale.
	ProductStatusActive ProductStatus = "active"

	// ProductStatusInactive indicates a product that is temporarily unavailable.
	ProductStatusInactive ProductStatus = "inactive"

	// ProductStatusArchived indicates a product that has been soft-deleted.
	ProductStatusArchived ProductStatus = "archived"
)

// ParseProductStatus maps a stored or wire status onto a ProductStatus.
// Matching is case-insensitive; empty and truthy flags mean active.
func ParseProductStatus(s string) ProductStatus {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "active", "1", "true":
		return ProductStatusActive
	case "inactive", "0", "false":
		return ProductStatusInactive
	}
	return ProductStatus(v)
}

// DisplayCoder is implemented by anything that can label itself with a
// human-facing product code. Adapters at the fetch boundary decide which
// catalog field populates it.
type DisplayCoder interface {
	DisplayCode() string
}

// Product is a read-only snapshot of a catalog product with its variants.
// The engine never mutates it.
type Product struct {
	id               string
	code             string
	name             string
	brandName        *string
	categoryName     *string
	defaultImagePath string
	status           ProductStatus
	createdAt        time.Time
	updatedAt        time.Time
	variants         []*Variant
}

// ProductSnapshot groups the fields needed to build a Product.
type ProductSnapshot struct {
	ID               string
	Code             string
	Name             string
	BrandName        *string
	CategoryName     *string
	DefaultImagePath string
	Status           ProductStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Variants         []*Variant
}

// ReconstructProduct builds a Product from a fetched snapshot.
func ReconstructProduct(s ProductSnapshot) *Product {
	variants := make([]*Variant, len(s.Variants))
	copy(variants, s.Variants)
	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.CreatedAt
	}
	return &Product{
		id:               s.ID,
		code:             s.Code,
		name:             s.Name,
		brandName:        s.BrandName,
		categoryName:     s.CategoryName,
		defaultImagePath: s.DefaultImagePath,
		status:           s.Status,
		createdAt:        s.CreatedAt,
		updatedAt:        updatedAt,
		variants:         variants,
	}
}

// Getters

func (p *Product) ID() string {
	return p.id
}

// DisplayCode returns the product code chosen by the catalog adapter.
func (p *Product) DisplayCode() string {
	return p.code
}

func (p *Product) Name() string {
	return p.name
}

// BrandName returns the brand name, or nil when the product has no brand.
func (p *Product) BrandName() *string {
	return p.brandName
}

// CategoryName returns the category name, or nil when uncategorised.
func (p *Product) CategoryName() *string {
	return p.categoryName
}

func (p *Product) DefaultImagePath() string {
	return p.defaultImagePath
}

func (p *Product) Status() ProductStatus {
	return p.status
}

func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Product) Variants() []*Variant {
	return p.variants
}

// IsActive returns true if the product is in Active status.
func (p *Product) IsActive() bool {
	return p.status == ProductStatusActive
}
