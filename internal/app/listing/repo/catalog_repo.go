package repo

import (
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
	"github.com/murkotick/listing-pricing-service/internal/models/m_product"
	"github.com/murkotick/listing-pricing-service/internal/models/m_promotion"
	"github.com/murkotick/listing-pricing-service/internal/models/m_variant"
)

// CatalogRepo builds Spanner mutations that store a product snapshot.
// It returns *spanner.Mutation objects but never applies them.
type CatalogRepo struct{}

func NewCatalogRepo() *CatalogRepo {
	return &CatalogRepo{}
}

// ReplaceMuts returns the mutations that replace every stored row of p:
// delete the product (cascading to its children), then write it afresh.
// Spanner applies mutations in order within one commit.
func (r *CatalogRepo) ReplaceMuts(p *domain.Product) ([]*spanner.Mutation, error) {
	if p == nil {
		return nil, nil
	}

	muts := []*spanner.Mutation{
		m_product.DeleteMutation(p.ID()),
		m_product.InsertOrUpdateMutation(buildProductValues(p)),
	}

	for i, v := range p.Variants() {
		values, err := buildVariantValues(p.ID(), int64(i), v)
		if err != nil {
			return nil, err
		}
		muts = append(muts, m_variant.InsertMutation(values))

		for j, promo := range v.Promotions() {
			pv, err := buildPromotionValues(p.ID(), v.ID(), int64(j), promo)
			if err != nil {
				return nil, err
			}
			muts = append(muts, m_promotion.InsertMutation(pv))
		}
	}
	return muts, nil
}

func buildProductValues(p *domain.Product) map[string]interface{} {
	return m_product.BuildInsertMap(p.ID(), p.DisplayCode(), p.Name(), p.BrandName(), p.CategoryName(),
		p.DefaultImagePath(), string(p.Status()), p.CreatedAt().UTC(), p.UpdatedAt().UTC())
}

func buildVariantValues(productID string, position int64, v *domain.Variant) (map[string]interface{}, error) {
	if v == nil || v.BasePrice() == nil {
		return nil, fmt.Errorf("product %s variant %d: %w", productID, position, domain.ErrInvalidBasePrice)
	}
	num, den, err := ratParts(v.BasePrice().Rat())
	if err != nil {
		return nil, fmt.Errorf("variant %s base price: %w", v.ID(), err)
	}
	return m_variant.BuildInsertMap(productID, v.ID(), position, num, den, v.Stock(), v.Sold()), nil
}

func buildPromotionValues(productID, variantID string, position int64, p *domain.Promotion) (map[string]interface{}, error) {
	num, den, err := ratParts(p.Value())
	if err != nil {
		return nil, fmt.Errorf("promotion %s value: %w", p.ID(), err)
	}
	return m_promotion.BuildInsertMap(productID, variantID, p.ID(), position, string(p.Kind()),
		num, den, string(p.Status()), p.StartsAt().UTC(), p.EndsAt().UTC()), nil
}

func ratParts(r *big.Rat) (int64, int64, error) {
	if r == nil {
		return 0, 1, nil
	}
	if !r.Num().IsInt64() || !r.Denom().IsInt64() {
		return 0, 0, fmt.Errorf("%s does not fit int64 numerator/denominator", r.RatString())
	}
	return r.Num().Int64(), r.Denom().Int64(), nil
}
