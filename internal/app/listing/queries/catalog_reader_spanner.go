package queries

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
)

// SpannerCatalogReader is an infrastructure adapter that satisfies
// contracts.CatalogReader. Each call reads products, variants and promotions
// inside one read-only transaction so a listing never mixes snapshots.
type SpannerCatalogReader struct {
	client *spanner.Client
}

func NewSpannerCatalogReader(client *spanner.Client) *SpannerCatalogReader {
	return &SpannerCatalogReader{client: client}
}

type querier interface {
	Query(ctx context.Context, stmt spanner.Statement) *spanner.RowIterator
}

const productColumns = `product_id, code, name, brand_name, category_name,
	default_image_path, status, created_at, updated_at`

// GetProduct loads one product with its variants and promotions.
func (r *SpannerCatalogReader) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT ` + productColumns + ` FROM products WHERE product_id = @id`,
		Params: map[string]interface{}{"id": productID},
	}

	tx := r.client.ReadOnlyTransaction()
	defer tx.Close()

	products, err := loadProducts(ctx, tx, stmt)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
	}
	return products[0], nil
}

// ListProducts returns active products ordered by name. The category match
// is case-insensitive. A non-positive limit returns every row after offset.
func (r *SpannerCatalogReader) ListProducts(ctx context.Context, category *string, limit, offset int) ([]*domain.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE LOWER(status) = 'active'`
	params := map[string]interface{}{}
	if category != nil {
		sql += " AND LOWER(category_name) = LOWER(@category)"
		params["category"] = *category
	}
	sql += " ORDER BY name ASC, product_id ASC LIMIT @limit OFFSET @offset"
	params["limit"] = rowLimit(limit)
	params["offset"] = int64(max(offset, 0))

	tx := r.client.ReadOnlyTransaction()
	defer tx.Close()

	return loadProducts(ctx, tx, spanner.Statement{SQL: sql, Params: params})
}

// rowLimit maps the reader contract onto GoogleSQL, where OFFSET needs a LIMIT.
func rowLimit(limit int) int64 {
	if limit <= 0 {
		return math.MaxInt64
	}
	return int64(limit)
}

func loadProducts(ctx context.Context, q querier, stmt spanner.Statement) ([]*domain.Product, error) {
	snaps, err := queryProductRows(ctx, q, stmt)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(snaps))
	for _, s := range snaps {
		ids = append(ids, s.ID)
	}

	promos, err := queryPromotions(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	variants, err := queryVariants(ctx, q, ids, promos)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Product, 0, len(snaps))
	for _, s := range snaps {
		s.Variants = variants[s.ID]
		out = append(out, domain.ReconstructProduct(*s))
	}
	return out, nil
}

func queryProductRows(ctx context.Context, q querier, stmt spanner.Statement) ([]*domain.ProductSnapshot, error) {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	var out []*domain.ProductSnapshot
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		var (
			id, name, status     string
			code, imagePath      spanner.NullString
			brand, category      spanner.NullString
			createdAt, updatedAt time.Time
		)
		if err := row.Columns(&id, &code, &name, &brand, &category, &imagePath, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		out = append(out, &domain.ProductSnapshot{
			ID:               id,
			Code:             code.StringVal,
			Name:             name,
			BrandName:        nullable(brand),
			CategoryName:     nullable(category),
			DefaultImagePath: imagePath.StringVal,
			Status:           domain.ParseProductStatus(status),
			CreatedAt:        createdAt.UTC(),
			UpdatedAt:        updatedAt.UTC(),
		})
	}
}

func queryVariants(ctx context.Context, q querier, productIDs []string, promos map[string][]*domain.Promotion) (map[string][]*domain.Variant, error) {
	stmt := spanner.Statement{
		SQL: `SELECT product_id, variant_id, base_price_numerator, base_price_denominator, stock, sold
		      FROM variants
		      WHERE product_id IN UNNEST(@ids)
		      ORDER BY product_id, position`,
		Params: map[string]interface{}{"ids": productIDs},
	}
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	out := make(map[string][]*domain.Variant, len(productIDs))
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		var (
			productID, variantID string
			baseNum, baseDen     int64
			stock, sold          int64
		)
		if err := row.Columns(&productID, &variantID, &baseNum, &baseDen, &stock, &sold); err != nil {
			return nil, err
		}
		if baseDen <= 0 {
			return nil, fmt.Errorf("variant %s: denominator %d: %w", variantID, baseDen, domain.ErrInvalidBasePrice)
		}

		// Negative prices are left for the aggregator to reject per product.
		v := domain.ReconstructVariant(variantID, domain.NewMoney(baseNum, baseDen), stock, sold,
			promos[variantKey(productID, variantID)])
		out[productID] = append(out[productID], v)
	}
}

func queryPromotions(ctx context.Context, q querier, productIDs []string) (map[string][]*domain.Promotion, error) {
	stmt := spanner.Statement{
		SQL: `SELECT product_id, variant_id, promotion_id, kind,
		             value_numerator, value_denominator, status, starts_at, ends_at
		      FROM promotions
		      WHERE product_id IN UNNEST(@ids)
		      ORDER BY product_id, variant_id, position`,
		Params: map[string]interface{}{"ids": productIDs},
	}
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	out := make(map[string][]*domain.Promotion)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		var (
			productID, variantID, promotionID string
			kind, status                      string
			valueNum, valueDen                int64
			startsAt, endsAt                  time.Time
		)
		if err := row.Columns(&productID, &variantID, &promotionID, &kind, &valueNum, &valueDen, &status, &startsAt, &endsAt); err != nil {
			return nil, err
		}
		if valueDen <= 0 {
			return nil, fmt.Errorf("promotion %s: denominator %d: %w", promotionID, valueDen, domain.ErrInvalidPromotionValue)
		}

		k, err := domain.ParsePromotionKind(kind)
		if err != nil {
			return nil, fmt.Errorf("promotion %s: %w", promotionID, err)
		}
		p, err := domain.NewPromotion(promotionID, k, big.NewRat(valueNum, valueDen),
			domain.ParsePromotionStatus(status), startsAt.UTC(), endsAt.UTC())
		if err != nil {
			return nil, fmt.Errorf("promotion %s: %w", promotionID, err)
		}

		key := variantKey(productID, variantID)
		out[key] = append(out[key], p)
	}
}

func variantKey(productID, variantID string) string {
	return productID + "/" + variantID
}

func nullable(s spanner.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.StringVal
	return &v
}
