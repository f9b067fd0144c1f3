package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// InsertOrUpdateMutation builds a spanner.InsertOrUpdate mutation for a product
// from a map keyed by the column names declared in fields.go.
func InsertOrUpdateMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.InsertOrUpdate(TableName, cols, vals)
}

// DeleteMutation removes a product row. Variants and promotions are
// interleaved with ON DELETE CASCADE and go with it.
func DeleteMutation(productID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID})
}

// BuildInsertMap prepares the canonical product columns. Nil optional
// strings are written as NULL.
func BuildInsertMap(productID, code, name string, brandName, categoryName *string,
	defaultImagePath, status string, createdAt, updatedAt time.Time) map[string]interface{} {

	m := map[string]interface{}{
		ColProductID:        productID,
		ColName:             name,
		ColDefaultImagePath: defaultImagePath,
		ColStatus:           status,
		ColCreatedAt:        createdAt,
		ColUpdatedAt:        updatedAt,
	}

	if code != "" {
		m[ColCode] = code
	} else {
		m[ColCode] = nil
	}

	if brandName != nil {
		m[ColBrandName] = *brandName
	} else {
		m[ColBrandName] = nil
	}

	if categoryName != nil {
		m[ColCategoryName] = *categoryName
	} else {
		m[ColCategoryName] = nil
	}

	return m
}
