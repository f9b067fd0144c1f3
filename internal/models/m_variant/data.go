package m_variant

import "cloud.google.com/go/spanner"

// InsertMutation builds a spanner.Insert mutation for a variant.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// BuildInsertMap prepares variant columns. position preserves the
// catalog order of variants within their product.
func BuildInsertMap(productID, variantID string, position int64, baseNum, baseDen, stock, sold int64) map[string]interface{} {
	return map[string]interface{}{
		ColProductID:            productID,
		ColVariantID:            variantID,
		ColPosition:             position,
		ColBasePriceNumerator:   baseNum,
		ColBasePriceDenominator: baseDen,
		ColStock:                stock,
		ColSold:                 sold,
	}
}
