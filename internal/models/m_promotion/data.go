package m_promotion

import (
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation builds a spanner.Insert mutation for a promotion.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// BuildInsertMap prepares promotion columns. position is significant:
// the first eligible promotion in position order is the one applied.
func BuildInsertMap(productID, variantID, promotionID string, position int64, kind string,
	valueNum, valueDen int64, status string, startsAt, endsAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColProductID:        productID,
		ColVariantID:        variantID,
		ColPromotionID:      promotionID,
		ColPosition:         position,
		ColKind:             kind,
		ColValueNumerator:   valueNum,
		ColValueDenominator: valueDen,
		ColStatus:           status,
		ColStartsAt:         startsAt,
		ColEndsAt:           endsAt,
	}
}
