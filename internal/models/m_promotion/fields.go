package m_promotion

// Field constants for the promotions table, interleaved in variants.
const (
	TableName = "promotions"

	ColProductID        = "product_id"
	ColVariantID        = "variant_id"
	ColPromotionID      = "promotion_id"
	ColPosition         = "position"
	ColKind             = "kind"
	ColValueNumerator   = "value_numerator"
	ColValueDenominator = "value_denominator"
	ColStatus           = "status"
	ColStartsAt         = "starts_at"
	ColEndsAt           = "ends_at"
)
