package m_variant

// Field constants for the variants table, interleaved in products.
const (
	TableName = "variants"

	ColProductID            = "product_id"
	ColVariantID            = "variant_id"
	ColPosition             = "position"
	ColBasePriceNumerator   = "base_price_numerator"
	ColBasePriceDenominator = "base_price_denominator"
	ColStock                = "stock"
	ColSold                 = "sold"
)
