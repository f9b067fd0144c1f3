package m_product

// Field constants for the products table.
const (
	TableName = "products"

	ColProductID        = "product_id"
	ColCode             = "code"
	ColName             = "name"
	ColBrandName        = "brand_name"
	ColCategoryName     = "category_name"
	ColDefaultImagePath = "default_image_path"
	ColStatus           = "status"
	ColCreatedAt        = "created_at"
	ColUpdatedAt        = "updated_at"
)
