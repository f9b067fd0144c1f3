package get_listing

import "time"

// Query asks for the listing of one product.
// At overrides the handler clock when set.
type Query struct {
	ProductID string
	At        *time.Time
}
