package list_listings

import "time"

// Query selects a page of active products to price.
type Query struct {
	Category *string
	Limit    int
	Offset   int
	At       *time.Time
}

// Result holds one entry per fetched product, in catalog order.
// Fetched counts products read from the catalog and drives paging.
type Result struct {
	Items   []ListingItem
	Fetched int
}
