package models

// Filters narrows a catalog query. Nil range bounds mean unbounded.
// Inactive products are never visible regardless of filters.
type Filters struct {
	Category    string
	PriceMin    *int
	PriceMax    *int
	IncludeUsed bool
}

// CatalogQuery is the data-access contract the feed engine consumes:
// equality/range filters, ordering by a named field with direction, and
// offset+limit pagination.
type CatalogQuery struct {
	Filters Filters
	OrderBy string
	Desc    bool
	Offset  int
	Limit   int
}
