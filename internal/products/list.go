package product

import "github.com/stockroomhq/stockroom-backend/pkg/pagination"

// ProductListFilters narrows the product listing.
type ProductListFilters struct {
	SKU string
}

// ListProductsInput carries filters and paging for the product listing.
type ListProductsInput struct {
	Filters    ProductListFilters
	Pagination pagination.Params
}
