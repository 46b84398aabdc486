// Package pagination computes page windows and navigation metadata for
// listing endpoints. It holds no state and knows nothing about what is
// being paginated.
package pagination

type Page struct {
	CurrentPage     int
	PageSize        int
	TotalItems      int
	HasNextPage     bool
	HasPreviousPage bool
	NextPage        int
	PreviousPage    int
	LastPage        int
}

// New computes the window for the given page. Pages are 1-based; anything
// below 1 is treated as the first page.
func New(totalItems, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}

	return Page{
		CurrentPage:     page,
		PageSize:        pageSize,
		TotalItems:      totalItems,
		HasNextPage:     pageSize*page < totalItems,
		HasPreviousPage: page > 1,
		NextPage:        page + 1,
		PreviousPage:    page - 1,
		LastPage:        (totalItems + pageSize - 1) / pageSize,
	}
}

// Offset is the number of items to skip for CurrentPage.
func (p Page) Offset() int {
	return (p.CurrentPage - 1) * p.PageSize
}
