package models

// Pagination is the envelope returned by listing endpoints.
type Pagination[T any] struct {
	CurrentPage int   `json:"currentPage"`
	Count       int64 `json:"count"`
	PageSize    int   `json:"pageSize"`
	TotalPages  int   `json:"totalPages"`
	Result      []T   `json:"result"`
}

// NewPagination wraps one page of items. count is the total before paging.
func NewPagination[T any](items []T, count int64, currentPage, pageSize int) *Pagination[T] {
	if items == nil {
		items = []T{}
	}
	return &Pagination[T]{
		CurrentPage: currentPage,
		Count:       count,
		PageSize:    pageSize,
		TotalPages:  TotalPages(count, pageSize),
		Result:      items,
	}
}

// EmptyPagination is a page with no matches.
func EmptyPagination[T any](currentPage, pageSize int) *Pagination[T] {
	return NewPagination[T](nil, 0, currentPage, pageSize)
}

// TotalPages is ceil(count/pageSize), or 1 when pageSize is not positive.
func TotalPages(count int64, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	size := int64(pageSize)
	return int((count + size - 1) / size)
}

// MapPagination converts the items of p while keeping its paging metadata.
func MapPagination[T, U any](p *Pagination[T], fn func(T) U) *Pagination[U] {
	items := make([]U, 0, len(p.Result))
	for _, item := range p.Result {
		items = append(items, fn(item))
	}
	return &Pagination[U]{
		CurrentPage: p.CurrentPage,
		Count:       p.Count,
		PageSize:    p.PageSize,
		TotalPages:  p.TotalPages,
		Result:      items,
	}
}
