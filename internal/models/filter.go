package models

import "strings"

const (
	DefaultCurrentPage = 1
	DefaultPageSize    = 10
	MaxPageSize        = 100
)

// OrderBy names the column a customer listing is sorted on.
type OrderBy string

const (
	OrderByFirstName OrderBy = "firstName"
	OrderBySurname   OrderBy = "surname"
	OrderByEmail     OrderBy = "email"
)

// SortDirection is the direction applied to OrderBy.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseOrderBy matches s case-insensitively against the known columns.
func ParseOrderBy(s string) (OrderBy, bool) {
	for _, o := range []OrderBy{OrderByFirstName, OrderBySurname, OrderByEmail} {
		if strings.EqualFold(s, string(o)) {
			return o, true
		}
	}
	return "", false
}

// ParseSortDirection matches s case-insensitively against asc and desc.
func ParseSortDirection(s string) (SortDirection, bool) {
	for _, d := range []SortDirection{SortAsc, SortDesc} {
		if strings.EqualFold(s, string(d)) {
			return d, true
		}
	}
	return "", false
}

// CustomerFilter selects, orders and pages customers.
// ID is ignored when it is not positive; blank strings are ignored.
type CustomerFilter struct {
	ID          int64
	Email       string
	FirstName   string
	Surname     string
	CurrentPage int
	PageSize    int
	OrderBy     OrderBy
	SortBy      SortDirection
}

// NewCustomerFilter returns a filter carrying the listing defaults.
func NewCustomerFilter() CustomerFilter {
	return CustomerFilter{
		CurrentPage: DefaultCurrentPage,
		PageSize:    DefaultPageSize,
		OrderBy:     OrderByFirstName,
		SortBy:      SortAsc,
	}
}

// Paged reports whether skip/take should be applied.
func (f CustomerFilter) Paged() bool {
	return f.CurrentPage > 0
}

// Offset is the number of matching rows skipped before the current page.
func (f CustomerFilter) Offset() int {
	if f.CurrentPage <= 0 || f.PageSize <= 0 {
		return 0
	}
	return (f.CurrentPage - 1) * f.PageSize
}
