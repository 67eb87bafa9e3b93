package handlers

import (
	"strings"

	"customerapi/internal/models"
)

// CustomerRequest is the body of create and update requests.
type CustomerRequest struct {
	FirstName       string `json:"firstName"`
	Surname         string `json:"surname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

// CustomerResponse is the public view of a customer. It never carries the password.
type CustomerResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	Surname   string `json:"surname"`
	FullName  string `json:"fullName"`
}

// CustomerListQuery binds the listing query string. Nil paging fields take the defaults.
type CustomerListQuery struct {
	ID          int64  `query:"id"`
	Email       string `query:"email"`
	FirstName   string `query:"firstName"`
	Surname     string `query:"surname"`
	CurrentPage *int   `query:"currentPage"`
	PageSize    *int   `query:"pageSize"`
	OrderBy     string `query:"orderBy" validate:"omitempty,orderby"`
	SortBy      string `query:"sortBy" validate:"omitempty,sortdir"`
}

func toCustomer(req CustomerRequest) *models.Customer {
	return &models.Customer{
		FirstName: strings.TrimSpace(req.FirstName),
		Surname:   strings.TrimSpace(req.Surname),
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
	}
}

func toCustomerResponse(c models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Email:     c.Email,
		FirstName: c.FirstName,
		Surname:   c.Surname,
		FullName:  c.FullName(),
	}
}

// toCustomerFilter assumes q passed validation, so unknown enum values cannot occur.
func toCustomerFilter(q CustomerListQuery) *models.CustomerFilter {
	f := models.NewCustomerFilter()
	f.ID = q.ID
	f.Email = q.Email
	f.FirstName = q.FirstName
	f.Surname = q.Surname
	if q.CurrentPage != nil {
		f.CurrentPage = *q.CurrentPage
	}
	if q.PageSize != nil {
		f.PageSize = *q.PageSize
	}
	if o, ok := models.ParseOrderBy(q.OrderBy); ok {
		f.OrderBy = o
	}
	if d, ok := models.ParseSortDirection(q.SortBy); ok {
		f.SortBy = d
	}
	return &f
}
