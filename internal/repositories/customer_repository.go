package repositories

import (
	"context"

	"customerapi/internal/models"
)

// CustomerRepository defines the interface for customer data access.
// Lookups return (nil, nil) when nothing matches.
type CustomerRepository interface {
	GetByFilter(ctx context.Context, filter models.CustomerFilter) (*models.Customer, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	GetListByFilter(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error)
	CountByFilter(ctx context.Context, filter models.CustomerFilter) (int64, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id int64) error
}

// emailMatch selects how the email filter is applied.
type emailMatch int

const (
	// emailExact is used for single-match lookups such as availability checks.
	emailExact emailMatch = iota
	// emailContains is used for listing and counting.
	emailContains
)
