package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"customerapi/internal/apperrors"
	"customerapi/internal/models"
)

// MemoryCustomerRepository is an in-memory implementation of CustomerRepository.
// It enforces the same unique email constraint as the relational schema.
type MemoryCustomerRepository struct {
	customers map[int64]models.Customer
	nextID    int64
	mu        sync.RWMutex
}

// NewMemoryCustomerRepository creates a new instance of MemoryCustomerRepository.
func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{
		customers: make(map[int64]models.Customer),
	}
}

// GetByFilter returns the lowest-ID customer matching filter, comparing email exactly.
func (r *MemoryCustomerRepository) GetByFilter(_ context.Context, filter models.CustomerFilter) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.match(filter, emailExact)
	if len(matches) == 0 {
		return nil, nil
	}
	sortCustomers(matches, "", models.SortAsc)
	return &matches[0], nil
}

// GetByID returns a customer by its ID.
func (r *MemoryCustomerRepository) GetByID(_ context.Context, id int64) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

// GetListByFilter returns one ordered page of customers.
func (r *MemoryCustomerRepository) GetListByFilter(_ context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.match(filter, emailContains)
	sortCustomers(matches, filter.OrderBy, filter.SortBy)

	if filter.Paged() {
		offset := filter.Offset()
		if offset >= len(matches) {
			return []models.Customer{}, nil
		}
		matches = matches[offset:]
		if size := max(filter.PageSize, 0); size < len(matches) {
			matches = matches[:size]
		}
	}
	return matches, nil
}

// CountByFilter counts customers matching the listing predicate.
func (r *MemoryCustomerRepository) CountByFilter(_ context.Context, filter models.CustomerFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.match(filter, emailContains))), nil
}

// Create adds a new customer and assigns its ID.
func (r *MemoryCustomerRepository) Create(_ context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkConstraints(customer); err != nil {
		return err
	}
	r.nextID++
	customer.ID = r.nextID
	r.customers[customer.ID] = *customer
	return nil
}

// Update replaces an existing customer.
func (r *MemoryCustomerRepository) Update(_ context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[customer.ID]; !ok {
		return apperrors.NotFound("customer", customer.ID)
	}
	if err := r.checkConstraints(customer); err != nil {
		return err
	}
	r.customers[customer.ID] = *customer
	return nil
}

// Delete removes a customer by its ID.
func (r *MemoryCustomerRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return apperrors.NotFound("customer", id)
	}
	delete(r.customers, id)
	return nil
}

// checkConstraints mirrors the NOT NULL and unique email constraints. Caller holds the lock.
func (r *MemoryCustomerRepository) checkConstraints(customer *models.Customer) error {
	for field, value := range map[string]string{
		"email":      customer.Email,
		"first_name": customer.FirstName,
		"surname":    customer.Surname,
		"password":   customer.Password,
	} {
		if value == "" {
			return apperrors.Storage(apperrors.ViolationNotNull, field, nil)
		}
	}
	for id, existing := range r.customers {
		if id != customer.ID && existing.Email == customer.Email {
			return apperrors.Storage(apperrors.ViolationUnique, "email", nil)
		}
	}
	return nil
}

func (r *MemoryCustomerRepository) match(filter models.CustomerFilter, match emailMatch) []models.Customer {
	email := strings.TrimSpace(filter.Email)
	firstName := strings.TrimSpace(filter.FirstName)
	surname := strings.TrimSpace(filter.Surname)

	matches := make([]models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if filter.ID > 0 && c.ID != filter.ID {
			continue
		}
		if email != "" {
			if match == emailExact && c.Email != email {
				continue
			}
			if match == emailContains && !containsFold(c.Email, email) {
				continue
			}
		}
		if firstName != "" && !containsFold(c.FirstName, firstName) {
			continue
		}
		if surname != "" && !containsFold(c.Surname, surname) {
			continue
		}
		matches = append(matches, c)
	}
	return matches
}

// containsFold reports whether substr is within s, ignoring case like the SQL filters.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// sortCustomers orders by the requested column with ID as tie-breaker.
// An unknown column leaves only the ID ordering, which keeps map iteration out of results.
func sortCustomers(customers []models.Customer, orderBy models.OrderBy, dir models.SortDirection) {
	key := func(c models.Customer) string {
		switch orderBy {
		case models.OrderByFirstName:
			return c.FirstName
		case models.OrderBySurname:
			return c.Surname
		case models.OrderByEmail:
			return c.Email
		}
		return ""
	}
	sort.SliceStable(customers, func(i, j int) bool {
		a, b := key(customers[i]), key(customers[j])
		if a != b {
			if dir == models.SortDesc {
				return a > b
			}
			return a < b
		}
		return customers[i].ID < customers[j].ID
	})
}
