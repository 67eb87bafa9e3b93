package repositories

import (
	"context"
	"fmt"
	"strings"

	"customerapi/internal/apperrors"
	"customerapi/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const likeEscape = "!"

var orderColumns = map[models.OrderBy]string{
	models.OrderByFirstName: "first_name",
	models.OrderBySurname:   "surname",
	models.OrderByEmail:     "email",
}

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{
		db: db,
	}
}

// GetByFilter returns the first customer matching filter, comparing email exactly.
func (r *GORMCustomerRepository) GetByFilter(ctx context.Context, filter models.CustomerFilter) (*models.Customer, error) {
	var customers []models.Customer
	q := r.where(r.db.WithContext(ctx).Model(&models.Customer{}), filter, emailExact)
	if err := q.Order("id").Limit(1).Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to get customer by filter: %w", classify(err))
	}
	if len(customers) == 0 {
		return nil, nil
	}
	return &customers[0], nil
}

// GetByID retrieves a customer by ID.
func (r *GORMCustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to get customer by ID %d: %w", id, classify(err))
	}
	if len(customers) == 0 {
		return nil, nil
	}
	return &customers[0], nil
}

// GetListByFilter returns one ordered page of customers. Email is matched as a substring.
func (r *GORMCustomerRepository) GetListByFilter(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	q := r.where(r.db.WithContext(ctx).Model(&models.Customer{}), filter, emailContains)

	if column, ok := orderColumns[filter.OrderBy]; ok {
		q = q.Order(clause.OrderByColumn{
			Column: clause.Column{Name: column},
			Desc:   filter.SortBy == models.SortDesc,
		}).Order("id")
	}
	if filter.Paged() {
		q = q.Offset(filter.Offset()).Limit(max(filter.PageSize, 0))
	}

	customers := []models.Customer{}
	if err := q.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", classify(err))
	}
	return customers, nil
}

// CountByFilter counts customers matching the listing predicate.
func (r *GORMCustomerRepository) CountByFilter(ctx context.Context, filter models.CustomerFilter) (int64, error) {
	var count int64
	q := r.where(r.db.WithContext(ctx).Model(&models.Customer{}), filter, emailContains)
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", classify(err))
	}
	return count, nil
}

// Create inserts customer and sets its ID.
func (r *GORMCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", classify(err))
	}
	return nil
}

// Update writes every column of an existing customer.
func (r *GORMCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	res := r.db.WithContext(ctx).Model(customer).Select("*").Omit("id", "created").Updates(customer)
	if res.Error != nil {
		return fmt.Errorf("failed to update customer: %w", classify(res.Error))
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("customer", customer.ID)
	}
	return nil
}

// Delete removes a customer by its ID.
func (r *GORMCustomerRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete customer: %w", classify(res.Error))
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("customer", id)
	}
	return nil
}

func (r *GORMCustomerRepository) where(q *gorm.DB, filter models.CustomerFilter, match emailMatch) *gorm.DB {
	if filter.ID > 0 {
		q = q.Where("id = ?", filter.ID)
	}
	if email := strings.TrimSpace(filter.Email); email != "" {
		if match == emailExact {
			q = q.Where("email = ?", email)
		} else {
			q = whereContains(q, "email", email)
		}
	}
	if name := strings.TrimSpace(filter.FirstName); name != "" {
		q = whereContains(q, "first_name", name)
	}
	if name := strings.TrimSpace(filter.Surname); name != "" {
		q = whereContains(q, "surname", name)
	}
	return q
}

// whereContains matches s case-insensitively anywhere in column. Postgres LIKE is
// case-sensitive while SQLite and MySQL are not, so both sides are lowered.
func whereContains(q *gorm.DB, column, s string) *gorm.DB {
	return q.Where("LOWER("+column+") LIKE ? ESCAPE '"+likeEscape+"'", contains(strings.ToLower(s)))
}

// contains builds a LIKE pattern matching s literally anywhere in the column.
func contains(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(s) + "%"
}
