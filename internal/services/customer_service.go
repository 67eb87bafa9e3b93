package services

import (
	"context"
	"fmt"
	"time"

	"customerapi/internal/apperrors"
	"customerapi/internal/models"
	"customerapi/internal/repositories"
	"customerapi/internal/validation"
	"customerapi/pkg/logger"

	"go.uber.org/zap"
)

// PasswordHasher hashes and verifies password hash records.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(record, password string) (verified bool, needsUpgrade bool, err error)
}

// EventPublisher receives customer lifecycle events.
type EventPublisher interface {
	PublishCustomerEvent(event models.CustomerEvent) error
}

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo      repositories.CustomerRepository
	validator *validation.CustomerValidator
	hasher    PasswordHasher
	events    EventPublisher
	now       func() time.Time
}

// Option customizes a CustomerService.
type Option func(*CustomerService)

// WithEventPublisher publishes an event after each successful mutation.
func WithEventPublisher(p EventPublisher) Option {
	return func(s *CustomerService) { s.events = p }
}

// WithClock overrides the time source used for created/updated stamps.
func WithClock(now func() time.Time) Option {
	return func(s *CustomerService) { s.now = now }
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository, validator *validation.CustomerValidator, hasher PasswordHasher, opts ...Option) *CustomerService {
	s := &CustomerService{
		repo:      repo,
		validator: validator,
		hasher:    hasher,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetByFilter returns the first customer matching filter, or nil when none does.
func (s *CustomerService) GetByFilter(ctx context.Context, filter *models.CustomerFilter) (*models.Customer, error) {
	if filter == nil {
		return nil, apperrors.Validation("filter", "filter is required")
	}
	return s.repo.GetByFilter(ctx, *filter)
}

// GetByID returns the customer with id, or nil when it does not exist.
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	if id <= 0 {
		return nil, apperrors.Validation("id", "id must be greater than zero")
	}
	return s.GetByFilter(ctx, &models.CustomerFilter{ID: id})
}

// GetListByFilter returns one page of customers matching filter.
func (s *CustomerService) GetListByFilter(ctx context.Context, filter *models.CustomerFilter) (*models.Pagination[models.Customer], error) {
	if filter == nil {
		return nil, apperrors.Validation("filter", "filter is required")
	}
	if filter.PageSize > models.MaxPageSize {
		return nil, apperrors.Validation("pageSize", fmt.Sprintf("page size must not exceed %d", models.MaxPageSize))
	}
	if filter.CurrentPage > 0 && filter.PageSize < 1 {
		return nil, apperrors.Validation("pageSize", "page size must be at least 1")
	}

	f := *filter
	// Historical behavior: a non-positive page collapses the page size, not the page.
	if f.CurrentPage <= 0 {
		f.PageSize = 1
	}

	count, err := s.repo.CountByFilter(ctx, f)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return models.EmptyPagination[models.Customer](f.CurrentPage, f.PageSize), nil
	}

	customers, err := s.repo.GetListByFilter(ctx, f)
	if err != nil {
		return nil, err
	}
	return models.NewPagination(customers, count, f.CurrentPage, f.PageSize), nil
}

// Create validates and stores a new customer, returning its ID.
// customer.Password holds plaintext on input and the hash record on return.
func (s *CustomerService) Create(ctx context.Context, customer *models.Customer) (int64, error) {
	if customer == nil {
		return 0, apperrors.Validation("customer", "customer is required")
	}
	if err := s.validator.Validate(customer); err != nil {
		return 0, err
	}
	if err := s.ensureEmailAvailable(ctx, customer.Email); err != nil {
		return 0, err
	}

	hash, err := s.hasher.Hash(customer.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}
	customer.ID = 0
	customer.Password = hash
	customer.Created = s.now()
	customer.Updated = nil

	if err := s.repo.Create(ctx, customer); err != nil {
		return 0, translateStorage(err)
	}

	logger.FromContext(ctx).Info("customer created", zap.Int64("customerId", customer.ID))
	s.publish(ctx, models.CustomerCreated, customer)
	return customer.ID, nil
}

// Update applies incoming to the customer with id. The password is kept when
// incoming.Password verifies against the stored hash and replaced otherwise.
func (s *CustomerService) Update(ctx context.Context, id int64, incoming *models.Customer) error {
	if id <= 0 {
		return apperrors.Validation("id", "id must be greater than zero")
	}
	if incoming == nil {
		return apperrors.Validation("customer", "customer is required")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.NotFound("customer", id)
	}

	if err := s.validator.Validate(incoming); err != nil {
		return err
	}
	if incoming.Email != existing.Email {
		if err := s.ensureEmailAvailable(ctx, incoming.Email); err != nil {
			return err
		}
	}

	existing.Email = incoming.Email
	existing.FirstName = incoming.FirstName
	existing.Surname = incoming.Surname

	verified, needsUpgrade, err := s.hasher.Check(existing.Password, incoming.Password)
	if err != nil {
		return fmt.Errorf("failed to verify stored password of customer %d: %w", id, err)
	}
	if !verified || needsUpgrade {
		hash, err := s.hasher.Hash(incoming.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		existing.Password = hash
	}

	now := s.now()
	existing.Updated = &now

	if err := s.repo.Update(ctx, existing); err != nil {
		return translateStorage(err)
	}

	logger.FromContext(ctx).Info("customer updated",
		zap.Int64("customerId", id),
		zap.Bool("passwordChanged", !verified),
		zap.Bool("passwordRehashed", verified && needsUpgrade),
	)
	s.publish(ctx, models.CustomerUpdated, existing)
	return nil
}

// Delete removes the customer with id.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.Validation("id", "id must be greater than zero")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.NotFound("customer", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("customer deleted", zap.Int64("customerId", id))
	s.publish(ctx, models.CustomerDeleted, existing)
	return nil
}

// IsAvailableEmail reports whether no customer has exactly this email.
func (s *CustomerService) IsAvailableEmail(ctx context.Context, email string) (bool, error) {
	existing, err := s.repo.GetByFilter(ctx, models.CustomerFilter{Email: email})
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

func (s *CustomerService) ensureEmailAvailable(ctx context.Context, email string) error {
	available, err := s.IsAvailableEmail(ctx, email)
	if err != nil {
		return err
	}
	if !available {
		return emailNotAvailable()
	}
	return nil
}

func emailNotAvailable() error {
	return apperrors.Validation(validation.FieldEmail, "email is not available")
}

var columnFields = map[string]string{
	"email":      validation.FieldEmail,
	"first_name": validation.FieldFirstName,
	"surname":    validation.FieldSurname,
	"password":   validation.FieldPassword,
}

// translateStorage re-surfaces constraint violations from a lost race as validation errors.
func translateStorage(err error) error {
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Kind != apperrors.KindStorage {
		return err
	}
	switch appErr.Violation {
	case apperrors.ViolationUnique:
		return emailNotAvailable()
	case apperrors.ViolationNotNull:
		field, ok := columnFields[appErr.Field]
		if !ok {
			field = "customer"
		}
		return apperrors.Validation(field, field+" is required")
	}
	return err
}

func (s *CustomerService) publish(ctx context.Context, eventType models.CustomerEventType, c *models.Customer) {
	if s.events == nil {
		return
	}
	event := models.CustomerEvent{
		Type:          eventType,
		CustomerID:    c.ID,
		Email:         c.Email,
		CorrelationID: logger.CorrelationID(ctx),
		OccurredAt:    s.now(),
	}
	if err := s.events.PublishCustomerEvent(event); err != nil {
		logger.FromContext(ctx).Warn("failed to publish customer event",
			zap.String("event", string(eventType)),
			zap.Int64("customerId", c.ID),
			zap.Error(err),
		)
	}
}
