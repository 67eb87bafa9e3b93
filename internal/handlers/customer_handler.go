package handlers

import (
	"fmt"
	"strings"

	"customerapi/internal/apperrors"
	"customerapi/internal/models"
	"customerapi/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	service  *services.CustomerService
	validate *validator.Validate
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		service:  service,
		validate: newRequestValidator(),
	}
}

// RegisterRoutes registers the customer routes under router.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	customerRoutes := router.Group("/customer")
	customerRoutes.Get("/", h.HandleGetCustomers)
	customerRoutes.Get("/:id", h.HandleGetCustomerByID)
	customerRoutes.Post("/", h.HandleCreateCustomer)
	customerRoutes.Put("/:id", h.HandleUpdateCustomer)
	customerRoutes.Delete("/:id", h.HandleDeleteCustomer)
}

// HandleGetCustomers returns one page of customers matching the query string.
func (h *CustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	var query CustomerListQuery
	if err := c.QueryParser(&query); err != nil {
		return apperrors.Validation("query", "query string could not be parsed")
	}
	if err := validateRequest(h.validate, query); err != nil {
		return err
	}

	page, err := h.service.GetListByFilter(c.UserContext(), toCustomerFilter(query))
	if err != nil {
		return err
	}
	return c.JSON(models.MapPagination(page, toCustomerResponse))
}

// HandleGetCustomerByID retrieves a single customer by its ID.
func (h *CustomerHandler) HandleGetCustomerByID(c *fiber.Ctx) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	customer, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperrors.NotFound("customer", id)
	}
	return c.JSON(toCustomerResponse(*customer))
}

// HandleCreateCustomer creates a customer and points Location at it.
func (h *CustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	req, err := h.bindCustomerRequest(c)
	if err != nil {
		return err
	}

	customer := toCustomer(req)
	id, err := h.service.Create(c.UserContext(), customer)
	if err != nil {
		return err
	}

	c.Location(fmt.Sprintf("%s/%d", strings.TrimSuffix(c.Path(), "/"), id))
	return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(*customer))
}

// HandleUpdateCustomer replaces the mutable fields of a customer.
func (h *CustomerHandler) HandleUpdateCustomer(c *fiber.Ctx) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}
	req, err := h.bindCustomerRequest(c)
	if err != nil {
		return err
	}

	if err := h.service.Update(c.UserContext(), id, toCustomer(req)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteCustomer removes a customer.
func (h *CustomerHandler) HandleDeleteCustomer(c *fiber.Ctx) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CustomerHandler) bindCustomerRequest(c *fiber.Ctx) (CustomerRequest, error) {
	var req CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.Validation("body", "request body is not valid JSON")
	}
	if err := validateRequest(h.validate, req); err != nil {
		return req, err
	}
	return req, nil
}

func customerID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("id", "id must be a positive integer")
	}
	return int64(id), nil
}
