package handlers

import (
	"errors"

	"godavari-scm/internal/adapters/http/middleware"
	"godavari-scm/internal/core/domain"
	"godavari-scm/internal/core/services"
	"godavari-scm/internal/pkg/pagination"
	"godavari-scm/internal/pkg/response"
	"godavari-scm/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	customerService *services.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List lists customers
// @Summary List customers
// @Description List customers with pagination, scoped to the operator's location
// @Tags Customers
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} pagination.Response
// @Security BearerAuth
// @Router /customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	customers, meta, err := h.customerService.List(c.Context(), params, middleware.ActorFromContext(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to list customers")
	}

	return c.JSON(pagination.Response{Data: customers, Meta: meta})
}

// Search finds customers by name or phone fragment
// @Summary Search customers
// @Description Search customers for the registration form's existing-customer picker
// @Tags Customers
// @Produce json
// @Param q query string true "Name or phone fragment"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /customers/search [get]
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	customers, err := h.customerService.Search(c.Context(), c.Query("q"), middleware.ActorFromContext(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to search customers")
	}
	return response.Success(c, "Customers retrieved", customers)
}

// Get returns a single customer
// @Summary Get customer
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	customer, err := h.customerService.Get(c.Context(), id, middleware.ActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCustomerNotFound):
			return response.NotFound(c, "Customer not found")
		case errors.Is(err, domain.ErrLocationScope):
			return response.Forbidden(c, "Customer belongs to another location")
		default:
			return response.InternalServerError(c, "Failed to get customer")
		}
	}

	return response.Success(c, "Customer retrieved", customer)
}

// Update edits a customer's contact details
// @Summary Update customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param body body services.UpdateCustomerInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /customers/{id} [patch]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	var req services.UpdateCustomerInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msg := validation.Struct(&req); msg != "" {
		return response.BadRequest(c, msg)
	}

	customer, err := h.customerService.Update(c.Context(), id, &req, middleware.ActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCustomerNotFound):
			return response.NotFound(c, "Customer not found")
		case errors.Is(err, domain.ErrLocationScope):
			return response.Forbidden(c, "Customer belongs to another location")
		default:
			return response.InternalServerError(c, "Failed to update customer")
		}
	}

	return response.Success(c, "Customer updated", customer)
}
