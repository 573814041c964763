package handlers

import (
	"errors"
	"strconv"

	"godavari-scm/internal/adapters/http/middleware"
	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/adapters/persistence/repositories"
	"godavari-scm/internal/core/domain"
	"godavari-scm/internal/core/services"
	"godavari-scm/internal/pkg/response"
	"godavari-scm/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// StorageHandler handles storage endpoints
type StorageHandler struct {
	storageService  *services.StorageService
	renewalService  *services.RenewalService
	deliveryService *services.DeliveryService
	notifyService   *services.NotificationService
	paymentRepo     repositories.PaymentRepository
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(
	storageService *services.StorageService,
	renewalService *services.RenewalService,
	deliveryService *services.DeliveryService,
	notifyService *services.NotificationService,
	paymentRepo repositories.PaymentRepository,
) *StorageHandler {
	return &StorageHandler{
		storageService:  storageService,
		renewalService:  renewalService,
		deliveryService: deliveryService,
		notifyService:   notifyService,
		paymentRepo:     paymentRepo,
	}
}

// Create registers a new storage entry
// @Summary Register storage
// @Description Register ash pots for a new or existing customer
// @Tags Storage
// @Accept json
// @Produce json
// @Param body body services.CreateStorageInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /storages [post]
func (h *StorageHandler) Create(c *fiber.Ctx) error {
	var req services.CreateStorageInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msg := validation.Struct(&req); msg != "" {
		return response.BadRequest(c, msg)
	}

	out, err := h.storageService.Create(c.Context(), &req, middleware.ActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLocationScope):
			return response.Forbidden(c, "You cannot register storage at another location")
		case errors.Is(err, domain.ErrLocationNotFound):
			return response.NotFound(c, "Location not found")
		case errors.Is(err, domain.ErrCustomerNotFound):
			return response.NotFound(c, "Customer not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Customer name, phone and a valid registration date are required")
		default:
			return response.InternalServerError(c, "Failed to register storage")
		}
	}

	return response.Created(c, "Storage registered successfully", fiber.Map{
		"storage":  out.Storage.ToResponse(),
		"customer": out.Customer,
		"payment":  out.Payment,
	})
}

// List lists storage records
// @Summary List storages
// @Description List storage records with status/location filters and sorting
// @Tags Storage
// @Produce json
// @Param status query string false "Status filter (ACTIVE, EXPIRING, EXPIRED, DELIVERED, ALL)"
// @Param location_id query int false "Location filter (admin only)"
// @Param sort_by query string false "Sort key (expiryDate, registrationDate, customerName)"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /storages [get]
func (h *StorageHandler) List(c *fiber.Ctx) error {
	input := &services.ListInput{
		Status: c.Query("status"),
		SortBy: c.Query("sort_by"),
	}
	if raw := c.Query("location_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			locationID := uint(id)
			input.LocationID = &locationID
		}
	}

	storages, err := h.storageService.List(c.Context(), input, middleware.ActorFromContext(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to list storages")
	}

	responses := make([]*models.StorageResponse, 0, len(storages))
	for _, storage := range storages {
		responses = append(responses, storage.ToResponse())
	}

	return response.Success(c, "Storages retrieved", responses)
}

// Get returns a single storage record
// @Summary Get storage
// @Description Get a storage record with payments and customer details
// @Tags Storage
// @Produce json
// @Param id path int true "Storage ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /storages/{id} [get]
func (h *StorageHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid storage ID")
	}

	storage, err := h.storageService.Get(c.Context(), id, middleware.ActorFromContext(c))
	if err != nil {
		return h.mapStorageError(c, err, "Failed to get storage")
	}

	return response.Success(c, "Storage retrieved", storage.ToResponse())
}

// Dues returns the dues snapshot for a storage record
// @Summary Get storage dues
// @Description Compute expected payment, total paid and outstanding due
// @Tags Storage
// @Produce json
// @Param id path int true "Storage ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /storages/{id}/dues [get]
func (h *StorageHandler) Dues(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid storage ID")
	}

	dues, err := h.storageService.Dues(c.Context(), id, middleware.ActorFromContext(c))
	if err != nil {
		return h.mapStorageError(c, err, "Failed to compute dues")
	}

	return response.Success(c, "Dues computed", dues)
}

// Renew extends a storage period
// @Summary Renew storage
// @Description Extend the expiry date against a payment
// @Tags Storage
// @Accept json
// @Produce json
// @Param id path int true "Storage ID"
// @Param body body services.RenewInput true "Renewal data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /storages/{id}/renew [post]
func (h *StorageHandler) Renew(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid storage ID")
	}

	var req services.RenewInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.StorageID = id

	if msg := validation.Struct(&req); msg != "" {
		return response.BadRequest(c, msg)
	}

	out, err := h.renewalService.Renew(c.Context(), &req, middleware.ActorFromContext(c))
	if err != nil {
		var insufficientErr *domain.InsufficientPaymentError
		switch {
		case errors.As(err, &insufficientErr):
			return response.BadRequestWithAmount(c, insufficientErr.Error(), "required_minimum", insufficientErr.Required)
		case errors.Is(err, domain.ErrAlreadyDelivered):
			return response.Conflict(c, "Storage has already been delivered and cannot be renewed")
		case errors.Is(err, domain.ErrVersionConflict):
			return response.Conflict(c, "Storage was modified by another request, please retry")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Months must be at least 1")
		default:
			return h.mapStorageError(c, err, "Failed to renew storage")
		}
	}

	return response.Success(c, "Storage renewed successfully", fiber.Map{
		"storage": out.Storage.ToResponse(),
		"payment": out.Payment,
	})
}

// Deliver hands a storage record over to a receiver
// @Summary Deliver storage
// @Description Mark a storage record as delivered and issue a receipt
// @Tags Storage
// @Accept json
// @Produce json
// @Param id path int true "Storage ID"
// @Param body body services.DeliverInput true "Delivery data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /storages/{id}/deliver [post]
func (h *StorageHandler) Deliver(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid storage ID")
	}

	var req services.DeliverInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.StorageID = id

	if msg := validation.Struct(&req); msg != "" {
		return response.BadRequest(c, msg)
	}

	out, err := h.deliveryService.Deliver(c.Context(), &req, middleware.ActorFromContext(c))
	if err != nil {
		var duesErr *domain.PendingDuesError
		switch {
		case errors.As(err, &duesErr):
			return response.BadRequestWithAmount(c, duesErr.Error(), "outstanding", duesErr.Outstanding)
		case errors.Is(err, domain.ErrAlreadyDelivered):
			return response.BadRequest(c, "Storage has already been delivered")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Receiver name and relation are required")
		case errors.Is(err, domain.ErrVersionConflict):
			return response.Conflict(c, "Storage was modified by another request, please retry")
		case errors.Is(err, domain.ErrOTPInvalid),
			errors.Is(err, domain.ErrOTPExpired),
			errors.Is(err, domain.ErrOTPUsed),
			errors.Is(err, domain.ErrOTPNotFound),
			errors.Is(err, domain.ErrOTPMaxAttempts):
			return response.BadRequest(c, err.Error())
		default:
			return h.mapStorageError(c, err, "Failed to deliver storage")
		}
	}

	return response.Success(c, "Storage delivered successfully", fiber.Map{
		"storage":  out.Storage.ToResponse(),
		"delivery": out.Delivery,
	})
}

// Notifications returns the notification log for a storage record
// @Summary Storage notification history
// @Description List notifications emitted for a storage record
// @Tags Storage
// @Produce json
// @Param id path int true "Storage ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /storages/{id}/notifications [get]
func (h *StorageHandler) Notifications(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid storage ID")
	}

	// Scope check via the storage read path.
	if _, err := h.storageService.Get(c.Context(), id, middleware.ActorFromContext(c)); err != nil {
		return h.mapStorageError(c, err, "Failed to get storage")
	}

	notifications, err := h.notifyService.History(c.Context(), id)
	if err != nil {
		return response.InternalServerError(c, "Failed to list notifications")
	}

	return response.Success(c, "Notifications retrieved", notifications)
}

// Payments returns the payment history for a storage record
// @Summary Storage payment history
// @Description List payments recorded for a storage record, newest first
// @Tags Storage
// @Produce json
// @Param id path int true "Storage ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /storages/{id}/payments [get]
func (h *StorageHandler) Payments(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid storage ID")
	}

	// Scope check via the storage read path.
	if _, err := h.storageService.Get(c.Context(), id, middleware.ActorFromContext(c)); err != nil {
		return h.mapStorageError(c, err, "Failed to get storage")
	}

	payments, err := h.paymentRepo.GetByStorageID(c.Context(), id)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved", payments)
}

// mapStorageError maps the shared storage error cases
func (h *StorageHandler) mapStorageError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrStorageNotFound):
		return response.NotFound(c, "Storage record not found")
	case errors.Is(err, domain.ErrLocationScope):
		return response.Forbidden(c, "Storage belongs to another location")
	default:
		return response.InternalServerError(c, fallback)
	}
}

// parseIDParam parses the :id path parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
