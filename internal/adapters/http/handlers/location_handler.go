package handlers

import (
	"errors"

	"godavari-scm/internal/core/domain"
	"godavari-scm/internal/core/services"
	"godavari-scm/internal/pkg/response"
	"godavari-scm/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// LocationHandler handles storage venue endpoints
type LocationHandler struct {
	locationService *services.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService *services.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// List lists venues
// @Summary List locations
// @Description List storage venues with customer and storage counts
// @Tags Locations
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	locations, err := h.locationService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list locations")
	}
	return response.Success(c, "Locations retrieved", locations)
}

// Get returns a single venue
// @Summary Get location
// @Tags Locations
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /locations/{id} [get]
func (h *LocationHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid location ID")
	}

	location, err := h.locationService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			return response.NotFound(c, "Location not found")
		}
		return response.InternalServerError(c, "Failed to get location")
	}

	return response.Success(c, "Location retrieved", location)
}

// Create adds a venue
// @Summary Create location
// @Description Add a storage venue (admin only)
// @Tags Locations
// @Accept json
// @Produce json
// @Param body body services.LocationInput true "Location data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var req services.LocationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msg := validation.Struct(&req); msg != "" {
		return response.BadRequest(c, msg)
	}

	location, err := h.locationService.Create(c.Context(), &req)
	if err != nil {
		return response.InternalServerError(c, "Failed to create location")
	}

	return response.Created(c, "Location created", location)
}

// Update edits a venue
// @Summary Update location
// @Tags Locations
// @Accept json
// @Produce json
// @Param id path int true "Location ID"
// @Param body body services.LocationInput true "Location data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /locations/{id} [put]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid location ID")
	}

	var req services.LocationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msg := validation.Struct(&req); msg != "" {
		return response.BadRequest(c, msg)
	}

	location, err := h.locationService.Update(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			return response.NotFound(c, "Location not found")
		}
		return response.InternalServerError(c, "Failed to update location")
	}

	return response.Success(c, "Location updated", location)
}

// Delete removes a venue
// @Summary Delete location
// @Tags Locations
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /locations/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid location ID")
	}

	if err := h.locationService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			return response.NotFound(c, "Location not found")
		}
		return response.InternalServerError(c, "Failed to delete location")
	}

	return response.Success(c, "Location deleted", nil)
}
