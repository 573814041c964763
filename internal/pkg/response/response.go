package response

import "github.com/gofiber/fiber/v2"

// Response is the envelope every endpoint answers with. Amounts holds the
// numeric fields some payment errors carry (required minimum, outstanding
// due) so clients can act on them without parsing the message.
type Response struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Data    interface{}        `json:"data,omitempty"`
	Error   string             `json:"error,omitempty"`
	Amounts map[string]float64 `json:"amounts,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// BadRequestWithAmount sends a 400 response carrying a named amount next to
// the error message. The amount is also mirrored as a top-level field, which
// is the shape the mobile client reads.
func BadRequestWithAmount(c *fiber.Ctx, message, field string, amount float64) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"amounts": map[string]float64{field: amount},
		field:     amount,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
