package handlers

import (
	"errors"

	"godavari-scm/internal/core/domain"
	"godavari-scm/internal/core/services"
	"godavari-scm/internal/pkg/response"
	"godavari-scm/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// OTPHandler handles OTP endpoints
type OTPHandler struct {
	otpService *services.OTPService
}

// NewOTPHandler creates a new OTP handler
func NewOTPHandler(otpService *services.OTPService) *OTPHandler {
	return &OTPHandler{otpService: otpService}
}

// SendOTPRequest represents an OTP send request
type SendOTPRequest struct {
	Phone   string `json:"phone" validate:"required,min=10,max=15"`
	Purpose string `json:"purpose" validate:"required,oneof=CUSTOMER_VERIFICATION DELIVERY_VERIFICATION"`
}

// VerifyOTPRequest represents an OTP verify request
type VerifyOTPRequest struct {
	Phone   string `json:"phone" validate:"required,min=10,max=15"`
	Purpose string `json:"purpose" validate:"required,oneof=CUSTOMER_VERIFICATION DELIVERY_VERIFICATION"`
	Code    string `json:"code" validate:"required,len=6"`
}

// Send sends a one-time code by SMS
// @Summary Send OTP
// @Description Generate a one-time code and send it to the phone by SMS
// @Tags OTP
// @Accept json
// @Produce json
// @Param body body SendOTPRequest true "Phone and purpose"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Security BearerAuth
// @Router /otp/send [post]
func (h *OTPHandler) Send(c *fiber.Ctx) error {
	var req SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msg := validation.Struct(&req); msg != "" {
		return response.BadRequest(c, msg)
	}

	if err := h.otpService.SendCode(c.Context(), req.Phone, req.Purpose); err != nil {
		if errors.Is(err, domain.ErrOTPTooSoon) {
			return response.Error(c, fiber.StatusTooManyRequests, "Please wait before requesting a new code")
		}
		return response.InternalServerError(c, "Failed to send OTP")
	}

	return response.Success(c, "OTP sent", nil)
}

// Verify checks a submitted code
// @Summary Verify OTP
// @Description Verify a one-time code; the code is consumed on success
// @Tags OTP
// @Accept json
// @Produce json
// @Param body body VerifyOTPRequest true "Phone, purpose and code"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /otp/verify [post]
func (h *OTPHandler) Verify(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msg := validation.Struct(&req); msg != "" {
		return response.BadRequest(c, msg)
	}

	if err := h.otpService.Verify(c.Context(), req.Phone, req.Purpose, req.Code); err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPNotFound),
			errors.Is(err, domain.ErrOTPInvalid),
			errors.Is(err, domain.ErrOTPExpired),
			errors.Is(err, domain.ErrOTPUsed),
			errors.Is(err, domain.ErrOTPMaxAttempts):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to verify OTP")
		}
	}

	return response.Success(c, "OTP verified", nil)
}
