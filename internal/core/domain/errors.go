package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUserNotApproved   = errors.New("user account pending approval")
)

// Storage errors
var (
	ErrStorageNotFound  = errors.New("storage record not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrAlreadyDelivered = errors.New("storage has already been delivered")
	ErrLocationScope    = errors.New("storage belongs to another location")
	ErrVersionConflict  = errors.New("storage record was modified concurrently")
)

// OTP errors
var (
	ErrOTPNotFound    = errors.New("no OTP requested for this phone")
	ErrOTPExpired     = errors.New("OTP has expired")
	ErrOTPInvalid     = errors.New("OTP code is incorrect")
	ErrOTPUsed        = errors.New("OTP has already been used")
	ErrOTPMaxAttempts = errors.New("too many incorrect OTP attempts")
	ErrOTPTooSoon     = errors.New("please wait before requesting a new OTP")
)

// InsufficientPaymentError is returned when a renewal payment is below the
// minimum for the requested number of months.
type InsufficientPaymentError struct {
	Required float64
	Months   int
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("payment amount must be at least %.2f for %d month(s)", e.Required, e.Months)
}

// PendingDuesError blocks delivery while any due remains outstanding.
type PendingDuesError struct {
	Outstanding float64
}

func (e *PendingDuesError) Error() string {
	return fmt.Sprintf("cannot deliver storage with pending dues of %.2f", e.Outstanding)
}
