package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/adapters/persistence/repositories"
	"godavari-scm/internal/core/domain"

	"gorm.io/gorm"
)

const (
	otpLength         = 6
	otpTTL            = 5 * time.Minute
	otpResendCooldown = 1 * time.Minute
	otpMaxAttempts    = 5
)

// OTPService issues and verifies one-time codes. Codes live in the
// database, never leave the server except over SMS, are single-use and
// expire after five minutes.
type OTPService struct {
	otpRepo    repositories.OTPRepository
	smsService *SMSService
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo repositories.OTPRepository, smsService *SMSService) *OTPService {
	return &OTPService{
		otpRepo:    otpRepo,
		smsService: smsService,
	}
}

// SendCode generates a fresh code for the phone/purpose pair and sends it
// by SMS. A second request within the cooldown window is rejected.
func (s *OTPService) SendCode(ctx context.Context, phone, purpose string) error {
	latest, err := s.otpRepo.GetLatest(ctx, phone, purpose)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if latest != nil && !latest.IsUsed && time.Since(latest.CreatedAt) < otpResendCooldown {
		return domain.ErrOTPTooSoon
	}

	code, err := generateCode(otpLength)
	if err != nil {
		return err
	}

	otp := &models.OTPCode{
		Phone:     phone,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return err
	}

	return s.smsService.Send(phone, OTPMessage(code))
}

// Verify checks a submitted code against the latest issued one and consumes
// it on success. Each wrong guess counts against the attempt budget.
func (s *OTPService) Verify(ctx context.Context, phone, purpose, code string) error {
	otp, err := s.otpRepo.GetLatest(ctx, phone, purpose)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOTPNotFound
		}
		return err
	}

	if otp.IsUsed {
		return domain.ErrOTPUsed
	}
	if otp.IsExpired(time.Now()) {
		return domain.ErrOTPExpired
	}
	if otp.Attempts >= otpMaxAttempts {
		return domain.ErrOTPMaxAttempts
	}

	if otp.Code != code {
		otp.Attempts++
		if err := s.otpRepo.Update(ctx, otp); err != nil {
			return err
		}
		return domain.ErrOTPInvalid
	}

	otp.IsUsed = true
	return s.otpRepo.Update(ctx, otp)
}

// CleanupExpired drops codes whose expiry has passed. Called on the cron
// schedule.
func (s *OTPService) CleanupExpired(ctx context.Context) error {
	return s.otpRepo.DeleteExpired(ctx, time.Now())
}

// generateCode builds a zero-padded numeric code from crypto/rand
func generateCode(length int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
