package repositories

import (
	"context"
	"time"

	"godavari-scm/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// otpRepository is the GORM implementation of OTPRepository
type otpRepository struct {
	db *gorm.DB
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{db: db}
}

// Create stores a new OTP code
func (r *otpRepository) Create(ctx context.Context, otp *models.OTPCode) error {
	return r.db.WithContext(ctx).Create(otp).Error
}

// GetLatest gets the most recent OTP for a phone and purpose
func (r *otpRepository) GetLatest(ctx context.Context, phone, purpose string) (*models.OTPCode, error) {
	var otp models.OTPCode
	err := r.db.WithContext(ctx).
		Where("phone = ? AND purpose = ?", phone, purpose).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

// Update saves OTP state (attempts, is_used)
func (r *otpRepository) Update(ctx context.Context, otp *models.OTPCode) error {
	return r.db.WithContext(ctx).Save(otp).Error
}

// DeleteExpired removes codes that expired before the given time
func (r *otpRepository) DeleteExpired(ctx context.Context, before time.Time) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&models.OTPCode{}).Error
}
