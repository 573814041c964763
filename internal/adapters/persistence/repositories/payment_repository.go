package repositories

import (
	"context"
	"time"

	"godavari-scm/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// paymentRepository is the GORM implementation of PaymentRepository
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create appends a payment record
func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// GetByStorageID gets payments for a storage record, newest first
func (r *paymentRepository) GetByStorageID(ctx context.Context, storageID uint) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("storage_id = ?", storageID).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

// notificationRepository is the GORM implementation of NotificationRepository
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create appends a notification log entry
func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// GetByStorageID gets notifications for a storage record, newest first
func (r *notificationRepository) GetByStorageID(ctx context.Context, storageID uint) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Where("storage_id = ?", storageID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkSent records a successful dispatch
func (r *notificationRepository) MarkSent(ctx context.Context, id uint, sentAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.NotifyStatusSent,
			"sent_at": sentAt,
		}).Error
}

// MarkFailed records a failed dispatch
func (r *notificationRepository) MarkFailed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("status", models.NotifyStatusFailed).Error
}

// ExistsSince reports whether a notification of the given type was already
// created for the storage record after the given time. Used to keep the
// reminder sweep to one message per record per day.
func (r *notificationRepository) ExistsSince(ctx context.Context, storageID uint, notifyType string, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("storage_id = ? AND type = ? AND created_at >= ?", storageID, notifyType, since).
		Count(&count).Error
	return count > 0, err
}
