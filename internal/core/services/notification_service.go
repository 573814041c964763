package services

import (
	"context"
	"log"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/adapters/persistence/repositories"
)

// NotificationService appends entries to the notification log and pushes
// them out through the SMS gateway. Dispatch failures are logged and marked
// on the log entry; they never fail the operation that emitted the event.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	smsService       *SMSService
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repositories.NotificationRepository, smsService *SMSService) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		smsService:       smsService,
	}
}

// Emit records a notification for a storage record and sends the message to
// the customer's phone. Returns the log entry; never returns a dispatch
// error.
func (s *NotificationService) Emit(ctx context.Context, notifyType, message, phone string, storageID uint, operatorID *uint) *models.Notification {
	notification := &models.Notification{
		Type:       notifyType,
		Message:    message,
		Status:     models.NotifyStatusPending,
		StorageID:  storageID,
		OperatorID: operatorID,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		// The log entry is bookkeeping; the SMS still goes out.
		log.Printf("⚠️ Failed to record %s notification for storage %d: %v", notifyType, storageID, err)
	}

	if err := s.smsService.Send(phone, message); err != nil {
		log.Printf("⚠️ Failed to send %s SMS for storage %d: %v", notifyType, storageID, err)
		if notification.ID != 0 {
			s.notificationRepo.MarkFailed(ctx, notification.ID)
		}
		notification.Status = models.NotifyStatusFailed
		return notification
	}

	now := time.Now()
	if notification.ID != 0 {
		s.notificationRepo.MarkSent(ctx, notification.ID, now)
	}
	notification.Status = models.NotifyStatusSent
	notification.SentAt = &now
	return notification
}

// History returns the notification log for a storage record
func (s *NotificationService) History(ctx context.Context, storageID uint) ([]*models.Notification, error) {
	return s.notificationRepo.GetByStorageID(ctx, storageID)
}
