package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/adapters/persistence/repositories"
	"godavari-scm/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryService hands storage records over to their receivers
type DeliveryService struct {
	storageRepo   repositories.StorageRepository
	notifyService *NotificationService
	emailService  *EmailService
	otpService    *OTPService
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(
	storageRepo repositories.StorageRepository,
	notifyService *NotificationService,
	emailService *EmailService,
	otpService *OTPService,
) *DeliveryService {
	return &DeliveryService{
		storageRepo:   storageRepo,
		notifyService: notifyService,
		emailService:  emailService,
		otpService:    otpService,
	}
}

// DeliverInput represents a delivery request
type DeliverInput struct {
	StorageID        uint   `json:"storage_id" validate:"required"`
	ReceiverName     string `json:"receiver_name" validate:"required,min=2,max=100"`
	ReceiverRelation string `json:"receiver_relation" validate:"required,min=2,max=50"`
	ReceiverPhone    string `json:"receiver_phone"`
	OTPCode          string `json:"otp_code"`
}

// DeliverOutput bundles the delivered storage and its receipt
type DeliverOutput struct {
	Storage  *models.Storage  `json:"storage"`
	Delivery *models.Delivery `json:"delivery"`
}

// Deliver marks a storage record DELIVERED and writes the handover receipt.
// Delivery is refused while any due is outstanding and is permanent once
// applied. When an OTP code is supplied it is verified against the
// customer's phone before anything changes.
func (s *DeliveryService) Deliver(ctx context.Context, input *DeliverInput, actor Actor) (*DeliverOutput, error) {
	if strings.TrimSpace(input.ReceiverName) == "" || strings.TrimSpace(input.ReceiverRelation) == "" {
		return nil, domain.ErrInvalidInput
	}

	storage, err := s.storageRepo.GetByID(ctx, input.StorageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStorageNotFound
		}
		return nil, err
	}

	if !actor.CanAccessLocation(storage.LocationID) {
		return nil, domain.ErrLocationScope
	}

	if storage.IsDelivered() {
		return nil, domain.ErrAlreadyDelivered
	}

	dues := ComputeDues(storage)
	if dues.HasPendingDues {
		return nil, &domain.PendingDuesError{Outstanding: dues.TotalDue}
	}

	if input.OTPCode != "" && storage.Customer != nil {
		if err := s.otpService.Verify(ctx, storage.Customer.Phone, models.OTPPurposeDelivery, input.OTPCode); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	storage.Status = models.StorageStatusDelivered

	delivery := &models.Delivery{
		StorageID:        storage.ID,
		ReceiptNumber:    newReceiptNumber(now),
		ReceiverName:     strings.TrimSpace(input.ReceiverName),
		ReceiverRelation: strings.TrimSpace(input.ReceiverRelation),
		ReceiverPhone:    input.ReceiverPhone,
		DeliveredAt:      now,
		OperatorID:       actor.ID,
	}

	if err := s.storageRepo.DeliverWithReceipt(ctx, storage, delivery); err != nil {
		return nil, err
	}

	if storage.Customer != nil {
		s.notifyService.Emit(ctx,
			models.NotifyTypeDeliveryConfirmation,
			DeliveryConfirmationMessage(delivery.ReceiverName),
			storage.Customer.Phone,
			storage.ID,
			&actor.ID,
		)
		s.emailService.NotifyDelivery(storage.Customer.Name, delivery.ReceiverName, delivery.ReceiverRelation)
	}

	storage.Delivery = delivery
	return &DeliverOutput{Storage: storage, Delivery: delivery}, nil
}

// newReceiptNumber builds a human-readable receipt id with a random suffix
func newReceiptNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("RCP-%s-%s", now.Format("20060102"), suffix)
}
