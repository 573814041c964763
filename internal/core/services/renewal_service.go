package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/adapters/persistence/repositories"
	"godavari-scm/internal/core/domain"
	"godavari-scm/internal/pkg/datemath"

	"gorm.io/gorm"
)

// RenewalService extends storage periods against payment
type RenewalService struct {
	storageRepo   repositories.StorageRepository
	locationRepo  repositories.LocationRepository
	notifyService *NotificationService
}

// NewRenewalService creates a new renewal service
func NewRenewalService(
	storageRepo repositories.StorageRepository,
	locationRepo repositories.LocationRepository,
	notifyService *NotificationService,
) *RenewalService {
	return &RenewalService{
		storageRepo:   storageRepo,
		locationRepo:  locationRepo,
		notifyService: notifyService,
	}
}

// RenewInput represents a renewal request
type RenewInput struct {
	StorageID     uint    `json:"storage_id" validate:"required"`
	Months        int     `json:"months" validate:"required,gte=1"`
	PaymentAmount float64 `json:"payment_amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
	TransactionID string  `json:"transaction_id"`
}

// RenewOutput bundles the updated storage and the recorded payment
type RenewOutput struct {
	Storage *models.Storage `json:"storage"`
	Payment *models.Payment `json:"payment"`
}

// Renew extends the expiry date by the requested months and records the
// payment. The payment must cover at least months times the monthly rate.
// Extension always counts from the current expiry date, so a renewal paid
// late does not shift the billing anchor. The storage update and the
// payment row commit in one transaction guarded by the record version.
func (s *RenewalService) Renew(ctx context.Context, input *RenewInput, actor Actor) (*RenewOutput, error) {
	if input.Months < 1 {
		return nil, domain.ErrInvalidInput
	}

	minimum := float64(input.Months) * RenewalRatePerMonth
	if input.PaymentAmount < minimum {
		return nil, &domain.InsufficientPaymentError{Required: minimum, Months: input.Months}
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

	now := time.Now()
	storage.ExpiryDate = datemath.AddMonths(storage.ExpiryDate, input.Months)
	// A paid renewal always resets the record to ACTIVE, even when the
	// extension does not carry the expiry past today. The read path
	// re-evaluates drift afterwards.
	storage.Status = models.StorageStatusActive

	payment := &models.Payment{
		StorageID:   storage.ID,
		Amount:      input.PaymentAmount,
		Status:      models.PaymentStatusCompleted,
		Method:      strings.ToUpper(input.PaymentMethod),
		PaymentDate: now,
		OperatorID:  actor.ID,
	}
	if input.TransactionID != "" {
		payment.TransactionID = &input.TransactionID
	}

	if err := s.storageRepo.RenewWithPayment(ctx, storage, payment); err != nil {
		return nil, err
	}

	venueName := "our facility"
	if location, err := s.locationRepo.GetByID(ctx, storage.LocationID); err == nil {
		venueName = location.Name
	}

	if storage.Customer != nil {
		s.notifyService.Emit(ctx,
			models.NotifyTypeRenewalConfirmation,
			RenewalConfirmationMessage(venueName, input.Months),
			storage.Customer.Phone,
			storage.ID,
			&actor.ID,
		)
	}

	return &RenewOutput{Storage: storage, Payment: payment}, nil
}
