package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/adapters/persistence/repositories"
	"godavari-scm/internal/core/domain"
	"godavari-scm/internal/pkg/datemath"

	"gorm.io/gorm"
)

// Actor identifies the authenticated user performing an operation.
// Operators are pinned to their assigned location; admins see everything.
type Actor struct {
	ID         uint
	Role       string
	LocationID *uint
}

// CanAccessLocation reports whether the actor may act on records of the
// given location.
func (a Actor) CanAccessLocation(locationID uint) bool {
	if a.Role == models.RoleAdmin {
		return true
	}
	return a.LocationID != nil && *a.LocationID == locationID
}

// StorageService handles storage registration, listing and dues reads
type StorageService struct {
	storageRepo   repositories.StorageRepository
	customerRepo  repositories.CustomerRepository
	locationRepo  repositories.LocationRepository
	notifyService *NotificationService
	emailService  *EmailService
}

// NewStorageService creates a new storage service
func NewStorageService(
	storageRepo repositories.StorageRepository,
	customerRepo repositories.CustomerRepository,
	locationRepo repositories.LocationRepository,
	notifyService *NotificationService,
	emailService *EmailService,
) *StorageService {
	return &StorageService{
		storageRepo:   storageRepo,
		customerRepo:  customerRepo,
		locationRepo:  locationRepo,
		notifyService: notifyService,
		emailService:  emailService,
	}
}

// CreateStorageInput represents a registration request
type CreateStorageInput struct {
	ExistingCustomerID *uint   `json:"existing_customer_id"`
	CustomerName       string  `json:"customer_name"`
	CustomerPhone      string  `json:"customer_phone"`
	CustomerEmail      string  `json:"customer_email"`
	CustomerAddress    string  `json:"customer_address"`
	LocationID         uint    `json:"location_id" validate:"required"`
	NumberOfPots       int     `json:"number_of_pots" validate:"required,gt=0"`
	RegistrationDate   string  `json:"registration_date" validate:"required"`
	PaymentMethod      string  `json:"payment_method" validate:"required"`
	PaymentAmount      float64 `json:"payment_amount" validate:"required,gt=0"`
	TransactionID      string  `json:"transaction_id"`
}

// CreateStorageOutput bundles the created records
type CreateStorageOutput struct {
	Storage  *models.Storage  `json:"storage"`
	Customer *models.Customer `json:"customer"`
	Payment  *models.Payment  `json:"payment"`
}

// Create registers a new storage entry: expiry is one month after the
// registration date, the initial payment is recorded as COMPLETED and a
// REGISTRATION notification goes out.
func (s *StorageService) Create(ctx context.Context, input *CreateStorageInput, actor Actor) (*CreateStorageOutput, error) {
	if !actor.CanAccessLocation(input.LocationID) {
		return nil, domain.ErrLocationScope
	}

	if _, err := s.locationRepo.GetByID(ctx, input.LocationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, err
	}

	registrationDate, err := time.Parse("2006-01-02", input.RegistrationDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	customer, err := s.resolveCustomer(ctx, input, actor)
	if err != nil {
		return nil, err
	}

	storage := &models.Storage{
		CustomerID:       customer.ID,
		NumberOfPots:     input.NumberOfPots,
		RegistrationDate: registrationDate,
		ExpiryDate:       datemath.AddMonths(registrationDate, 1),
		Status:           models.StorageStatusActive,
		LocationID:       input.LocationID,
		OperatorID:       actor.ID,
	}

	if err := s.storageRepo.Create(ctx, storage); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		StorageID:   storage.ID,
		Amount:      input.PaymentAmount,
		Status:      models.PaymentStatusCompleted,
		Method:      strings.ToUpper(input.PaymentMethod),
		PaymentDate: time.Now(),
		OperatorID:  actor.ID,
	}
	if input.TransactionID != "" {
		payment.TransactionID = &input.TransactionID
	}

	// The initial payment belongs to the registration; append it through
	// the same transactional path renewals use.
	if err := s.storageRepo.RenewWithPayment(ctx, storage, payment); err != nil {
		return nil, err
	}

	s.notifyService.Emit(ctx,
		models.NotifyTypeRegistration,
		RegistrationMessage(storage.ExpiryDate),
		customer.Phone,
		storage.ID,
		&actor.ID,
	)

	if location, err := s.locationRepo.GetByID(ctx, input.LocationID); err == nil {
		s.emailService.NotifyRegistration(customer.Name, storage.NumberOfPots, location.Name)
	}

	storage.Customer = customer
	return &CreateStorageOutput{
		Storage:  storage,
		Customer: customer,
		Payment:  payment,
	}, nil
}

// resolveCustomer finds the referenced customer or creates a new one
func (s *StorageService) resolveCustomer(ctx context.Context, input *CreateStorageInput, actor Actor) (*models.Customer, error) {
	if input.ExistingCustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.ExistingCustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrCustomerNotFound
			}
			return nil, err
		}
		return customer, nil
	}

	if input.CustomerName == "" || input.CustomerPhone == "" {
		return nil, domain.ErrInvalidInput
	}

	customer := &models.Customer{
		Name:       input.CustomerName,
		Phone:      input.CustomerPhone,
		Address:    input.CustomerAddress,
		LocationID: input.LocationID,
		OperatorID: actor.ID,
	}
	if input.CustomerEmail != "" {
		customer.Email = &input.CustomerEmail
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListInput represents a storage listing request
type ListInput struct {
	Status     string
	LocationID *uint
	SortBy     string
}

// List returns storage records after a status sweep, so no listing serves
// a stale status. Operators only ever see their own location.
func (s *StorageService) List(ctx context.Context, input *ListInput, actor Actor) ([]*models.Storage, error) {
	if err := SweepStatuses(ctx, s.storageRepo, time.Now()); err != nil {
		log.Printf("⚠️ Status sweep failed: %v", err)
	}

	filter := &repositories.StorageFilter{
		Status: input.Status,
		SortBy: input.SortBy,
	}

	if actor.Role == models.RoleOperator {
		filter.LocationID = actor.LocationID
	} else {
		filter.LocationID = input.LocationID
	}

	return s.storageRepo.List(ctx, filter)
}

// Get loads a storage record, re-evaluates its status against the clock
// and persists the change when the stored status drifted.
func (s *StorageService) Get(ctx context.Context, id uint, actor Actor) (*models.Storage, error) {
	storage, err := s.storageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStorageNotFound
		}
		return nil, err
	}

	if !actor.CanAccessLocation(storage.LocationID) {
		return nil, domain.ErrLocationScope
	}

	current := EvaluateStatus(storage.Status, storage.ExpiryDate, time.Now())
	if current != storage.Status {
		storage.Status = current
		if err := s.storageRepo.UpdateWithVersion(ctx, storage); err != nil {
			// A concurrent mutation already refreshed the record; the
			// re-read below is not worth a failure on a read path.
			if !errors.Is(err, domain.ErrVersionConflict) {
				return nil, err
			}
		}
	}

	return storage, nil
}

// Dues computes the dues snapshot for a storage record
func (s *StorageService) Dues(ctx context.Context, id uint, actor Actor) (*DuesSnapshot, error) {
	storage, err := s.Get(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	return ComputeDues(storage), nil
}
