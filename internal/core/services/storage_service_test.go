package services

import (
	"context"
	"testing"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorageFixture(t *testing.T) (*StorageService, *fakeStorageRepo, *fakeCustomerRepo, *fakeNotificationRepo) {
	t.Helper()
	storageRepo := newFakeStorageRepo()
	customerRepo := newFakeCustomerRepo()
	notifRepo := &fakeNotificationRepo{}
	locationRepo := newFakeLocationRepo(&models.Location{ID: 1, Name: "Rajahmundry Ghat"})
	svc := NewStorageService(storageRepo, customerRepo, locationRepo, newTestNotifyService(notifRepo), newDisabledEmail())
	return svc, storageRepo, customerRepo, notifRepo
}

func TestCreateStorage_NewCustomer(t *testing.T) {
	svc, repo, customerRepo, notifRepo := newStorageFixture(t)

	out, err := svc.Create(context.Background(), &CreateStorageInput{
		CustomerName:     "Rama Rao",
		CustomerPhone:    "9876543210",
		LocationID:       1,
		NumberOfPots:     2,
		RegistrationDate: "2025-01-31",
		PaymentMethod:    "cash",
		PaymentAmount:    500,
	}, adminActor())
	require.NoError(t, err)

	// One month out, clamped to the end of February.
	assert.Equal(t, date(2025, time.February, 28), out.Storage.ExpiryDate)
	assert.Equal(t, models.StorageStatusActive, out.Storage.Status)
	assert.Equal(t, models.PaymentStatusCompleted, out.Payment.Status)
	assert.Equal(t, 500.0, out.Payment.Amount)

	assert.Len(t, customerRepo.customers, 1)
	assert.Len(t, repo.storages[out.Storage.ID].Payments, 1)

	require.Len(t, notifRepo.notifications, 1)
	assert.Equal(t, models.NotifyTypeRegistration, notifRepo.notifications[0].Type)
}

func TestCreateStorage_ExistingCustomer(t *testing.T) {
	svc, _, customerRepo, _ := newStorageFixture(t)
	existing := &models.Customer{ID: 7, Name: "Rama Rao", Phone: "9876543210", LocationID: 1}
	customerRepo.customers[existing.ID] = existing

	out, err := svc.Create(context.Background(), &CreateStorageInput{
		ExistingCustomerID: uintPtr(7),
		LocationID:         1,
		NumberOfPots:       1,
		RegistrationDate:   "2025-03-01",
		PaymentMethod:      "upi",
		PaymentAmount:      500,
	}, adminActor())
	require.NoError(t, err)

	assert.Equal(t, uint(7), out.Storage.CustomerID)
	assert.Len(t, customerRepo.customers, 1)
}

func TestCreateStorage_UnknownLocation(t *testing.T) {
	svc, _, _, _ := newStorageFixture(t)

	_, err := svc.Create(context.Background(), &CreateStorageInput{
		CustomerName:     "Rama Rao",
		CustomerPhone:    "9876543210",
		LocationID:       99,
		NumberOfPots:     1,
		RegistrationDate: "2025-03-01",
		PaymentMethod:    "cash",
		PaymentAmount:    500,
	}, adminActor())

	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestCreateStorage_OperatorCannotUseOtherLocation(t *testing.T) {
	svc, _, _, _ := newStorageFixture(t)
	operator := Actor{ID: 2, Role: models.RoleOperator, LocationID: uintPtr(2)}

	_, err := svc.Create(context.Background(), &CreateStorageInput{
		CustomerName:     "Rama Rao",
		CustomerPhone:    "9876543210",
		LocationID:       1,
		NumberOfPots:     1,
		RegistrationDate: "2025-03-01",
		PaymentMethod:    "cash",
		PaymentAmount:    500,
	}, operator)

	assert.ErrorIs(t, err, domain.ErrLocationScope)
}

func TestGetStorage_RefreshesStaleStatus(t *testing.T) {
	svc, repo, _, _ := newStorageFixture(t)
	storage := repo.add(&models.Storage{
		RegistrationDate: date(2025, time.January, 1),
		ExpiryDate:       date(2025, time.February, 1),
		Status:           models.StorageStatusActive,
		LocationID:       1,
	})

	got, err := svc.Get(context.Background(), storage.ID, adminActor())
	require.NoError(t, err)

	assert.Equal(t, models.StorageStatusExpired, got.Status)
	assert.Equal(t, models.StorageStatusExpired, repo.storages[storage.ID].Status)
}

func TestListStorage_SweepsBeforeListing(t *testing.T) {
	svc, repo, _, _ := newStorageFixture(t)
	repo.add(&models.Storage{
		RegistrationDate: date(2025, time.January, 1),
		ExpiryDate:       date(2025, time.February, 1),
		Status:           models.StorageStatusActive,
		LocationID:       1,
	})

	out, err := svc.List(context.Background(), &ListInput{Status: models.StorageStatusExpired}, adminActor())
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestListStorage_OperatorScopedToOwnLocation(t *testing.T) {
	svc, repo, _, _ := newStorageFixture(t)
	repo.add(&models.Storage{ExpiryDate: date(2099, time.January, 1), Status: models.StorageStatusActive, LocationID: 1})
	repo.add(&models.Storage{ExpiryDate: date(2099, time.January, 1), Status: models.StorageStatusActive, LocationID: 2})

	operator := Actor{ID: 2, Role: models.RoleOperator, LocationID: uintPtr(2)}
	out, err := svc.List(context.Background(), &ListInput{}, operator)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, uint(2), out[0].LocationID)
}
