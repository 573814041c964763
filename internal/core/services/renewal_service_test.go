package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/core/domain"
	"godavari-scm/internal/pkg/datemath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminActor() Actor {
	return Actor{ID: 1, Role: models.RoleAdmin}
}

func seedRenewalFixture(repo *fakeStorageRepo, status string, expiry time.Time) *models.Storage {
	return repo.add(&models.Storage{
		CustomerID:       1,
		NumberOfPots:     2,
		RegistrationDate: date(2025, time.January, 1),
		ExpiryDate:       expiry,
		Status:           status,
		LocationID:       1,
		OperatorID:       1,
		Customer:         &models.Customer{ID: 1, Name: "Rama Rao", Phone: "9876543210"},
		Payments:         []models.Payment{completedPayment(500)},
	})
}

func newRenewalFixture(t *testing.T) (*RenewalService, *fakeStorageRepo, *fakeNotificationRepo) {
	t.Helper()
	storageRepo := newFakeStorageRepo()
	notifRepo := &fakeNotificationRepo{}
	locationRepo := newFakeLocationRepo(&models.Location{ID: 1, Name: "Rajahmundry Ghat"})
	svc := NewRenewalService(storageRepo, locationRepo, newTestNotifyService(notifRepo))
	return svc, storageRepo, notifRepo
}

func TestRenew_ExtendsExpiryAndRecordsPayment(t *testing.T) {
	svc, repo, notifRepo := newRenewalFixture(t)
	storage := seedRenewalFixture(repo, models.StorageStatusActive, date(2099, time.February, 1))

	out, err := svc.Renew(context.Background(), &RenewInput{
		StorageID:     storage.ID,
		Months:        2,
		PaymentAmount: 600, // exactly 2 * 300
		PaymentMethod: "cash",
	}, adminActor())
	require.NoError(t, err)

	assert.Equal(t, date(2099, time.April, 1), out.Storage.ExpiryDate)
	assert.Equal(t, models.StorageStatusActive, out.Storage.Status)
	assert.Equal(t, 600.0, out.Payment.Amount)
	assert.Equal(t, models.PaymentStatusCompleted, out.Payment.Status)
	assert.Equal(t, "CASH", out.Payment.Method)

	stored := repo.storages[storage.ID]
	assert.Equal(t, date(2099, time.April, 1), stored.ExpiryDate)
	assert.Len(t, stored.Payments, 2)

	require.Len(t, notifRepo.notifications, 1)
	assert.Equal(t, models.NotifyTypeRenewalConfirmation, notifRepo.notifications[0].Type)
	assert.Equal(t, models.NotifyStatusSent, notifRepo.notifications[0].Status)
}

func TestRenew_InsufficientPayment(t *testing.T) {
	svc, repo, notifRepo := newRenewalFixture(t)
	storage := seedRenewalFixture(repo, models.StorageStatusActive, date(2099, time.February, 1))

	_, err := svc.Renew(context.Background(), &RenewInput{
		StorageID:     storage.ID,
		Months:        2,
		PaymentAmount: 599,
		PaymentMethod: "cash",
	}, adminActor())

	var insufficientErr *domain.InsufficientPaymentError
	require.True(t, errors.As(err, &insufficientErr))
	assert.Equal(t, 600.0, insufficientErr.Required)
	assert.Equal(t, 2, insufficientErr.Months)

	// Nothing changed.
	assert.Len(t, repo.storages[storage.ID].Payments, 1)
	assert.Empty(t, notifRepo.notifications)
}

func TestRenew_ExpiredStorageComesBackActive(t *testing.T) {
	svc, repo, _ := newRenewalFixture(t)
	// Already expired; a 2-month renewal puts the expiry well past now.
	now := time.Now()
	expiry := time.Date(now.Year(), now.Month(), 10, 0, 0, 0, 0, time.UTC)
	storage := seedRenewalFixture(repo, models.StorageStatusExpired, expiry)

	out, err := svc.Renew(context.Background(), &RenewInput{
		StorageID:     storage.ID,
		Months:        2,
		PaymentAmount: 600,
		PaymentMethod: "upi",
	}, adminActor())
	require.NoError(t, err)

	assert.Equal(t, models.StorageStatusActive, out.Storage.Status)
	// The new period counts from the old expiry, not from today.
	assert.Equal(t, expiry.AddDate(0, 2, 0).Format("2006-01-02"), out.Storage.ExpiryDate.Format("2006-01-02"))
}

func TestRenew_LongExpiredRecordResetsToActive(t *testing.T) {
	svc, repo, _ := newRenewalFixture(t)
	// Three months past expiry; a single paid month still leaves the new
	// expiry in the past, but the renewal must reset the status anyway.
	expiry := datemath.AddMonths(time.Now(), -3)
	storage := seedRenewalFixture(repo, models.StorageStatusExpired, expiry)

	out, err := svc.Renew(context.Background(), &RenewInput{
		StorageID:     storage.ID,
		Months:        1,
		PaymentAmount: 300,
		PaymentMethod: "cash",
	}, adminActor())
	require.NoError(t, err)

	assert.Equal(t, models.StorageStatusActive, out.Storage.Status)
	assert.Equal(t, models.StorageStatusActive, repo.storages[storage.ID].Status)
	assert.Len(t, repo.storages[storage.ID].Payments, 2)
}

func TestRenew_ConcurrentUpdateConflicts(t *testing.T) {
	svc, repo, notifRepo := newRenewalFixture(t)
	storage := seedRenewalFixture(repo, models.StorageStatusActive, date(2099, time.February, 1))

	// Another renewal commits between our read and our write.
	repo.beforeWrite = func() {
		repo.storages[storage.ID].Version++
	}

	_, err := svc.Renew(context.Background(), &RenewInput{
		StorageID:     storage.ID,
		Months:        1,
		PaymentAmount: 300,
		PaymentMethod: "cash",
	}, adminActor())

	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.Len(t, repo.storages[storage.ID].Payments, 1)
	assert.Equal(t, date(2099, time.February, 1), repo.storages[storage.ID].ExpiryDate)
	assert.Empty(t, notifRepo.notifications)
}

func TestRenew_DeliveredStorageIsRejected(t *testing.T) {
	svc, repo, _ := newRenewalFixture(t)
	storage := seedRenewalFixture(repo, models.StorageStatusDelivered, date(2025, time.February, 1))

	_, err := svc.Renew(context.Background(), &RenewInput{
		StorageID:     storage.ID,
		Months:        1,
		PaymentAmount: 300,
		PaymentMethod: "cash",
	}, adminActor())

	assert.ErrorIs(t, err, domain.ErrAlreadyDelivered)
}

func TestRenew_UnknownStorage(t *testing.T) {
	svc, _, _ := newRenewalFixture(t)

	_, err := svc.Renew(context.Background(), &RenewInput{
		StorageID:     999,
		Months:        1,
		PaymentAmount: 300,
		PaymentMethod: "cash",
	}, adminActor())

	assert.ErrorIs(t, err, domain.ErrStorageNotFound)
}

func TestRenew_OperatorScopedToOwnLocation(t *testing.T) {
	svc, repo, _ := newRenewalFixture(t)
	storage := seedRenewalFixture(repo, models.StorageStatusActive, date(2099, time.February, 1))

	otherLocation := Actor{ID: 2, Role: models.RoleOperator, LocationID: uintPtr(2)}
	_, err := svc.Renew(context.Background(), &RenewInput{
		StorageID:     storage.ID,
		Months:        1,
		PaymentAmount: 300,
		PaymentMethod: "cash",
	}, otherLocation)

	assert.ErrorIs(t, err, domain.ErrLocationScope)
}

func TestRenew_ZeroMonthsRejected(t *testing.T) {
	svc, _, _ := newRenewalFixture(t)

	_, err := svc.Renew(context.Background(), &RenewInput{
		StorageID:     1,
		Months:        0,
		PaymentAmount: 300,
		PaymentMethod: "cash",
	}, adminActor())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
