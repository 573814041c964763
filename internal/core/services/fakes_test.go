package services

import (
	"context"
	"strings"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/adapters/persistence/repositories"
	"godavari-scm/internal/core/domain"

	"gorm.io/gorm"
)

// In-memory repository fakes used across the service tests.

type fakeStorageRepo struct {
	storages   map[uint]*models.Storage
	deliveries map[uint]*models.Delivery
	nextID     uint

	// beforeWrite runs once before the next version check, standing in
	// for a concurrent writer that commits first.
	beforeWrite func()
}

func newFakeStorageRepo() *fakeStorageRepo {
	return &fakeStorageRepo{
		storages:   make(map[uint]*models.Storage),
		deliveries: make(map[uint]*models.Delivery),
	}
}

func (f *fakeStorageRepo) add(storage *models.Storage) *models.Storage {
	f.nextID++
	storage.ID = f.nextID
	if storage.Version == 0 {
		storage.Version = 1
	}
	f.storages[storage.ID] = storage
	return storage
}

func copyStorage(s *models.Storage) *models.Storage {
	cp := *s
	cp.Payments = append([]models.Payment(nil), s.Payments...)
	return &cp
}

func (f *fakeStorageRepo) Create(ctx context.Context, storage *models.Storage) error {
	f.add(storage)
	return nil
}

func (f *fakeStorageRepo) GetByID(ctx context.Context, id uint) (*models.Storage, error) {
	stored, ok := f.storages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return copyStorage(stored), nil
}

func (f *fakeStorageRepo) List(ctx context.Context, filter *repositories.StorageFilter) ([]*models.Storage, error) {
	var out []*models.Storage
	for _, stored := range f.storages {
		if filter != nil {
			if filter.Status != "" && filter.Status != "ALL" && stored.Status != filter.Status {
				continue
			}
			if filter.LocationID != nil && stored.LocationID != *filter.LocationID {
				continue
			}
		}
		out = append(out, copyStorage(stored))
	}
	return out, nil
}

func (f *fakeStorageRepo) UpdateWithVersion(ctx context.Context, storage *models.Storage) error {
	if f.beforeWrite != nil {
		hook := f.beforeWrite
		f.beforeWrite = nil
		hook()
	}
	stored, ok := f.storages[storage.ID]
	if !ok || stored.Version != storage.Version {
		return domain.ErrVersionConflict
	}
	stored.ExpiryDate = storage.ExpiryDate
	stored.Status = storage.Status
	stored.Version++
	storage.Version = stored.Version
	return nil
}

func (f *fakeStorageRepo) RenewWithPayment(ctx context.Context, storage *models.Storage, payment *models.Payment) error {
	if err := f.UpdateWithVersion(ctx, storage); err != nil {
		return err
	}
	payment.ID = uint(len(f.storages[storage.ID].Payments) + 1)
	f.storages[storage.ID].Payments = append(f.storages[storage.ID].Payments, *payment)
	return nil
}

func (f *fakeStorageRepo) DeliverWithReceipt(ctx context.Context, storage *models.Storage, delivery *models.Delivery) error {
	if err := f.UpdateWithVersion(ctx, storage); err != nil {
		return err
	}
	delivery.ID = uint(len(f.deliveries) + 1)
	f.deliveries[storage.ID] = delivery
	return nil
}

func (f *fakeStorageRepo) MarkExpiring(ctx context.Context, now time.Time, window time.Duration) error {
	deadline := now.Add(window)
	for _, stored := range f.storages {
		if stored.Status == models.StorageStatusActive &&
			!stored.ExpiryDate.After(deadline) && stored.ExpiryDate.After(now) {
			stored.Status = models.StorageStatusExpiring
		}
	}
	return nil
}

func (f *fakeStorageRepo) MarkExpired(ctx context.Context, now time.Time) error {
	for _, stored := range f.storages {
		if (stored.Status == models.StorageStatusActive || stored.Status == models.StorageStatusExpiring) &&
			!stored.ExpiryDate.After(now) {
			stored.Status = models.StorageStatusExpired
		}
	}
	return nil
}

func (f *fakeStorageRepo) ListByStatus(ctx context.Context, status string) ([]*models.Storage, error) {
	return f.List(ctx, &repositories.StorageFilter{Status: status})
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	n.ID = uint(len(f.notifications) + 1)
	n.CreatedAt = time.Now()
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) GetByStorageID(ctx context.Context, storageID uint) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.StorageID == storageID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkSent(ctx context.Context, id uint, sentAt time.Time) error {
	for _, n := range f.notifications {
		if n.ID == id {
			n.Status = models.NotifyStatusSent
			n.SentAt = &sentAt
		}
	}
	return nil
}

func (f *fakeNotificationRepo) MarkFailed(ctx context.Context, id uint) error {
	for _, n := range f.notifications {
		if n.ID == id {
			n.Status = models.NotifyStatusFailed
		}
	}
	return nil
}

func (f *fakeNotificationRepo) ExistsSince(ctx context.Context, storageID uint, notifyType string, since time.Time) (bool, error) {
	for _, n := range f.notifications {
		if n.StorageID == storageID && n.Type == notifyType && n.CreatedAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

type fakeOTPRepo struct {
	codes []*models.OTPCode
}

func (f *fakeOTPRepo) Create(ctx context.Context, otp *models.OTPCode) error {
	otp.ID = uint(len(f.codes) + 1)
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = time.Now()
	}
	f.codes = append(f.codes, otp)
	return nil
}

func (f *fakeOTPRepo) GetLatest(ctx context.Context, phone, purpose string) (*models.OTPCode, error) {
	for i := len(f.codes) - 1; i >= 0; i-- {
		if f.codes[i].Phone == phone && f.codes[i].Purpose == purpose {
			return f.codes[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOTPRepo) Update(ctx context.Context, otp *models.OTPCode) error {
	return nil
}

func (f *fakeOTPRepo) DeleteExpired(ctx context.Context, before time.Time) error {
	kept := f.codes[:0]
	for _, c := range f.codes {
		if c.ExpiresAt.After(before) {
			kept = append(kept, c)
		}
	}
	f.codes = kept
	return nil
}

type fakeLocationRepo struct {
	locations map[uint]*models.Location
}

func newFakeLocationRepo(locations ...*models.Location) *fakeLocationRepo {
	f := &fakeLocationRepo{locations: make(map[uint]*models.Location)}
	for _, l := range locations {
		f.locations[l.ID] = l
	}
	return f
}

func (f *fakeLocationRepo) Create(ctx context.Context, location *models.Location) error {
	location.ID = uint(len(f.locations) + 1)
	f.locations[location.ID] = location
	return nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id uint) (*models.Location, error) {
	location, ok := f.locations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return location, nil
}

func (f *fakeLocationRepo) List(ctx context.Context) ([]*models.Location, error) {
	var out []*models.Location
	for _, l := range f.locations {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLocationRepo) ListWithCounts(ctx context.Context) ([]*models.LocationResponse, error) {
	return nil, nil
}

func (f *fakeLocationRepo) Update(ctx context.Context, location *models.Location) error {
	f.locations[location.ID] = location
	return nil
}

func (f *fakeLocationRepo) Delete(ctx context.Context, id uint) error {
	delete(f.locations, id)
	return nil
}

type fakeCustomerRepo struct {
	customers map[uint]*models.Customer
}

func newFakeCustomerRepo(customers ...*models.Customer) *fakeCustomerRepo {
	f := &fakeCustomerRepo{customers: make(map[uint]*models.Customer)}
	for _, c := range customers {
		f.customers[c.ID] = c
	}
	return f
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	customer.ID = uint(len(f.customers) + 1)
	f.customers[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (f *fakeCustomerRepo) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCustomerRepo) List(ctx context.Context, locationID *uint, offset, limit int) ([]*models.Customer, int64, error) {
	var out []*models.Customer
	for _, c := range f.customers {
		if locationID != nil && c.LocationID != *locationID {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCustomerRepo) Search(ctx context.Context, query string, locationID *uint, limit int) ([]*models.Customer, error) {
	var out []*models.Customer
	for _, c := range f.customers {
		if locationID != nil && c.LocationID != *locationID {
			continue
		}
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) || strings.Contains(c.Phone, query) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	f.customers[customer.ID] = customer
	return nil
}

// test wiring helpers

func newTestNotifyService(repo *fakeNotificationRepo) *NotificationService {
	return NewNotificationService(repo, newDisabledSMS())
}

func newDisabledSMS() *SMSService {
	return &SMSService{enabled: false}
}

func newDisabledEmail() *EmailService {
	return &EmailService{enabled: false}
}

func uintPtr(v uint) *uint {
	return &v
}
