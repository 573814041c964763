package repositories

import (
	"context"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
)

// StorageFilter narrows storage listings.
type StorageFilter struct {
	Status     string // empty or "ALL" = no status filter
	LocationID *uint
	SortBy     string // "expiryDate" (default), "registrationDate", "customerName"
}

// StorageRepository defines storage data access. Mutations are guarded by
// the record's version column: an update whose version no longer matches
// affects zero rows and is surfaced as domain.ErrVersionConflict.
type StorageRepository interface {
	Create(ctx context.Context, storage *models.Storage) error
	GetByID(ctx context.Context, id uint) (*models.Storage, error)
	List(ctx context.Context, filter *StorageFilter) ([]*models.Storage, error)
	UpdateWithVersion(ctx context.Context, storage *models.Storage) error
	// RenewWithPayment applies the expiry/status update and appends the
	// payment inside a single transaction, or applies neither.
	RenewWithPayment(ctx context.Context, storage *models.Storage, payment *models.Payment) error
	// DeliverWithReceipt applies the terminal status update and writes the
	// handover receipt inside a single transaction, or applies neither.
	DeliverWithReceipt(ctx context.Context, storage *models.Storage, delivery *models.Delivery) error
	// MarkExpiring and MarkExpired implement the bulk status sweep that
	// runs before listings and on the cron schedule.
	MarkExpiring(ctx context.Context, now time.Time, window time.Duration) error
	MarkExpired(ctx context.Context, now time.Time) error
	ListByStatus(ctx context.Context, status string) ([]*models.Storage, error)
}

// PaymentRepository defines payment data access (append-only from the core).
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByStorageID(ctx context.Context, storageID uint) ([]*models.Payment, error)
}

// NotificationRepository defines notification log access.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByStorageID(ctx context.Context, storageID uint) ([]*models.Notification, error)
	MarkSent(ctx context.Context, id uint, sentAt time.Time) error
	MarkFailed(ctx context.Context, id uint) error
	ExistsSince(ctx context.Context, storageID uint, notifyType string, since time.Time) (bool, error)
}

// OTPRepository defines OTP code persistence.
type OTPRepository interface {
	Create(ctx context.Context, otp *models.OTPCode) error
	GetLatest(ctx context.Context, phone, purpose string) (*models.OTPCode, error)
	Update(ctx context.Context, otp *models.OTPCode) error
	DeleteExpired(ctx context.Context, before time.Time) error
}

// CustomerRepository defines customer data access.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*models.Customer, error)
	List(ctx context.Context, locationID *uint, offset, limit int) ([]*models.Customer, int64, error)
	Search(ctx context.Context, query string, locationID *uint, limit int) ([]*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
}

// LocationRepository defines location data access.
type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id uint) (*models.Location, error)
	List(ctx context.Context) ([]*models.Location, error)
	ListWithCounts(ctx context.Context) ([]*models.LocationResponse, error)
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uint) error
}

// UserRepository defines user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token data access.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
