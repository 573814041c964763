package repositories

import (
	"context"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/core/domain"

	"gorm.io/gorm"
)

// storageRepository is the GORM implementation of StorageRepository
type storageRepository struct {
	db *gorm.DB
}

// NewStorageRepository creates a new storage repository
func NewStorageRepository(db *gorm.DB) StorageRepository {
	return &storageRepository{db: db}
}

// Create creates a new storage record
func (r *storageRepository) Create(ctx context.Context, storage *models.Storage) error {
	return r.db.WithContext(ctx).Create(storage).Error
}

// GetByID gets a storage record by ID with relations
func (r *storageRepository) GetByID(ctx context.Context, id uint) (*models.Storage, error) {
	var storage models.Storage
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Operator").
		Preload("Location").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date DESC")
		}).
		First(&storage, id).Error
	if err != nil {
		return nil, err
	}
	return &storage, nil
}

// List lists storage records with status/location filters and sort key
func (r *storageRepository) List(ctx context.Context, filter *StorageFilter) ([]*models.Storage, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Storage{}).
		Preload("Customer").
		Preload("Operator").
		Preload("Location").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date DESC")
		})

	if filter != nil {
		if filter.Status != "" && filter.Status != "ALL" {
			query = query.Where("storages.status = ?", filter.Status)
		}
		if filter.LocationID != nil {
			query = query.Where("storages.location_id = ?", *filter.LocationID)
		}

		switch filter.SortBy {
		case "registrationDate":
			query = query.Order("storages.registration_date DESC")
		case "customerName":
			query = query.
				Joins("JOIN customers ON customers.id = storages.customer_id").
				Order("customers.name ASC")
		default: // expiryDate
			query = query.Order("storages.expiry_date ASC")
		}
	} else {
		query = query.Order("storages.expiry_date ASC")
	}

	var storages []*models.Storage
	err := query.Find(&storages).Error
	return storages, err
}

// UpdateWithVersion saves a storage record iff its version is unchanged,
// bumping the version on success. Zero affected rows means another request
// mutated the record first.
func (r *storageRepository) UpdateWithVersion(ctx context.Context, storage *models.Storage) error {
	return r.updateWithVersion(r.db.WithContext(ctx), storage)
}

func (r *storageRepository) updateWithVersion(tx *gorm.DB, storage *models.Storage) error {
	currentVersion := storage.Version
	result := tx.Model(&models.Storage{}).
		Where("id = ? AND version = ?", storage.ID, currentVersion).
		Updates(map[string]interface{}{
			"expiry_date": storage.ExpiryDate,
			"status":      storage.Status,
			"version":     currentVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}
	storage.Version = currentVersion + 1
	return nil
}

// RenewWithPayment applies the storage update and the payment append in one
// transaction so a failure partway leaves neither applied.
func (r *storageRepository) RenewWithPayment(ctx context.Context, storage *models.Storage, payment *models.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.updateWithVersion(tx, storage); err != nil {
			return err
		}
		return tx.Create(payment).Error
	})
}

// DeliverWithReceipt applies the terminal status update and writes the
// handover receipt in one transaction.
func (r *storageRepository) DeliverWithReceipt(ctx context.Context, storage *models.Storage, delivery *models.Delivery) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.updateWithVersion(tx, storage); err != nil {
			return err
		}
		return tx.Create(delivery).Error
	})
}

// MarkExpiring flags ACTIVE records whose expiry falls within the window
func (r *storageRepository) MarkExpiring(ctx context.Context, now time.Time, window time.Duration) error {
	deadline := now.Add(window)
	return r.db.WithContext(ctx).
		Model(&models.Storage{}).
		Where("status = ? AND expiry_date <= ? AND expiry_date > ?",
			models.StorageStatusActive, deadline, now).
		Update("status", models.StorageStatusExpiring).Error
}

// MarkExpired flags ACTIVE/EXPIRING records whose expiry has passed
func (r *storageRepository) MarkExpired(ctx context.Context, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Storage{}).
		Where("status IN ? AND expiry_date <= ?",
			[]string{models.StorageStatusActive, models.StorageStatusExpiring}, now).
		Update("status", models.StorageStatusExpired).Error
}

// ListByStatus lists storage records in a given status with customer loaded
func (r *storageRepository) ListByStatus(ctx context.Context, status string) ([]*models.Storage, error) {
	var storages []*models.Storage
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Location").
		Where("status = ?", status).
		Order("expiry_date ASC").
		Find(&storages).Error
	return storages, err
}
