package repositories

import (
	"context"

	"godavari-scm/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// customerRepository is the GORM implementation of CustomerRepository
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetByID gets a customer by ID
func (r *customerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Preload("Location").
		First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByPhone gets a customer by phone number
func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List lists customers with pagination, optionally scoped to a location
func (r *customerRepository) List(ctx context.Context, locationID *uint, offset, limit int) ([]*models.Customer, int64, error) {
	var customers []*models.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Customer{})
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}

	query.Count(&total)

	err := query.
		Preload("Location").
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&customers).Error

	return customers, total, err
}

// Search searches customers by name or phone
func (r *customerRepository) Search(ctx context.Context, query string, locationID *uint, limit int) ([]*models.Customer, error) {
	var customers []*models.Customer

	q := r.db.WithContext(ctx).
		Where("name LIKE ? OR phone LIKE ?", "%"+query+"%", "%"+query+"%")
	if locationID != nil {
		q = q.Where("location_id = ?", *locationID)
	}

	err := q.Order("name ASC").Limit(limit).Find(&customers).Error
	return customers, err
}

// Update updates a customer
func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}
