package repositories

import (
	"context"

	"godavari-scm/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// locationRepository is the GORM implementation of LocationRepository
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

// Create creates a new location
func (r *locationRepository) Create(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// GetByID gets a location by ID
func (r *locationRepository) GetByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).First(&location, id).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// List lists all locations sorted by name
func (r *locationRepository) List(ctx context.Context) ([]*models.Location, error) {
	var locations []*models.Location
	err := r.db.WithContext(ctx).Order("name ASC").Find(&locations).Error
	return locations, err
}

// ListWithCounts lists locations with customer and storage counts
func (r *locationRepository) ListWithCounts(ctx context.Context) ([]*models.LocationResponse, error) {
	locations, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		resp := &models.LocationResponse{
			ID:        loc.ID,
			Name:      loc.Name,
			Address:   loc.Address,
			Capacity:  loc.Capacity,
			CreatedAt: loc.CreatedAt,
		}

		r.db.WithContext(ctx).Model(&models.Customer{}).
			Where("location_id = ?", loc.ID).
			Count(&resp.CustomerCount)
		r.db.WithContext(ctx).Model(&models.Storage{}).
			Where("location_id = ?", loc.ID).
			Count(&resp.StorageCount)

		responses = append(responses, resp)
	}

	return responses, nil
}

// Update updates a location
func (r *locationRepository) Update(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// Delete soft deletes a location
func (r *locationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Location{}, id).Error
}
