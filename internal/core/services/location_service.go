package services

import (
	"context"
	"errors"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/adapters/persistence/repositories"
	"godavari-scm/internal/core/domain"

	"gorm.io/gorm"
)

// LocationService handles storage venue management
type LocationService struct {
	locationRepo repositories.LocationRepository
}

// NewLocationService creates a new location service
func NewLocationService(locationRepo repositories.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

// List returns all venues with their customer and storage counts
func (s *LocationService) List(ctx context.Context) ([]*models.LocationResponse, error) {
	return s.locationRepo.ListWithCounts(ctx)
}

// Get returns a single venue
func (s *LocationService) Get(ctx context.Context, id uint) (*models.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, err
	}
	return location, nil
}

// LocationInput represents a venue create/update request
type LocationInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Address  string `json:"address" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
}

// Create adds a new venue
func (s *LocationService) Create(ctx context.Context, input *LocationInput) (*models.Location, error) {
	location := &models.Location{
		Name:     input.Name,
		Address:  input.Address,
		Capacity: input.Capacity,
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// Update edits a venue
func (s *LocationService) Update(ctx context.Context, id uint, input *LocationInput) (*models.Location, error) {
	location, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	location.Name = input.Name
	location.Address = input.Address
	location.Capacity = input.Capacity

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// Delete removes a venue (soft delete)
func (s *LocationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.locationRepo.Delete(ctx, id)
}
