package services

import (
	"context"
	"errors"
	"strings"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/adapters/persistence/repositories"
	"godavari-scm/internal/core/domain"
	"godavari-scm/internal/pkg/pagination"

	"gorm.io/gorm"
)

const searchResultLimit = 10

// CustomerService handles customer lookups and edits
type CustomerService struct {
	customerRepo repositories.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// List returns customers with pagination. Operators only see their own
// location's customers.
func (s *CustomerService) List(ctx context.Context, params *pagination.Params, actor Actor) ([]*models.Customer, *pagination.Meta, error) {
	var locationID *uint
	if actor.Role == models.RoleOperator {
		locationID = actor.LocationID
	}

	customers, total, err := s.customerRepo.List(ctx, locationID, params.Offset, params.Limit)
	if err != nil {
		return nil, nil, err
	}

	meta := pagination.GetMeta(params, total)
	return customers, meta, nil
}

// Get returns a single customer
func (s *CustomerService) Get(ctx context.Context, id uint, actor Actor) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}

	if !actor.CanAccessLocation(customer.LocationID) {
		return nil, domain.ErrLocationScope
	}
	return customer, nil
}

// Search finds customers by name or phone fragment, for the registration
// form's existing-customer picker
func (s *CustomerService) Search(ctx context.Context, query string, actor Actor) ([]*models.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.Customer{}, nil
	}

	var locationID *uint
	if actor.Role == models.RoleOperator {
		locationID = actor.LocationID
	}

	return s.customerRepo.Search(ctx, query, locationID, searchResultLimit)
}

// UpdateCustomerInput represents a customer edit
type UpdateCustomerInput struct {
	Name    string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone   string `json:"phone" validate:"omitempty,min=10,max=15"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

// Update edits a customer's contact details
func (s *CustomerService) Update(ctx context.Context, id uint, input *UpdateCustomerInput, actor Actor) (*models.Customer, error) {
	customer, err := s.Get(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		customer.Name = strings.TrimSpace(input.Name)
	}
	if input.Phone != "" {
		customer.Phone = input.Phone
	}
	if input.Email != "" {
		customer.Email = &input.Email
	}
	if input.Address != "" {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
