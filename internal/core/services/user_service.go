package services

import (
	"context"
	"errors"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/adapters/persistence/repositories"
	"godavari-scm/internal/core/domain"
	"godavari-scm/internal/pkg/pagination"

	"gorm.io/gorm"
)

// UserService handles admin management of operator accounts
type UserService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.RefreshTokenRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, tokenRepo repositories.RefreshTokenRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// List returns users with pagination
func (s *UserService) List(ctx context.Context, params *pagination.Params) ([]*models.UserResponse, *pagination.Meta, error) {
	users, total, err := s.userRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.ToResponse())
	}

	meta := pagination.GetMeta(params, total)
	return responses, meta, nil
}

// Get returns a single user
func (s *UserService) Get(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateUserInput represents an admin user update
type UpdateUserInput struct {
	Role       *string `json:"role" validate:"omitempty,oneof=ADMIN OPERATOR"`
	LocationID *uint   `json:"location_id"`
}

// Update changes a user's role or assigned location
func (s *UserService) Update(ctx context.Context, id uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.LocationID != nil {
		user.LocationID = input.LocationID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// Approve marks a pending account as approved so it can sign in
func (s *UserService) Approve(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	user.IsApproved = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// Deactivate disables an account and revokes all of its sessions
func (s *UserService) Deactivate(ctx context.Context, id uint) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return s.tokenRepo.RevokeAllByUserID(ctx, user.ID)
}
