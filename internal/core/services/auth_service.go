package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/adapters/persistence/repositories"
	"godavari-scm/internal/config"
	"godavari-scm/internal/core/domain"
	"godavari-scm/internal/pkg/jwt"
	"godavari-scm/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService handles registration, login and token rotation
type AuthService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.RefreshTokenRepository
	cfg       *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, tokenRepo repositories.RefreshTokenRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
	}
}

// RegisterInput represents a registration request
type RegisterInput struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=10,max=15"`
	Password   string `json:"password" validate:"required,min=8"`
	LocationID *uint  `json:"location_id"`
}

// LoginInput represents a login request
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair carries a fresh access/refresh token set
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}

// LoginOutput bundles the user and the issued tokens
type LoginOutput struct {
	User   *models.UserResponse `json:"user"`
	Tokens *TokenPair           `json:"tokens"`
}

// Register creates an operator account pending admin approval
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	if !password.Validate(input.Password) {
		return nil, domain.ErrInvalidPassword
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:       strings.TrimSpace(input.Name),
		Email:      email,
		Phone:      input.Phone,
		Password:   hashed,
		Role:       models.RoleOperator,
		LocationID: input.LocationID,
		IsApproved: false,
		IsActive:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and issues a token pair. Accounts that are not
// yet approved or have been deactivated cannot sign in.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsApproved {
		return nil, domain.ErrUserNotApproved
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:   user.ToResponse(),
		Tokens: tokens,
	}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. A revoked or expired token yields ErrTokenInvalid.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	tokenHash := password.HashToken(refreshToken)
	stored, err := s.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	if stored.IsRevoked() || stored.IsExpired() {
		// Reuse of a rotated token: cut the whole session chain.
		if err := s.tokenRepo.RevokeAllByUserID(ctx, stored.UserID); err != nil {
			return nil, err
		}
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if !user.IsActive || !user.IsApproved {
		return nil, domain.ErrForbidden
	}

	if err := s.tokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	return s.tokenRepo.RevokeByTokenHash(ctx, tokenHash)
}

// issueTokens generates an access/refresh pair and persists the refresh
// token hash for later rotation checks
func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID, user.Email, user.Name, user.Role, user.LocationID,
		s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()
	refreshToken, err := jwt.GenerateRefreshToken(user.ID, tokenID, s.cfg.JWT.RefreshSecret, s.cfg.JWT.RefreshTokenDays)
	if err != nil {
		return nil, err
	}

	record := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.JWT.RefreshTokenDays) * 24 * time.Hour),
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWT.AccessTokenMins * 60,
	}, nil
}

// CleanupExpiredTokens drops refresh tokens past their expiry. Called on
// the cron schedule.
func (s *AuthService) CleanupExpiredTokens(ctx context.Context) error {
	return s.tokenRepo.DeleteExpired(ctx)
}
