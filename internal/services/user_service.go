package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/solarwatch/backend/internal/config"
	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/db/repository"
	"github.com/solarwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// TokenPair carries an access token and its refresh token
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// UserService manages user accounts and authentication
type UserService struct {
	userRepo         repository.UserRepository
	passwordStrength *PasswordStrengthService
	jwtConfig        *config.JWTConfig
	logger           *utils.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	passwordStrength *PasswordStrengthService,
	jwtConfig *config.JWTConfig,
	logger *utils.Logger,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		passwordStrength: passwordStrength,
		jwtConfig:        jwtConfig,
		logger:           logger.Named("user_service"),
	}
}

// Register creates a new user account. The password must pass the strength
// policy.
func (s *UserService) Register(user *models.User, password string) error {
	analysis := s.passwordStrength.Analyze(password)
	if !analysis.Acceptable {
		return fmt.Errorf("%w: password does not meet strength requirements", utils.ErrValidation)
	}

	user.Password = password
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return utils.ErrAlreadyExists
		}
		return err
	}

	s.logger.Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email),
	)
	return nil
}

// Authenticate verifies credentials and issues a token pair
func (s *UserService) Authenticate(email, password string) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, utils.ErrUnauthorized
		}
		return nil, nil, err
	}

	if !user.Active {
		return nil, nil, utils.ErrUnauthorized
	}

	if !user.CheckPassword(password) {
		return nil, nil, utils.ErrUnauthorized
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		s.logger.Warn("Failed to update last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	s.logger.Info("User authenticated", zap.Uint("user_id", user.ID))
	return user, tokens, nil
}

// Refresh validates a refresh token and issues a fresh token pair
func (s *UserService) Refresh(refreshToken string) (*TokenPair, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtConfig.RefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, utils.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}
	if !user.Active {
		return nil, utils.ErrUnauthorized
	}

	return s.issueTokens(user)
}

func (s *UserService) issueTokens(user *models.User) (*TokenPair, error) {
	expiresIn := s.jwtConfig.ExpirationHours * 3600
	accessToken, err := user.GenerateToken(s.jwtConfig.Secret, expiresIn)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := user.GenerateToken(s.jwtConfig.RefreshSecret, s.jwtConfig.RefreshExpirationHours*3600)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// GetByID retrieves one user
func (s *UserService) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// List retrieves a page of users
func (s *UserService) List(offset, limit int) ([]models.User, int64, error) {
	return s.userRepo.List(offset, limit)
}

// Update updates a user's profile
func (s *UserService) Update(user *models.User) error {
	err := s.userRepo.Update(user)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrNotFound
	}
	if errors.Is(err, repository.ErrConflict) {
		return utils.ErrAlreadyExists
	}
	return err
}

// ChangePassword verifies the current password and sets a new one. The new
// password must pass the strength policy.
func (s *UserService) ChangePassword(id uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrNotFound
		}
		return err
	}

	if !user.CheckPassword(currentPassword) {
		return utils.ErrUnauthorized
	}

	analysis := s.passwordStrength.Analyze(newPassword)
	if !analysis.Acceptable {
		return fmt.Errorf("%w: password does not meet strength requirements", utils.ErrValidation)
	}

	if err := s.userRepo.ChangePassword(id, newPassword); err != nil {
		return err
	}

	s.logger.Info("Password changed", zap.Uint("user_id", id), zap.Time("at", time.Now()))
	return nil
}

// Delete removes a user account
func (s *UserService) Delete(id uint) error {
	err := s.userRepo.Delete(id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrNotFound
	}
	return err
}
