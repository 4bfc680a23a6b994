// Package auth is the identity gate: it resolves credentials to a role and
// actor once at login, and everything downstream consumes that as claims
// data instead of re-deriving it.
package auth

import (
	"context"
	"log"
	"strings"
	"time"

	"roost/internal/errors"
	"roost/internal/models"
	"roost/internal/repositories"
	"roost/internal/utils"
)

type RegisterInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	BusinessName string `json:"business_name"`
}

// TokenPair carries the issued tokens plus the authenticated user.
type TokenPair struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

type Service interface {
	// Login resolves phone+password to a role-bearing token pair, or the
	// typed AUTH_ERROR.
	Login(ctx context.Context, phone, password string) (*TokenPair, error)
	// Register creates a merchant account (signup in this product is always
	// a merchant; residents are added by their merchant).
	Register(ctx context.Context, input RegisterInput) (*TokenPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uint) error
	GetUserTokenVersion(userID uint) (int, error)
}

type service struct {
	users repositories.UserRepository
}

func NewService(users repositories.UserRepository) Service {
	if users == nil {
		panic("user repository is required")
	}
	return &service{users: users}
}

func (s *service) Login(ctx context.Context, phone, password string) (*TokenPair, error) {
	user, err := s.users.GetByPhone(phone)
	if err != nil {
		log.Printf("login failed: no user for phone %s", phone)
		return nil, errors.ErrAuth
	}
	if !utils.CheckPassword(user.Password, password) {
		log.Printf("login failed: bad password for user %d", user.ID)
		return nil, errors.ErrAuth
	}

	user.LastLoginAt = time.Now()
	if err := s.users.Update(user); err != nil {
		log.Printf("failed to record login time: %v", err)
	}
	return s.issueTokens(user)
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*TokenPair, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Phone) == "" {
		return nil, errors.ErrValidation.WithDetail("name and phone are required")
	}
	if len(input.Password) < 8 {
		return nil, errors.ErrValidation.WithDetail("password must be at least 8 characters")
	}
	if _, err := s.users.GetByPhone(input.Phone); err == nil {
		return nil, errors.ErrValidation.WithDetail("phone already registered")
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Password:     hash,
		Role:         models.RoleMerchant,
		BusinessName: input.BusinessName,
		Status:       "active",
		KYCStatus:    models.StatusPending,
		TokenVersion: 1,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return s.issueTokens(user)
}

func (s *service) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return nil, errors.ErrAuth.WithDetail("invalid refresh token")
	}
	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return nil, errors.ErrAuth
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, errors.ErrAuth.WithDetail("token revoked")
	}
	return s.issueTokens(user)
}

// Logout bumps the token version, revoking every outstanding token.
func (s *service) Logout(ctx context.Context, userID uint) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	user.TokenVersion++
	return s.users.Update(user)
}

func (s *service) GetUserTokenVersion(userID uint) (int, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return 0, err
	}
	return user.TokenVersion, nil
}

func (s *service) issueTokens(user *models.User) (*TokenPair, error) {
	access, refresh, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Phone:        user.Phone,
		Role:         user.Role,
		Permissions:  models.GetDefaultPermissions(user.Role),
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		log.Printf("error generating tokens: %v", err)
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, User: user}, nil
}
