package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/up2ustore/bundles-backend/internal/config"
	"github.com/up2ustore/bundles-backend/internal/models"
	"github.com/up2ustore/bundles-backend/internal/repositories"
	"github.com/up2ustore/bundles-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

type AuthServiceImpl struct {
	adminRepo repositories.AdminUserRepository
	cfg       *config.Config
}

func NewAuthService(adminRepo repositories.AdminUserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		adminRepo: adminRepo,
		cfg:       cfg,
	}
}

// Login checks admin credentials and returns a signed JWT. Lookup misses
// and password mismatches both map to ErrInvalidCredentials so the
// response does not reveal which one failed.
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		slog.Error("Failed to look up admin user", "error", err, "email", req.Email)
		return "", fmt.Errorf("failed to look up admin user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role, s.cfg)
	if err != nil {
		slog.Error("Failed to generate token", "error", err, "email", req.Email)
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Register creates a new admin account with a bcrypt-hashed password
func (s *AuthServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error) {
	if _, err := s.adminRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing admin user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.AdminUser{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      "admin",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.adminRepo.Create(ctx, user); err != nil {
		slog.Error("Failed to create admin user", "error", err, "email", req.Email)
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	return user, nil
}
