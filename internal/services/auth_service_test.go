package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/up2ustore/bundles-backend/internal/config"
	"github.com/up2ustore/bundles-backend/internal/models"
	"github.com/up2ustore/bundles-backend/internal/repositories"
	"github.com/up2ustore/bundles-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockAdminUserRepository is an in-memory repositories.AdminUserRepository
type MockAdminUserRepository struct {
	mu      sync.Mutex
	byEmail map[string]*models.AdminUser
}

func NewMockAdminUserRepository() *MockAdminUserRepository {
	return &MockAdminUserRepository{byEmail: make(map[string]*models.AdminUser)}
}

func (m *MockAdminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = primitive.NewObjectID()
	stored := *user
	m.byEmail[user.Email] = &stored
	return nil
}

func (m *MockAdminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MockAdminUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 3600
	return cfg
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()

	t.Run("register then login yields a valid token", func(t *testing.T) {
		repo := NewMockAdminUserRepository()
		cfg := testConfig()
		service := NewAuthService(repo, cfg)

		user, err := service.Register(ctx, &models.RegisterRequest{
			FirstName: "Ama",
			LastName:  "Mensah",
			Email:     "ama@example.com",
			Password:  "hunter22",
		})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.Password == "hunter22" {
			t.Error("password stored unhashed")
		}

		token, err := service.Login(ctx, &models.LoginRequest{Email: "ama@example.com", Password: "hunter22"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}

		claims, err := utils.ValidateJWT(token, cfg)
		if err != nil {
			t.Fatalf("token not valid: %v", err)
		}
		if claims["role"] != "admin" {
			t.Errorf("expected admin role claim, got %v", claims["role"])
		}
	})

	t.Run("wrong password and unknown email map to invalid credentials", func(t *testing.T) {
		repo := NewMockAdminUserRepository()
		service := NewAuthService(repo, testConfig())

		if _, err := service.Register(ctx, &models.RegisterRequest{
			FirstName: "Ama", LastName: "Mensah", Email: "ama@example.com", Password: "hunter22",
		}); err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		if _, err := service.Login(ctx, &models.LoginRequest{Email: "ama@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
		}
		if _, err := service.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "hunter22"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
		}
	})

	t.Run("duplicate registration is rejected", func(t *testing.T) {
		repo := NewMockAdminUserRepository()
		service := NewAuthService(repo, testConfig())

		req := &models.RegisterRequest{FirstName: "Ama", LastName: "Mensah", Email: "ama@example.com", Password: "hunter22"}
		if _, err := service.Register(ctx, req); err != nil {
			t.Fatalf("first register failed: %v", err)
		}
		if _, err := service.Register(ctx, req); !errors.Is(err, ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken for duplicate registration, got %v", err)
		}
	})
}
