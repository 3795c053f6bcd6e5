package handlers

import (
	"context"

	"github.com/up2ustore/bundles-backend/internal/models"
	"github.com/up2ustore/bundles-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StubTransactionService returns canned responses for handler tests
type StubTransactionService struct {
	CreateFn func(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error)
	GetFn    func(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	PhoneFn  func(ctx context.Context, phone string) ([]*models.Transaction, error)
	ListFn   func(ctx context.Context) ([]*models.Transaction, *models.TransactionStats, error)
}

func (s *StubTransactionService) CreateTransaction(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	return s.CreateFn(ctx, req)
}

func (s *StubTransactionService) GetTransactionByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	return s.GetFn(ctx, id)
}

func (s *StubTransactionService) GetTransactionsByPhone(ctx context.Context, phone string) ([]*models.Transaction, error) {
	return s.PhoneFn(ctx, phone)
}

func (s *StubTransactionService) ListTransactions(ctx context.Context) ([]*models.Transaction, *models.TransactionStats, error) {
	return s.ListFn(ctx)
}

// StubVerificationService returns canned responses for handler tests
type StubVerificationService struct {
	VerifyFn func(ctx context.Context, reference string) (*services.VerificationResult, error)
	HookFn   func(ctx context.Context, reference string, data map[string]interface{}) error

	HookCalls int
}

func (s *StubVerificationService) VerifyPayment(ctx context.Context, reference string) (*services.VerificationResult, error) {
	return s.VerifyFn(ctx, reference)
}

func (s *StubVerificationService) HandleChargeSuccess(ctx context.Context, reference string, data map[string]interface{}) error {
	s.HookCalls++
	if s.HookFn != nil {
		return s.HookFn(ctx, reference, data)
	}
	return nil
}

// StubAuthService returns canned responses for handler tests
type StubAuthService struct {
	LoginFn    func(ctx context.Context, req *models.LoginRequest) (string, error)
	RegisterFn func(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error)
}

func (s *StubAuthService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	return s.LoginFn(ctx, req)
}

func (s *StubAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error) {
	return s.RegisterFn(ctx, req)
}
