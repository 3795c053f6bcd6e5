package services

import (
	"context"
	"errors"

	"github.com/up2ustore/bundles-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service-level sentinel errors. Validation and credential failures are
// resolved at the HTTP boundary; everything else surfaces as a generic
// failure with the detail logged server-side.
var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("admin user with this email already exists")
)

// TransactionService defines the interface for transaction operations
type TransactionService interface {
	// CreateTransaction validates and stores a new pending transaction.
	// Returns ErrMissingFields on invalid input and
	// repositories.ErrDuplicateReference on a reference conflict.
	CreateTransaction(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error)
	GetTransactionByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	GetTransactionsByPhone(ctx context.Context, phone string) ([]*models.Transaction, error)
	// ListTransactions returns all transactions newest-first together
	// with aggregate stats computed over the full result set.
	ListTransactions(ctx context.Context) ([]*models.Transaction, *models.TransactionStats, error)
}

// VerificationResult is the outcome of a synchronous verify call
type VerificationResult struct {
	Verified    bool
	Status      string
	Transaction *models.Transaction
}

// VerificationService defines the interface for payment confirmation,
// covering both the synchronous verify path and the asynchronous
// webhook path. Both converge on the same idempotent update keyed by
// reference.
type VerificationService interface {
	VerifyPayment(ctx context.Context, reference string) (*VerificationResult, error)
	HandleChargeSuccess(ctx context.Context, reference string, data map[string]interface{}) error
}

// AuthService defines the interface for admin authentication operations
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error)
}
