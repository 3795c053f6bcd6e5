package repositories

import (
	"context"
	"errors"

	"github.com/up2ustore/bundles-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors returned by repository implementations so callers can
// distinguish lookup misses and reference conflicts from storage failures.
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateReference = errors.New("transaction with this reference already exists")
)

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	FindByReference(ctx context.Context, reference string) (*models.Transaction, error)
	FindByPhone(ctx context.Context, phone string) ([]*models.Transaction, error)
	FindAll(ctx context.Context) ([]*models.Transaction, error)
	// MarkVerified sets the transaction matching reference to
	// status=success, paymentVerified=true, attaches the raw gateway
	// payload and refreshes updatedAt. It returns the updated record,
	// or ErrNotFound if no transaction has that reference.
	MarkVerified(ctx context.Context, reference string, gatewayResponse map[string]interface{}) (*models.Transaction, error)
	Count(ctx context.Context) (int64, error)
}

// AdminUserRepository defines the interface for admin account operations
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}
