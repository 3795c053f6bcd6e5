package services

import (
	"context"
	"sync"
	"time"

	"github.com/up2ustore/bundles-backend/internal/models"
	"github.com/up2ustore/bundles-backend/internal/repositories"
	"github.com/up2ustore/bundles-backend/pkg/paystack"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockTransactionRepository is an in-memory repositories.TransactionRepository
type MockTransactionRepository struct {
	mu    sync.Mutex
	byRef map[string]*models.Transaction
	order []string

	FailWith error // when set, every call fails with this error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		byRef: make(map[string]*models.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if _, exists := m.byRef[transaction.Reference]; exists {
		return repositories.ErrDuplicateReference
	}
	transaction.ID = primitive.NewObjectID()
	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = time.Now()
	stored := *transaction
	m.byRef[transaction.Reference] = &stored
	m.order = append(m.order, transaction.Reference)
	return nil
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	for _, t := range m.byRef {
		if t.ID == id {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *MockTransactionRepository) FindByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	t, ok := m.byRef[reference]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *MockTransactionRepository) FindByPhone(ctx context.Context, phone string) ([]*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	var out []*models.Transaction
	for _, ref := range m.order {
		if m.byRef[ref].Phone == phone {
			copied := *m.byRef[ref]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) FindAll(ctx context.Context) ([]*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	out := make([]*models.Transaction, 0, len(m.order))
	// newest-first
	for i := len(m.order) - 1; i >= 0; i-- {
		copied := *m.byRef[m.order[i]]
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MockTransactionRepository) MarkVerified(ctx context.Context, reference string, gatewayResponse map[string]interface{}) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	t, ok := m.byRef[reference]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	t.Status = models.StatusSuccess
	t.PaymentVerified = true
	t.PaystackResponse = gatewayResponse
	t.UpdatedAt = time.Now()
	copied := *t
	return &copied, nil
}

func (m *MockTransactionRepository) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	return int64(len(m.byRef)), nil
}

// MockPaymentVerifier is a canned-response PaymentVerifier
type MockPaymentVerifier struct {
	Data  *paystack.TransactionData
	Err   error
	Calls int
}

func (m *MockPaymentVerifier) VerifyTransaction(ctx context.Context, reference string) (*paystack.TransactionData, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Data, nil
}
