package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/up2ustore/bundles-backend/internal/metrics"
	"github.com/up2ustore/bundles-backend/internal/models"
	"github.com/up2ustore/bundles-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCurrency is applied to transactions created without an explicit
// currency code
const DefaultCurrency = "GHS"

// Compile-time check to ensure TransactionServiceImpl implements TransactionService
var _ TransactionService = (*TransactionServiceImpl)(nil)

type TransactionServiceImpl struct {
	transactionRepo repositories.TransactionRepository
}

func NewTransactionService(transactionRepo repositories.TransactionRepository) *TransactionServiceImpl {
	return &TransactionServiceImpl{
		transactionRepo: transactionRepo,
	}
}

// CreateTransaction validates the request and inserts a new pending
// transaction. The record is created exactly once per reference; the
// store's unique index turns a concurrent duplicate into
// repositories.ErrDuplicateReference.
func (s *TransactionServiceImpl) CreateTransaction(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if req.Reference == "" || req.Phone == "" || req.Amount <= 0 || req.Bundle.ID == 0 {
		return nil, ErrMissingFields
	}

	transaction := &models.Transaction{
		Reference:       req.Reference,
		Phone:           req.Phone,
		Bundle:          req.Bundle,
		Amount:          req.Amount,
		Currency:        DefaultCurrency,
		Status:          models.StatusPending,
		PaymentVerified: false,
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		if errors.Is(err, repositories.ErrDuplicateReference) {
			slog.Warn("Duplicate transaction reference", "reference", req.Reference)
			return nil, err
		}
		slog.Error("Failed to create transaction", "error", err, "reference", req.Reference)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	metrics.TransactionsCreated.Inc()
	slog.Info("Transaction created", "reference", transaction.Reference, "phone", transaction.Phone, "amount", transaction.Amount)
	return transaction, nil
}

// GetTransactionByID retrieves a single transaction
func (s *TransactionServiceImpl) GetTransactionByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	return s.transactionRepo.FindByID(ctx, id)
}

// GetTransactionsByPhone retrieves all transactions for a phone number
func (s *TransactionServiceImpl) GetTransactionsByPhone(ctx context.Context, phone string) ([]*models.Transaction, error) {
	return s.transactionRepo.FindByPhone(ctx, phone)
}

// ListTransactions returns all transactions newest-first plus aggregate
// stats. No incremental counters are kept; the aggregation runs over the
// full list every call.
func (s *TransactionServiceImpl) ListTransactions(ctx context.Context) ([]*models.Transaction, *models.TransactionStats, error) {
	transactions, err := s.transactionRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Failed to list transactions", "error", err)
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	stats := ComputeStats(transactions)
	return transactions, stats, nil
}

// ComputeStats aggregates counters over a transaction list. TotalRevenue
// sums success-status amounts only.
func ComputeStats(transactions []*models.Transaction) *models.TransactionStats {
	stats := &models.TransactionStats{Total: len(transactions)}
	for _, t := range transactions {
		switch t.Status {
		case models.StatusSuccess:
			stats.Successful++
			stats.TotalRevenue += t.Amount
		case models.StatusPending:
			stats.Pending++
		case models.StatusFailed:
			stats.Failed++
		}
	}
	return stats
}
