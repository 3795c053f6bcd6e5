package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/up2ustore/bundles-backend/internal/metrics"
	"github.com/up2ustore/bundles-backend/internal/models"
	"github.com/up2ustore/bundles-backend/internal/repositories"
	"github.com/up2ustore/bundles-backend/pkg/paystack"
)

// PaymentVerifier is the slice of the Paystack client the verification
// service needs
type PaymentVerifier interface {
	VerifyTransaction(ctx context.Context, reference string) (*paystack.TransactionData, error)
}

// Compile-time check to ensure VerificationServiceImpl implements VerificationService
var _ VerificationService = (*VerificationServiceImpl)(nil)

type VerificationServiceImpl struct {
	transactionRepo repositories.TransactionRepository
	gateway         PaymentVerifier
}

func NewVerificationService(transactionRepo repositories.TransactionRepository, gateway PaymentVerifier) *VerificationServiceImpl {
	return &VerificationServiceImpl{
		transactionRepo: transactionRepo,
		gateway:         gateway,
	}
}

// VerifyPayment asks the gateway for the authoritative status of a
// reference. Only a gateway-reported success mutates the stored record;
// any other status is echoed back with stored state untouched.
func (s *VerificationServiceImpl) VerifyPayment(ctx context.Context, reference string) (*VerificationResult, error) {
	data, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		metrics.VerifyCalls.WithLabelValues("error").Inc()
		slog.Error("Gateway verification failed", "error", err, "reference", reference)
		return nil, fmt.Errorf("gateway verification for %s: %w", reference, err)
	}

	if data.Status != models.StatusSuccess {
		metrics.VerifyCalls.WithLabelValues(data.Status).Inc()
		slog.Info("Payment not verified", "reference", reference, "gatewayStatus", data.Status)
		return &VerificationResult{Verified: false, Status: data.Status}, nil
	}

	transaction, err := s.transactionRepo.MarkVerified(ctx, reference, data.Raw)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			slog.Warn("Verified payment has no stored transaction", "reference", reference)
			return nil, err
		}
		slog.Error("Failed to update verified transaction", "error", err, "reference", reference)
		return nil, fmt.Errorf("failed to update transaction %s: %w", reference, err)
	}

	metrics.VerifyCalls.WithLabelValues(models.StatusSuccess).Inc()
	slog.Info("Payment verified", "reference", reference, "phone", transaction.Phone)
	return &VerificationResult{Verified: true, Status: models.StatusSuccess, Transaction: transaction}, nil
}

// HandleChargeSuccess applies the webhook confirmation for a reference.
// The update is idempotent; re-delivery refreshes updatedAt and nothing
// else. An unknown reference is not an error — the caller acknowledges
// the delivery and the mismatch is logged for operator follow-up.
func (s *VerificationServiceImpl) HandleChargeSuccess(ctx context.Context, reference string, data map[string]interface{}) error {
	transaction, err := s.transactionRepo.MarkVerified(ctx, reference, data)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.WebhookEvents.WithLabelValues("unknown_reference").Inc()
			slog.Warn("Webhook for unknown transaction reference", "reference", reference)
			return nil
		}
		slog.Error("Failed to apply webhook update", "error", err, "reference", reference)
		return fmt.Errorf("failed to apply webhook update for %s: %w", reference, err)
	}

	metrics.WebhookEvents.WithLabelValues("applied").Inc()
	slog.Info("Payment confirmed via webhook",
		"reference", reference,
		"phone", transaction.Phone,
		"bundle", transaction.Bundle.Name,
		"amount", transaction.Amount,
	)

	// Bundle delivery (SMS/WhatsApp) is out of scope; fulfillment would
	// hang off this confirmation.
	return nil
}
