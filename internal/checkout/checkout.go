// Package checkout bridges a bundle purchase attempt and the hosted
// Paystack checkout. It validates the request, generates the payment
// reference, opens the gateway session, and settles or abandons the
// attempt through two explicit continuations.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/up2ustore/bundles-backend/internal/catalog"
	"github.com/up2ustore/bundles-backend/internal/models"
	"github.com/up2ustore/bundles-backend/pkg/paystack"
)

// MinPhoneDigits is the minimum accepted phone number length
const MinPhoneDigits = 10

// Validation errors returned by Initiate before any network call is made
var (
	ErrInvalidPhone  = errors.New("invalid phone number")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidBundle = errors.New("invalid bundle")
)

// PaymentRequest is a single checkout attempt. It lives in memory only;
// nothing is persisted until the attempt settles.
type PaymentRequest struct {
	Phone  string
	Amount float64
	Bundle catalog.BundleOffer
}

// Validate fails fast on malformed requests so invalid attempts never
// reach the gateway
func (r PaymentRequest) Validate() error {
	if len(strings.TrimSpace(r.Phone)) < MinPhoneDigits {
		return ErrInvalidPhone
	}
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	if r.Bundle.ID == 0 {
		return ErrInvalidBundle
	}
	return nil
}

// SessionOpener is the slice of the Paystack client the adapter needs
type SessionOpener interface {
	InitializeTransaction(ctx context.Context, init paystack.InitializeRequest) (*paystack.InitializeData, error)
}

// TransactionSubmitter submits a settled transaction to the persistence
// service
type TransactionSubmitter interface {
	Submit(ctx context.Context, req models.CreateTransactionRequest) error
}

// Adapter turns payment requests into gateway sessions and gateway
// results into transaction records
type Adapter struct {
	currency string
	gateway  SessionOpener
	backend  TransactionSubmitter

	mu      sync.Mutex
	history []models.Transaction
}

// NewAdapter creates a new checkout Adapter
func NewAdapter(gateway SessionOpener, backend TransactionSubmitter, currency string) *Adapter {
	if currency == "" {
		currency = "GHS"
	}
	return &Adapter{
		currency: currency,
		gateway:  gateway,
		backend:  backend,
	}
}

// Session is an open gateway checkout scoped to one reference and
// amount. Exactly one of Settle or Abandon terminates it.
type Session struct {
	Reference        string
	AmountMinor      int64
	Currency         string
	AuthorizationURL string
	AccessCode       string

	adapter *Adapter
	request PaymentRequest
}

// Initiate validates the request, generates a fresh reference, converts
// the amount to minor units and opens a gateway session. Invalid
// requests fail before any network call.
func (a *Adapter) Initiate(ctx context.Context, req PaymentRequest) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reference := NewReference()
	session := &Session{
		Reference:   reference,
		AmountMinor: MinorUnits(req.Amount),
		Currency:    a.currency,
		adapter:     a,
		request:     req,
	}

	// Paystack requires an email; the storefront only collects a phone
	// number, so a synthetic address is derived from it.
	init := paystack.InitializeRequest{
		Email:     fmt.Sprintf("phone_%s@bundles.local", req.Phone),
		Amount:    session.AmountMinor,
		Reference: reference,
		Currency:  a.currency,
	}

	data, err := a.gateway.InitializeTransaction(ctx, init)
	if err != nil {
		return nil, fmt.Errorf("open gateway session for %s: %w", reference, err)
	}
	session.AuthorizationURL = data.AuthorizationURL
	session.AccessCode = data.AccessCode

	return session, nil
}

// Settle is the success continuation: the gateway reported the charge
// went through. The transaction is recorded locally and submitted to the
// persistence service on a best-effort basis — a backend failure is
// logged but never turns a charged customer's success into an error;
// reconciliation rides on the webhook path.
func (s *Session) Settle(ctx context.Context) models.Transaction {
	transaction := models.Transaction{
		Reference: s.Reference,
		Phone:     s.request.Phone,
		Bundle:    s.request.Bundle.Snapshot(),
		Amount:    s.request.Amount,
		Currency:  s.Currency,
		Status:    models.StatusSuccess,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	s.adapter.mu.Lock()
	s.adapter.history = append(s.adapter.history, transaction)
	s.adapter.mu.Unlock()

	err := s.adapter.backend.Submit(ctx, models.CreateTransactionRequest{
		Reference: s.Reference,
		Phone:     s.request.Phone,
		Amount:    s.request.Amount,
		Bundle:    s.request.Bundle.Snapshot(),
	})
	if err != nil {
		slog.Error("Failed to submit transaction to backend", "error", err, "reference", s.Reference)
	}

	return transaction
}

// Abandon is the close continuation: the customer dismissed the checkout
// before paying. The attempt leaves no transaction record anywhere.
func (s *Session) Abandon() {
	slog.Info("Checkout abandoned", "reference", s.Reference)
}

// History returns the settled purchases recorded by this adapter
func (a *Adapter) History() []models.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// NewReference generates a payment reference from a random token and the
// current unix-millisecond timestamp. Not cryptographic, but collisions
// are negligible at storefront volume; the store's unique index backstops
// the rest.
func NewReference() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("ref_%s%d", token, time.Now().UnixMilli())
}

// MinorUnits converts a decimal charge amount to the gateway's integer
// minor-unit representation, rounding to the nearest unit. Fractional
// minor units are not supported.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
