package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction statuses. A transaction is created as pending and moves to
// success either optimistically (client callback) or authoritatively
// (verify call or webhook). Success is terminal. Failed is part of the
// enumeration but no current path produces it.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Transaction represents a bundle purchase transaction. The reference is
// the unique correlation key shared by the storefront, the backend and
// Paystack; a transaction is created once per reference and only ever
// updated afterwards.
type Transaction struct {
	ID               primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	Reference        string                 `bson:"reference" json:"reference"`
	Phone            string                 `bson:"phone" json:"phone"`
	Bundle           BundleSnapshot         `bson:"bundle" json:"bundle"`
	Amount           float64                `bson:"amount" json:"amount"`
	Currency         string                 `bson:"currency" json:"currency"`
	Status           string                 `bson:"status" json:"status"`
	PaymentVerified  bool                   `bson:"paymentVerified" json:"paymentVerified"`
	PaystackResponse map[string]interface{} `bson:"paystackResponse,omitempty" json:"paystackResponse,omitempty"`
	CreatedAt        time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// BundleSnapshot is the bundle offer as sold, denormalized into the
// transaction so historical records survive catalog changes.
type BundleSnapshot struct {
	ID       int     `bson:"id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Data     string  `bson:"data" json:"data"`
	Price    float64 `bson:"price" json:"price"`
	Validity string  `bson:"validity" json:"validity"`
}

// TransactionStats holds aggregate counters computed over the full
// transaction list at query time. TotalRevenue sums amounts of
// success-status transactions only.
type TransactionStats struct {
	Total        int     `json:"total"`
	Successful   int     `json:"successful"`
	Pending      int     `json:"pending"`
	Failed       int     `json:"failed"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// CreateTransactionRequest is the payload accepted by POST /api/transactions
type CreateTransactionRequest struct {
	Reference string         `json:"reference"`
	Phone     string         `json:"phone"`
	Amount    float64        `json:"amount"`
	Bundle    BundleSnapshot `json:"bundle"`
}
