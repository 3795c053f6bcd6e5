package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/up2ustore/bundles-backend/internal/models"
	"github.com/up2ustore/bundles-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TransactionRepository implements the repositories.TransactionRepository interface
type TransactionRepository struct {
	collection *mongo.Collection
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *mongo.Database) repositories.TransactionRepository {
	return &TransactionRepository{
		collection: db.Collection("transactions"),
	}
}

// Create inserts a new transaction. A duplicate reference is reported as
// repositories.ErrDuplicateReference so callers can surface a conflict
// distinctly from a generic storage error.
func (r *TransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, transaction)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateReference
		}
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		transaction.ID = id
	}
	return nil
}

// FindByID finds a transaction by ID
func (r *TransactionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&transaction)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

// FindByReference finds a transaction by its payment reference
func (r *TransactionRepository) FindByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.collection.FindOne(ctx, bson.M{"reference": reference}).Decode(&transaction)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

// FindByPhone finds all transactions for a phone number
func (r *TransactionRepository) FindByPhone(ctx context.Context, phone string) ([]*models.Transaction, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"phone": phone})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var transactions []*models.Transaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// FindAll returns all transactions ordered newest-first
func (r *TransactionRepository) FindAll(ctx context.Context) ([]*models.Transaction, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var transactions []*models.Transaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// MarkVerified applies the authoritative success update keyed by
// reference. The update is a field-level $set, so webhook re-delivery and
// a racing verify call both converge on the same terminal state; status
// can only move to success here, never away from it.
func (r *TransactionRepository) MarkVerified(ctx context.Context, reference string, gatewayResponse map[string]interface{}) (*models.Transaction, error) {
	update := bson.M{
		"$set": bson.M{
			"status":           models.StatusSuccess,
			"paymentVerified":  true,
			"paystackResponse": gatewayResponse,
			"updatedAt":        time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var transaction models.Transaction
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"reference": reference}, update, opts).Decode(&transaction)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

// Count counts all transactions
func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
