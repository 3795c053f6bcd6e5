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
)

// AdminUserRepository implements the repositories.AdminUserRepository interface
type AdminUserRepository struct {
	collection *mongo.Collection
}

// NewAdminUserRepository creates a new AdminUserRepository
func NewAdminUserRepository(db *mongo.Database) repositories.AdminUserRepository {
	return &AdminUserRepository{
		collection: db.Collection("admin_users"),
	}
}

// Create creates a new admin user
func (r *AdminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// FindByEmail finds an admin user by email
func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByID finds an admin user by ID
func (r *AdminUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
