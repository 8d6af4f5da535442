package mongo

import (
	"context"
	"errors"
	"time"

	"gymbook/admin-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const adminCollectionName = "admins"

// mongoAdminAllowlistRepository implements repository.AdminAllowlistRepository
// over a collection whose documents are keyed by identity uid; presence of the
// document is the whole signal.
type mongoAdminAllowlistRepository struct {
	collection *mongo.Collection
}

// NewMongoAdminAllowlistRepository creates a new instance of mongoAdminAllowlistRepository.
func NewMongoAdminAllowlistRepository(db *mongo.Database) repository.AdminAllowlistRepository {
	return &mongoAdminAllowlistRepository{
		collection: db.Collection(adminCollectionName),
	}
}

// IsAllowed reports whether the uid is on the allow-list.
func (r *mongoAdminAllowlistRepository) IsAllowed(ctx context.Context, uid string) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"_id": uid}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Add puts a uid on the allow-list. Idempotent.
func (r *mongoAdminAllowlistRepository) Add(ctx context.Context, uid string) error {
	update := bson.M{"$setOnInsert": bson.M{"createdAt": time.Now().UTC()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": uid}, update, options.Update().SetUpsert(true))
	return err
}

// Remove takes a uid off the allow-list.
func (r *mongoAdminAllowlistRepository) Remove(ctx context.Context, uid string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": uid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
