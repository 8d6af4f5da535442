package mongo

import (
	"context"
	"errors"
	"time"

	"gymbook/admin-app/internal/domain"
	"gymbook/admin-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

// mongoUserProfileRepository implements repository.UserProfileRepository using MongoDB.
type mongoUserProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoUserProfileRepository creates a new instance of mongoUserProfileRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserProfileRepository(db *mongo.Database) repository.UserProfileRepository {
	return &mongoUserProfileRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Set upserts a profile keyed by the identity uid. Merge semantics: only the
// named fields are written, and createdAt is set only on first insert.
func (r *mongoUserProfileRepository) Set(ctx context.Context, profile *domain.UserProfile) error {
	if profile.ID == "" {
		return errors.New("profile uid is required")
	}

	now := time.Now().UTC()
	filter := bson.M{"_id": profile.ID}
	update := bson.M{
		"$set": bson.M{
			"vardas":    profile.FirstName,
			"pavarde":   profile.LastName,
			"email":     profile.Email,
			"role":      profile.Role,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetByID retrieves a profile by identity uid.
func (r *mongoUserProfileRepository) GetByID(ctx context.Context, uid string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	filter := bson.M{"_id": uid}

	err := r.collection.FindOne(ctx, filter).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Delete removes the profile document. Deleting an absent uid is not an error:
// the cascade caller only cares that the document is gone.
func (r *mongoUserProfileRepository) Delete(ctx context.Context, uid string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": uid})
	return err
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
