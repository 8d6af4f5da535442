package mongo

import (
	"context"
	"errors"
	"time"

	"gymbook/admin-app/internal/domain"
	"gymbook/admin-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const timeSlotCollectionName = "timeslots"

// mongoTimeSlotRepository implements repository.TimeSlotRepository using MongoDB.
type mongoTimeSlotRepository struct {
	collection *mongo.Collection
	batchSize  int
}

// NewMongoTimeSlotRepository creates a new instance of mongoTimeSlotRepository.
func NewMongoTimeSlotRepository(db *mongo.Database) repository.TimeSlotRepository {
	return &mongoTimeSlotRepository{
		collection: db.Collection(timeSlotCollectionName),
		batchSize:  DefaultBatchSize,
	}
}

// Create inserts a new time slot.
func (r *mongoTimeSlotRepository) Create(ctx context.Context, slot *domain.TimeSlot) (primitive.ObjectID, error) {
	if slot.TrainerID == "" {
		return primitive.NilObjectID, errors.New("time slot trainerId is required")
	}

	slot.ID = primitive.NewObjectID()
	slot.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, slot)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// DeleteByTrainerID removes every slot owned by the trainer, in pages.
func (r *mongoTimeSlotRepository) DeleteByTrainerID(ctx context.Context, trainerID string) error {
	return deleteInBatches(ctx, r.collection, bson.M{"trainerId": trainerID}, r.batchSize)
}

// CountByTrainerID counts slots referencing the trainer.
func (r *mongoTimeSlotRepository) CountByTrainerID(ctx context.Context, trainerID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"trainerId": trainerID})
}

// EnsureTimeSlotIndexes creates necessary indexes for the timeslots collection.
func EnsureTimeSlotIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "startsAt", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
