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

const reservationCollectionName = "reservations"

// mongoReservationRepository implements repository.ReservationRepository using MongoDB.
type mongoReservationRepository struct {
	collection *mongo.Collection
	batchSize  int
}

// NewMongoReservationRepository creates a new instance of mongoReservationRepository.
func NewMongoReservationRepository(db *mongo.Database) repository.ReservationRepository {
	return &mongoReservationRepository{
		collection: db.Collection(reservationCollectionName),
		batchSize:  DefaultBatchSize,
	}
}

// Create inserts a new reservation.
func (r *mongoReservationRepository) Create(ctx context.Context, res *domain.Reservation) (primitive.ObjectID, error) {
	if res.TrainerID == "" && res.TrainerUserID == "" {
		return primitive.NilObjectID, errors.New("reservation must reference a trainer")
	}

	res.ID = primitive.NewObjectID()
	res.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, res)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// DeleteByTrainerID removes reservations referencing the trainer document id.
func (r *mongoReservationRepository) DeleteByTrainerID(ctx context.Context, trainerID string) error {
	return deleteInBatches(ctx, r.collection, bson.M{"trainerId": trainerID}, r.batchSize)
}

// DeleteByTrainerUserID removes reservations that only recorded the
// identity-level reference.
func (r *mongoReservationRepository) DeleteByTrainerUserID(ctx context.Context, uid string) error {
	return deleteInBatches(ctx, r.collection, bson.M{"trainerUserId": uid}, r.batchSize)
}

// CountByTrainerID counts reservations referencing the trainer document id.
func (r *mongoReservationRepository) CountByTrainerID(ctx context.Context, trainerID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"trainerId": trainerID})
}

// CountByTrainerUserID counts reservations referencing the identity uid.
func (r *mongoReservationRepository) CountByTrainerUserID(ctx context.Context, uid string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"trainerUserId": uid})
}

// EnsureReservationIndexes creates necessary indexes for the reservations collection.
func EnsureReservationIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "trainerUserId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
