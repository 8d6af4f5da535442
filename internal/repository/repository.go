package repository

import (
	"context"

	"gymbook/admin-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserProfileRepository stores application-level user profiles, keyed by the
// identity provider's uid. Set is an upsert with merge semantics so a
// re-provisioned uid keeps fields the caller didn't touch.
type UserProfileRepository interface {
	Set(ctx context.Context, profile *domain.UserProfile) error
	GetByID(ctx context.Context, uid string) (*domain.UserProfile, error)
	Delete(ctx context.Context, uid string) error
}

// GymRepository manages the gym catalog.
type GymRepository interface {
	Create(ctx context.Context, gym *domain.Gym) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Gym, error)
	Update(ctx context.Context, gym *domain.Gym) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByOrder(ctx context.Context) ([]domain.Gym, error)
}

// TrainerRepository manages trainer documents.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	// GetByUserID finds the (at most one) trainer owned by the given identity uid.
	GetByUserID(ctx context.Context, uid string) (*domain.Trainer, error)
	Update(ctx context.Context, trainer *domain.Trainer) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByOrder(ctx context.Context) ([]domain.Trainer, error)
}

// TimeSlotRepository manages bookable intervals. DeleteByTrainerID removes
// every slot referencing the trainer, paging under the store's batch limit.
type TimeSlotRepository interface {
	Create(ctx context.Context, slot *domain.TimeSlot) (primitive.ObjectID, error)
	DeleteByTrainerID(ctx context.Context, trainerID string) error
	CountByTrainerID(ctx context.Context, trainerID string) (int64, error)
}

// ReservationRepository manages bookings. The two delete methods cover the
// two independent foreign-key paths a reservation may use to reference a
// trainer (document id vs identity uid).
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (primitive.ObjectID, error)
	DeleteByTrainerID(ctx context.Context, trainerID string) error
	DeleteByTrainerUserID(ctx context.Context, uid string) error
	CountByTrainerID(ctx context.Context, trainerID string) (int64, error)
	CountByTrainerUserID(ctx context.Context, uid string) (int64, error)
}

// AdminAllowlistRepository consults the admins collection, the console's
// own access gate. The callable admin operations use users.role instead.
type AdminAllowlistRepository interface {
	IsAllowed(ctx context.Context, uid string) (bool, error)
	Add(ctx context.Context, uid string) error
	Remove(ctx context.Context, uid string) error
}
