package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gymbook/admin-app/internal/apperr"
	"gymbook/admin-app/internal/domain"
	"gymbook/admin-app/internal/repository"
	"gymbook/admin-app/internal/storage"
	"gymbook/admin-app/internal/watch"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UpdateTrainerInput mirrors the console's trainer edit form: only business
// attributes are editable; name/email come from SyncFromUser.
type UpdateTrainerInput struct {
	GymID          string
	Price          float64
	Specialization string
	Description    string
	Order          int
	Active         bool
}

// PhotoUpload is a presigned upload slot for a trainer photo.
type PhotoUpload struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// TrainerService covers the admin console's trainer management: the list
// view, the edit form, the sync-from-profile action and photo handling.
type TrainerService interface {
	ListTrainers(ctx context.Context, callerUID string) ([]domain.Trainer, error)
	UpdateTrainer(ctx context.Context, callerUID string, id primitive.ObjectID, in UpdateTrainerInput) (*domain.Trainer, error)
	// SyncFromUser copies the denormalized name/email fields from the owning
	// user profile onto the trainer document.
	SyncFromUser(ctx context.Context, callerUID string, id primitive.ObjectID) (*domain.Trainer, error)
	IssuePhotoUploadURL(ctx context.Context, callerUID string, id primitive.ObjectID, contentType string) (*PhotoUpload, error)
	RemovePhoto(ctx context.Context, callerUID string, id primitive.ObjectID) error
}

type trainerService struct {
	guard      *AdminGuard
	trainers   repository.TrainerRepository
	users      repository.UserProfileRepository
	photos     storage.FileStorage
	trainerHub *watch.Hub
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	guard *AdminGuard,
	trainers repository.TrainerRepository,
	users repository.UserProfileRepository,
	photos storage.FileStorage,
	trainerHub *watch.Hub,
) TrainerService {
	return &trainerService{
		guard:      guard,
		trainers:   trainers,
		users:      users,
		photos:     photos,
		trainerHub: trainerHub,
	}
}

func (s *trainerService) ListTrainers(ctx context.Context, callerUID string) ([]domain.Trainer, error) {
	if err := s.guard.RequireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}

	trainers, err := s.trainers.ListByOrder(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return trainers, nil
}

func (s *trainerService) UpdateTrainer(ctx context.Context, callerUID string, id primitive.ObjectID, in UpdateTrainerInput) (*domain.Trainer, error) {
	if err := s.guard.RequireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}

	in.GymID = strings.TrimSpace(in.GymID)
	in.Specialization = strings.TrimSpace(in.Specialization)
	in.Description = strings.TrimSpace(in.Description)

	// Same checks the edit form ran client-side.
	if in.GymID == "" {
		return nil, apperr.InvalidArgument("gymId is required")
	}
	if in.Price <= 0 {
		return nil, apperr.InvalidArgument("price must be greater than zero")
	}
	if in.Specialization == "" {
		return nil, apperr.InvalidArgument("specialization is required")
	}
	if in.Order < 1 {
		in.Order = 1
	}

	trainer, err := s.getInternal(ctx, id)
	if err != nil {
		return nil, err
	}

	trainer.GymID = in.GymID
	trainer.Price = in.Price
	trainer.Specialization = in.Specialization
	trainer.Description = in.Description
	trainer.Order = in.Order
	trainer.Active = &in.Active

	if err := s.trainers.Update(ctx, trainer); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("trainer not found")
		}
		return nil, apperr.Internal(err)
	}

	s.trainerHub.Notify()
	return s.getInternal(ctx, id)
}

func (s *trainerService) SyncFromUser(ctx context.Context, callerUID string, id primitive.ObjectID) (*domain.Trainer, error) {
	if err := s.guard.RequireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}

	trainer, err := s.getInternal(ctx, id)
	if err != nil {
		return nil, err
	}
	if trainer.UserID == "" {
		return nil, apperr.InvalidArgument("trainer has no userId")
	}

	profile, err := s.users.GetByID(ctx, trainer.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user profile not found for trainer")
		}
		return nil, apperr.Internal(err)
	}

	trainer.FirstName = profile.FirstName
	trainer.LastName = profile.LastName
	trainer.Email = profile.Email

	if err := s.trainers.Update(ctx, trainer); err != nil {
		return nil, apperr.Internal(err)
	}

	s.trainerHub.Notify()
	return s.getInternal(ctx, id)
}

func (s *trainerService) IssuePhotoUploadURL(ctx context.Context, callerUID string, id primitive.ObjectID, contentType string) (*PhotoUpload, error) {
	if err := s.guard.RequireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}
	if contentType == "" {
		return nil, apperr.InvalidArgument("contentType is required")
	}

	trainer, err := s.getInternal(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("trainers/%s/%s", trainer.ID.Hex(), uuid.NewString())
	url, err := s.photos.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	oldKey := trainer.PhotoKey
	trainer.PhotoKey = key
	if err := s.trainers.Update(ctx, trainer); err != nil {
		return nil, apperr.Internal(err)
	}
	if oldKey != "" {
		if err := s.photos.DeleteObject(ctx, oldKey); err != nil {
			log.Printf("WARN: deleting replaced photo %s failed: %v", oldKey, err)
		}
	}

	s.trainerHub.Notify()
	return &PhotoUpload{URL: url, Key: key}, nil
}

func (s *trainerService) RemovePhoto(ctx context.Context, callerUID string, id primitive.ObjectID) error {
	if err := s.guard.RequireAdmin(ctx, callerUID); err != nil {
		return err
	}

	trainer, err := s.getInternal(ctx, id)
	if err != nil {
		return err
	}
	if trainer.PhotoKey == "" {
		return nil
	}

	if err := s.photos.DeleteObject(ctx, trainer.PhotoKey); err != nil {
		return apperr.Internal(err)
	}

	trainer.PhotoKey = ""
	if err := s.trainers.Update(ctx, trainer); err != nil {
		return apperr.Internal(err)
	}

	s.trainerHub.Notify()
	return nil
}

func (s *trainerService) getInternal(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	trainer, err := s.trainers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("trainer not found")
		}
		return nil, apperr.Internal(err)
	}
	return trainer, nil
}
