package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"gymbook/admin-app/internal/apperr"
	"gymbook/admin-app/internal/domain"
	"gymbook/admin-app/internal/identity"
	"gymbook/admin-app/internal/repository"
	"gymbook/admin-app/internal/storage"
	"gymbook/admin-app/internal/watch"
)

// Defaults applied when the create request leaves optional fields unset.
const (
	defaultTrainerPrice = 45
	defaultTrainerOrder = 1
	minTempPasswordLen  = 6
)

// CreateTrainerInput carries the create request. Pointer fields distinguish
// "not provided" from a zero value.
type CreateTrainerInput struct {
	Email          string
	TempPassword   string
	FirstName      string
	LastName       string
	GymID          string
	Specialization string
	Description    string
	Price          *float64
	Order          *int
	Active         *bool
}

// TrainerAccountResult is returned by both provisioning operations.
type TrainerAccountResult struct {
	UID       string `json:"uid"`
	TrainerID string `json:"trainerId"`
}

// ProvisioningService provisions and deprovisions trainer accounts across the
// identity provider and the document store. Steps within each operation run
// strictly sequentially; concurrent operations against the same identity are
// not serialized (accepted for the single-admin operational profile).
type ProvisioningService interface {
	CreateTrainerAccount(ctx context.Context, callerUID string, in CreateTrainerInput) (*TrainerAccountResult, error)
	DeleteTrainerCompletely(ctx context.Context, callerUID, uid string) (*TrainerAccountResult, error)
}

type provisioningService struct {
	guard        *AdminGuard
	idp          identity.Provider
	users        repository.UserProfileRepository
	trainers     repository.TrainerRepository
	timeSlots    repository.TimeSlotRepository
	reservations repository.ReservationRepository
	photos       storage.FileStorage
	trainerHub   *watch.Hub
}

// NewProvisioningService creates a new instance of provisioningService.
func NewProvisioningService(
	guard *AdminGuard,
	idp identity.Provider,
	users repository.UserProfileRepository,
	trainers repository.TrainerRepository,
	timeSlots repository.TimeSlotRepository,
	reservations repository.ReservationRepository,
	photos storage.FileStorage,
	trainerHub *watch.Hub,
) ProvisioningService {
	return &provisioningService{
		guard:        guard,
		idp:          idp,
		users:        users,
		trainers:     trainers,
		timeSlots:    timeSlots,
		reservations: reservations,
		photos:       photos,
		trainerHub:   trainerHub,
	}
}

// CreateTrainerAccount provisions an identity record, a user profile and a
// trainer document as one logical unit. Validation runs before any mutation;
// if the profile or trainer step fails after the identity exists, the new
// identity (and profile) are removed best-effort so the email is not left
// burned by a half-provisioned account.
func (s *provisioningService) CreateTrainerAccount(ctx context.Context, callerUID string, in CreateTrainerInput) (*TrainerAccountResult, error) {
	if err := s.guard.RequireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	tempPassword := strings.TrimSpace(in.TempPassword)
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	gymID := strings.TrimSpace(in.GymID)
	specialization := strings.TrimSpace(in.Specialization)
	description := strings.TrimSpace(in.Description)

	// First failing check wins; nothing is written before all checks pass.
	if email == "" {
		return nil, apperr.InvalidArgument("email is required")
	}
	if len(tempPassword) < minTempPasswordLen {
		return nil, apperr.InvalidArgument("temporary password must be at least 6 characters")
	}
	if firstName == "" || lastName == "" {
		return nil, apperr.InvalidArgument("first and last name are required")
	}
	if gymID == "" {
		return nil, apperr.InvalidArgument("gymId is required")
	}
	if specialization == "" {
		return nil, apperr.InvalidArgument("specialization is required")
	}

	price := float64(defaultTrainerPrice)
	if in.Price != nil {
		price = *in.Price
	}
	order := defaultTrainerOrder
	if in.Order != nil {
		order = *in.Order
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}

	// 1) identity record
	rec, err := s.idp.Create(ctx, identity.CreateParams{
		Email:       email,
		Password:    tempPassword,
		DisplayName: firstName + " " + lastName,
	})
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, apperr.AlreadyExists("identity with this email already exists")
		}
		return nil, apperr.Internal(err)
	}
	uid := rec.UID

	// 2) user profile keyed by the new uid
	profile := &domain.UserProfile{
		ID:        uid,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      domain.RoleTrainer,
	}
	if err := s.users.Set(ctx, profile); err != nil {
		s.compensateCreate(ctx, uid, false)
		return nil, apperr.Internal(err)
	}

	// 3) trainer document
	trainer := &domain.Trainer{
		UserID:         uid,
		GymID:          gymID,
		Price:          price,
		Specialization: specialization,
		Description:    description,
		Order:          order,
		Active:         &active,
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
	}
	trainerID, err := s.trainers.Create(ctx, trainer)
	if err != nil {
		s.compensateCreate(ctx, uid, true)
		return nil, apperr.Internal(err)
	}

	// 4) role claim, a convenience signal for future tokens only; the admin
	// guard always re-reads the profile, so a claim failure doesn't make the
	// account unusable.
	if err := s.idp.SetClaims(ctx, uid, map[string]string{"role": string(domain.RoleTrainer)}); err != nil {
		log.Printf("WARN: setting role claim for %s failed: %v", uid, err)
	}

	s.trainerHub.Notify()

	return &TrainerAccountResult{UID: uid, TrainerID: trainerID.Hex()}, nil
}

// compensateCreate undoes the identity (and optionally the profile) left
// behind by a failed create. Best-effort: failures are logged, the original
// error is what the caller sees.
func (s *provisioningService) compensateCreate(ctx context.Context, uid string, profileWritten bool) {
	if profileWritten {
		if err := s.users.Delete(ctx, uid); err != nil {
			log.Printf("WARN: compensating profile delete for %s failed: %v", uid, err)
		}
	}
	if err := s.idp.Delete(ctx, uid); err != nil {
		log.Printf("WARN: compensating identity delete for %s failed: %v", uid, err)
	}
}

// DeleteTrainerCompletely removes every record that depends on the trainer
// owned by uid, then the trainer, profile and identity. Dependents go first
// so no orphaned slot or reservation ever references a missing trainer; the
// identity goes last and only best-effort, since the store-side records are
// the authoritative application state.
func (s *provisioningService) DeleteTrainerCompletely(ctx context.Context, callerUID, uid string) (*TrainerAccountResult, error) {
	if err := s.guard.RequireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}

	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, apperr.InvalidArgument("uid is required")
	}

	// 1) locate the trainer document by owning identity
	trainer, err := s.trainers.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("no trainer references this uid")
		}
		return nil, apperr.Internal(err)
	}
	trainerID := trainer.ID.Hex()

	// 2) cascade dependents under both foreign-key paths
	if err := s.timeSlots.DeleteByTrainerID(ctx, trainerID); err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.reservations.DeleteByTrainerID(ctx, trainerID); err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.reservations.DeleteByTrainerUserID(ctx, uid); err != nil {
		return nil, apperr.Internal(err)
	}

	// 3) trainer document
	if err := s.trainers.Delete(ctx, trainer.ID); err != nil {
		return nil, apperr.Internal(err)
	}

	// 4) user profile
	if err := s.users.Delete(ctx, uid); err != nil {
		return nil, apperr.Internal(err)
	}

	// 5) least-critical cleanup: photo object and identity record. Either
	// failing leaves nothing inconsistent in the application store, so the
	// operation still succeeds.
	if trainer.PhotoKey != "" && s.photos != nil {
		if err := s.photos.DeleteObject(ctx, trainer.PhotoKey); err != nil {
			log.Printf("WARN: deleting photo %s for trainer %s failed: %v", trainer.PhotoKey, trainerID, err)
		}
	}
	if err := s.idp.Delete(ctx, uid); err != nil {
		log.Printf("WARN: deleting identity %s failed: %v", uid, err)
	}

	s.trainerHub.Notify()

	return &TrainerAccountResult{UID: uid, TrainerID: trainerID}, nil
}
