package service

import (
	"context"
	"errors"
	"strings"

	"gymbook/admin-app/internal/apperr"
	"gymbook/admin-app/internal/domain"
	"gymbook/admin-app/internal/repository"
	"gymbook/admin-app/internal/watch"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GymInput carries the gym form fields.
type GymInput struct {
	Name    string
	Address string
	Order   int
}

// GymService manages the gym catalog for the admin console.
type GymService interface {
	CreateGym(ctx context.Context, callerUID string, in GymInput) (*domain.Gym, error)
	UpdateGym(ctx context.Context, callerUID string, id primitive.ObjectID, in GymInput) (*domain.Gym, error)
	DeleteGym(ctx context.Context, callerUID string, id primitive.ObjectID) error
	ListGyms(ctx context.Context, callerUID string) ([]domain.Gym, error)
}

type gymService struct {
	guard  *AdminGuard
	gyms   repository.GymRepository
	gymHub *watch.Hub
}

// NewGymService creates a new instance of gymService.
func NewGymService(guard *AdminGuard, gyms repository.GymRepository, gymHub *watch.Hub) GymService {
	return &gymService{guard: guard, gyms: gyms, gymHub: gymHub}
}

func (s *gymService) validate(in *GymInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	if in.Name == "" {
		return apperr.InvalidArgument("gym name is required")
	}
	if in.Address == "" {
		return apperr.InvalidArgument("gym address is required")
	}
	if in.Order < 1 {
		in.Order = 1
	}
	return nil
}

func (s *gymService) CreateGym(ctx context.Context, callerUID string, in GymInput) (*domain.Gym, error) {
	if err := s.guard.RequireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	gym := &domain.Gym{
		Name:    in.Name,
		Address: in.Address,
		Order:   in.Order,
	}
	id, err := s.gyms.Create(ctx, gym)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	gym.ID = id

	s.gymHub.Notify()
	return gym, nil
}

func (s *gymService) UpdateGym(ctx context.Context, callerUID string, id primitive.ObjectID, in GymInput) (*domain.Gym, error) {
	if err := s.guard.RequireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	gym := &domain.Gym{
		ID:      id,
		Name:    in.Name,
		Address: in.Address,
		Order:   in.Order,
	}
	if err := s.gyms.Update(ctx, gym); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("gym not found")
		}
		return nil, apperr.Internal(err)
	}

	s.gymHub.Notify()
	return s.getInternal(ctx, id)
}

func (s *gymService) DeleteGym(ctx context.Context, callerUID string, id primitive.ObjectID) error {
	if err := s.guard.RequireAdmin(ctx, callerUID); err != nil {
		return err
	}

	// Trainers reference gyms weakly; deleting a gym intentionally leaves
	// its trainers in place.
	if err := s.gyms.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("gym not found")
		}
		return apperr.Internal(err)
	}

	s.gymHub.Notify()
	return nil
}

func (s *gymService) ListGyms(ctx context.Context, callerUID string) ([]domain.Gym, error) {
	if err := s.guard.RequireAdmin(ctx, callerUID); err != nil {
		return nil, err
	}

	gyms, err := s.gyms.ListByOrder(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return gyms, nil
}

func (s *gymService) getInternal(ctx context.Context, id primitive.ObjectID) (*domain.Gym, error) {
	gym, err := s.gyms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("gym not found")
		}
		return nil, apperr.Internal(err)
	}
	return gym, nil
}
