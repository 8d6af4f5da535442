package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"gymbook/admin-app/internal/domain"
	"gymbook/admin-app/internal/identity"
	"gymbook/admin-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes for the repository and identity ports. Failure-injection
// fields let tests force a step to fail.

var errTransient = errors.New("transient backend failure")

type fakeIdentity struct {
	mu        sync.Mutex
	seq       int
	records   map[string]*identity.Record // by uid
	passwords map[string]string           // by uid
	claims    map[string]map[string]string

	createErr    error
	deleteErr    error
	setClaimsErr error
	deleted      []string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		records:   make(map[string]*identity.Record),
		passwords: make(map[string]string),
		claims:    make(map[string]map[string]string),
	}
}

func (f *fakeIdentity) Create(_ context.Context, params identity.CreateParams) (*identity.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, rec := range f.records {
		if rec.Email == params.Email {
			return nil, identity.ErrEmailTaken
		}
	}
	f.seq++
	uid := "uid-" + strconv.Itoa(f.seq)
	rec := &identity.Record{
		UID:         uid,
		Email:       params.Email,
		DisplayName: params.DisplayName,
		Disabled:    params.Disabled,
	}
	f.records[uid] = rec
	f.passwords[uid] = params.Password
	return rec, nil
}

func (f *fakeIdentity) GetByUID(_ context.Context, uid string) (*identity.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[uid]
	if !ok {
		return nil, identity.ErrIdentityNotFound
	}
	return rec, nil
}

func (f *fakeIdentity) GetByEmail(_ context.Context, email string) (*identity.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.Email == email {
			return rec, nil
		}
	}
	return nil, identity.ErrIdentityNotFound
}

func (f *fakeIdentity) VerifyPassword(_ context.Context, email, password string) (*identity.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for uid, rec := range f.records {
		if rec.Email == email {
			if f.passwords[uid] != password {
				return nil, identity.ErrBadCredentials
			}
			if rec.Disabled {
				return nil, identity.ErrDisabled
			}
			return rec, nil
		}
	}
	return nil, identity.ErrBadCredentials
}

func (f *fakeIdentity) SetClaims(_ context.Context, uid string, claims map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setClaimsErr != nil {
		return f.setClaimsErr
	}
	if _, ok := f.records[uid]; !ok {
		return identity.ErrIdentityNotFound
	}
	f.claims[uid] = claims
	return nil
}

func (f *fakeIdentity) Delete(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.records[uid]; !ok {
		return identity.ErrIdentityNotFound
	}
	delete(f.records, uid)
	delete(f.passwords, uid)
	delete(f.claims, uid)
	f.deleted = append(f.deleted, uid)
	return nil
}

type fakeUserProfiles struct {
	mu       sync.Mutex
	profiles map[string]domain.UserProfile
	setErr   error
}

func newFakeUserProfiles() *fakeUserProfiles {
	return &fakeUserProfiles{profiles: make(map[string]domain.UserProfile)}
}

func (f *fakeUserProfiles) Set(_ context.Context, profile *domain.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	p := *profile
	now := time.Now().UTC()
	if existing, ok := f.profiles[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
	} else {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeUserProfiles) GetByID(_ context.Context, uid string) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[uid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := p
	return &out, nil
}

func (f *fakeUserProfiles) Delete(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.profiles, uid)
	return nil
}

type fakeTrainers struct {
	mu        sync.Mutex
	trainers  map[primitive.ObjectID]domain.Trainer
	createErr error
}

func newFakeTrainers() *fakeTrainers {
	return &fakeTrainers{trainers: make(map[primitive.ObjectID]domain.Trainer)}
}

func (f *fakeTrainers) Create(_ context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	trainer.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	trainer.CreatedAt = now
	trainer.UpdatedAt = now
	f.trainers[trainer.ID] = *trainer
	return trainer.ID, nil
}

func (f *fakeTrainers) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := t
	return &out, nil
}

func (f *fakeTrainers) GetByUserID(_ context.Context, uid string) (*domain.Trainer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.trainers {
		if t.UserID == uid {
			out := t
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTrainers) Update(_ context.Context, trainer *domain.Trainer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.trainers[trainer.ID]; !ok {
		return repository.ErrNotFound
	}
	t := *trainer
	t.UpdatedAt = time.Now().UTC()
	f.trainers[trainer.ID] = t
	return nil
}

func (f *fakeTrainers) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.trainers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.trainers, id)
	return nil
}

func (f *fakeTrainers) ListByOrder(_ context.Context) ([]domain.Trainer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Trainer, 0, len(f.trainers))
	for _, t := range f.trainers {
		out = append(out, t)
	}
	// Insertion sort by order keeps the fake dependency-free.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Order < out[j-1].Order; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

type fakeGyms struct {
	mu   sync.Mutex
	gyms map[primitive.ObjectID]domain.Gym
}

func newFakeGyms() *fakeGyms {
	return &fakeGyms{gyms: make(map[primitive.ObjectID]domain.Gym)}
}

func (f *fakeGyms) Create(_ context.Context, gym *domain.Gym) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gym.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	gym.CreatedAt = now
	gym.UpdatedAt = now
	f.gyms[gym.ID] = *gym
	return gym.ID, nil
}

func (f *fakeGyms) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Gym, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.gyms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := g
	return &out, nil
}

func (f *fakeGyms) Update(_ context.Context, gym *domain.Gym) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.gyms[gym.ID]
	if !ok {
		return repository.ErrNotFound
	}
	g := *gym
	g.CreatedAt = existing.CreatedAt
	g.UpdatedAt = time.Now().UTC()
	f.gyms[gym.ID] = g
	return nil
}

func (f *fakeGyms) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.gyms[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.gyms, id)
	return nil
}

func (f *fakeGyms) ListByOrder(_ context.Context) ([]domain.Gym, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Gym, 0, len(f.gyms))
	for _, g := range f.gyms {
		out = append(out, g)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Order < out[j-1].Order; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

type fakeTimeSlots struct {
	mu    sync.Mutex
	slots []domain.TimeSlot
}

func (f *fakeTimeSlots) Create(_ context.Context, slot *domain.TimeSlot) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot.ID = primitive.NewObjectID()
	f.slots = append(f.slots, *slot)
	return slot.ID, nil
}

func (f *fakeTimeSlots) DeleteByTrainerID(_ context.Context, trainerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.slots[:0]
	for _, s := range f.slots {
		if s.TrainerID != trainerID {
			kept = append(kept, s)
		}
	}
	f.slots = kept
	return nil
}

func (f *fakeTimeSlots) CountByTrainerID(_ context.Context, trainerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, s := range f.slots {
		if s.TrainerID == trainerID {
			n++
		}
	}
	return n, nil
}

type fakeReservations struct {
	mu           sync.Mutex
	reservations []domain.Reservation
}

func (f *fakeReservations) Create(_ context.Context, res *domain.Reservation) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res.ID = primitive.NewObjectID()
	f.reservations = append(f.reservations, *res)
	return res.ID, nil
}

func (f *fakeReservations) DeleteByTrainerID(_ context.Context, trainerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.reservations[:0]
	for _, r := range f.reservations {
		if r.TrainerID != trainerID {
			kept = append(kept, r)
		}
	}
	f.reservations = kept
	return nil
}

func (f *fakeReservations) DeleteByTrainerUserID(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.reservations[:0]
	for _, r := range f.reservations {
		if r.TrainerUserID != uid {
			kept = append(kept, r)
		}
	}
	f.reservations = kept
	return nil
}

func (f *fakeReservations) CountByTrainerID(_ context.Context, trainerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.reservations {
		if r.TrainerID == trainerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReservations) CountByTrainerUserID(_ context.Context, uid string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.reservations {
		if r.TrainerUserID == uid {
			n++
		}
	}
	return n, nil
}

type fakeAllowlist struct {
	mu   sync.Mutex
	uids map[string]bool
}

func newFakeAllowlist() *fakeAllowlist {
	return &fakeAllowlist{uids: make(map[string]bool)}
}

func (f *fakeAllowlist) IsAllowed(_ context.Context, uid string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uids[uid], nil
}

func (f *fakeAllowlist) Add(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uids[uid] = true
	return nil
}

func (f *fakeAllowlist) Remove(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.uids[uid] {
		return repository.ErrNotFound
	}
	delete(f.uids, uid)
	return nil
}

type fakeStorage struct {
	mu        sync.Mutex
	deleted   []string
	presigned []string
	deleteErr error
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presigned = append(f.presigned, objectKey)
	return "https://storage.test/" + objectKey + "?sig=upload", nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/" + objectKey + "?sig=download", nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, objectKey)
	return nil
}
