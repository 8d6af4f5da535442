package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimeSlot is a bookable interval offered by a trainer. Its lifecycle is
// fully dependent on the owning Trainer: slots are swept when the trainer
// is deleted.
type TimeSlot struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID string             `bson:"trainerId" json:"trainerId"` // Trainer document id (hex)
	StartsAt  time.Time          `bson:"startsAt" json:"startsAt"`
	EndsAt    time.Time          `bson:"endsAt" json:"endsAt"`
	Capacity  int                `bson:"capacity" json:"capacity"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Reservation is a booking against a time slot. Records created at different
// times reference the trainer by either the Trainer document id (trainerId)
// or the trainer's identity uid (trainerUserId); a cascade must sweep both
// paths.
type Reservation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TimeSlotID    string             `bson:"timeSlotId" json:"timeSlotId"`
	TrainerID     string             `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	TrainerUserID string             `bson:"trainerUserId,omitempty" json:"trainerUserId,omitempty"`
	ClientName    string             `bson:"clientName" json:"clientName"`
	ClientEmail   string             `bson:"clientEmail" json:"clientEmail"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
