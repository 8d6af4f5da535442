package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trainer is a trainer's public profile and business attributes.
// The document carries denormalized name/email copies so list views
// don't have to join against the users collection.
type Trainer struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"userId" json:"userId"` // owning identity uid
	GymID          string             `bson:"gymId" json:"gymId"`
	Price          float64            `bson:"kaina" json:"kaina"` // hourly price, > 0
	Specialization string             `bson:"specializacija" json:"specializacija"`
	Description    string             `bson:"aprasymas" json:"aprasymas"`
	Order          int                `bson:"order" json:"order"` // list position, >= 1

	// Active is a pointer so that documents written before the flag existed
	// (field absent) decode as nil and are treated as active.
	Active *bool `bson:"active,omitempty" json:"active"`

	FirstName string `bson:"vardas" json:"vardas"`
	LastName  string `bson:"pavarde" json:"pavarde"`
	Email     string `bson:"email" json:"email"`

	PhotoKey string `bson:"photoKey,omitempty" json:"photoKey,omitempty"` // object-store key, may be empty

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsActive treats an absent active field as active.
func (t *Trainer) IsActive() bool {
	return t.Active == nil || *t.Active
}
