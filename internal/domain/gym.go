package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gym is a venue entity with an independent lifecycle. Trainers reference it
// weakly by identifier; deleting a gym does not touch its trainers.
type Gym struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"pavadinimas" json:"pavadinimas"`
	Address   string             `bson:"adresas" json:"adresas"`
	Order     int                `bson:"order" json:"order"` // list position, >= 1
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
