package domain

import (
	"time"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
)

// UserProfile is the application-level record for one authenticatable
// principal. It is keyed by the identity provider's uid (string), not by a
// store-assigned ObjectID, so profile and identity always share an identifier.
type UserProfile struct {
	ID        string    `bson:"_id" json:"id"` // identity uid
	FirstName string    `bson:"vardas" json:"vardas"`
	LastName  string    `bson:"pavarde" json:"pavarde"`
	Email     string    `bson:"email" json:"email"` // denormalized copy of the identity email
	Role      Role      `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *UserProfile) IsTrainer() bool {
	return u.Role == RoleTrainer
}

// FullName builds the display name the identity provider stores ("first last").
func (u *UserProfile) FullName() string {
	return u.FirstName + " " + u.LastName
}
