package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that owns fitness plans. Users are provisioned outside
// this service; it only ever reads them.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password,omitempty" json:"-"` // Never expose this via JSON
	ProfilePic   string             `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// HasPassword reports whether a credential hash is stored for the user.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
