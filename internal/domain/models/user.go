// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents superadmins, admins, and plain members.
//
// NOTE:
//   - "Lead" is not a stored role. A user leads a project by carrying
//     the lead member tag on that project's member list; the identity
//     package derives the effective actor role from membership records.
type User struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	NameCI  string             `bson:"name_ci" json:"name_ci"` // lowercase, diacritics-stripped
	Email   string             `bson:"email" json:"email"`
	EmailCI string             `bson:"email_ci" json:"email_ci"`
	Role    string             `bson:"role" json:"role"` // superadmin | admin | member
	Status  string             `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Actor is the identity performing an operation, as resolved by the
// identity package (or supplied by the surrounding session layer).
// It is never persisted.
type Actor struct {
	UserID primitive.ObjectID
	Name   string
	Role   string // superadmin | admin | lead | member (lead is derived)
}
