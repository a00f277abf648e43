// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSiteName is used wherever no configured site name is available.
const DefaultSiteName = "Kulturhub"

// User represents a back-office account. Public visitors and association
// members do not have accounts; only administrators sign in.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	Email        string             `bson:"email" json:"email"` // lowercased, unique
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	AuthMethod   string             `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // internal | google
	Role         string             `bson:"role" json:"role"`                                   // admin
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`           // active | disabled

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
