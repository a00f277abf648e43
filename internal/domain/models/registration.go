// internal/domain/models/registration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration is one attendee record scoped to a single event.
// Arrived is toggled by the check-in scanner, Paid by the treasurer.
type Registration struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID     primitive.ObjectID `bson:"event_id" json:"event_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Member      bool               `bson:"member" json:"member"`
	Arrived     bool               `bson:"arrived" json:"arrived"`
	Paid        bool               `bson:"paid" json:"paid"`

	// AccessCode lets the attendee open their own QR code page.
	// 8 base-36 characters, generated at create time.
	AccessCode string `bson:"access_code" json:"access_code"`
	Email      string `bson:"email,omitempty" json:"email,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
