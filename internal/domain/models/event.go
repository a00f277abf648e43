// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a single association event. Registrations for the event live in
// the event_registrations collection, keyed by event_id.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Date        time.Time          `bson:"date" json:"date"`
	Location    string             `bson:"location" json:"location"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"` // sanitized HTML

	// Price tiers in the association's currency. Members pay MemberPrice,
	// everyone else RegularPrice.
	MemberPrice  float64 `bson:"member_price" json:"member_price"`
	RegularPrice float64 `bson:"regular_price" json:"regular_price"`

	BrochureURL   string `bson:"brochure_url,omitempty" json:"brochure_url,omitempty"`
	BackgroundURL string `bson:"background_url,omitempty" json:"background_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
