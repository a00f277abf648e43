// internal/domain/models/galleryimage.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GalleryImage is one photo in the public gallery. URL is the normalized
// raw-content URL, not the sharing page the admin pasted.
type GalleryImage struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	URL     string             `bson:"url" json:"url"`
	Caption string             `bson:"caption,omitempty" json:"caption,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
