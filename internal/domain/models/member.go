// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is an approved membership application. The membership number is
// assigned once at approval time and never reused.
type Member struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MembershipNumber int64              `bson:"membership_number" json:"membership_number"`
	FullName         string             `bson:"full_name" json:"full_name"`
	Email            string             `bson:"email" json:"email"`
	Phone            string             `bson:"phone" json:"phone"`
	Address          string             `bson:"address,omitempty" json:"address,omitempty"`
	Processed        bool               `bson:"processed" json:"processed"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// MemberRequest is a prospective member's self-submitted application.
// It is consumed (deleted) when an admin approves or rejects it.
type MemberRequest struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"full_name" json:"full_name"`
	Email    string             `bson:"email" json:"email"`
	Phone    string             `bson:"phone" json:"phone"`
	Address  string             `bson:"address,omitempty" json:"address,omitempty"`
	Message  string             `bson:"message,omitempty" json:"message,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
