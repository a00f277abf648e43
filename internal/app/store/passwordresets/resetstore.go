// Package resetstore persists single-use password reset tokens.
package resetstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TTL is how long a reset link stays valid.
const TTL = time.Hour

var ErrInvalidToken = errors.New("reset token invalid, used, or expired")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("password_resets")}
}

// Create issues a fresh token for the user and returns it. Earlier
// unused tokens for the same user stay valid until they expire.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID) (*models.PasswordReset, error) {
	now := time.Now().UTC()
	pr := &models.PasswordReset{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(TTL),
		CreatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, pr); err != nil {
		return nil, err
	}
	return pr, nil
}

// Consume marks the token used and returns its record. A token can be
// consumed exactly once and only before it expires; anything else is
// ErrInvalidToken. Dead tokens are purged as a side effect.
func (s *Store) Consume(ctx context.Context, token string) (*models.PasswordReset, error) {
	now := time.Now().UTC()

	var pr models.PasswordReset
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{
			"token":      token,
			"used":       false,
			"expires_at": bson.M{"$gt": now},
		},
		bson.M{"$set": bson.M{"used": true}},
	).Decode(&pr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	s.purge(ctx, now)
	return &pr, nil
}

// Peek looks a token up without consuming it, so the reset form can be
// shown before the user submits a new password.
func (s *Store) Peek(ctx context.Context, token string) (*models.PasswordReset, error) {
	var pr models.PasswordReset
	err := s.c.FindOne(ctx, bson.M{
		"token":      token,
		"used":       false,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&pr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

func (s *Store) purge(ctx context.Context, now time.Time) {
	// Best effort; stale rows are harmless and caught next time.
	_, _ = s.c.DeleteMany(ctx, bson.M{"$or": []bson.M{
		{"used": true},
		{"expires_at": bson.M{"$lte": now}},
	}})
}
