// Package registrationstore persists event registrations.
package registrationstore

import (
	"context"
	"time"

	"github.com/mkovarik/kulturhub/internal/app/system/normalize"
	"github.com/mkovarik/kulturhub/internal/app/system/passcode"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("event_registrations")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Registration, error) {
	var reg models.Registration
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&reg)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ListByEvent returns all registrations for an event sorted by attendee name.
func (s *Store) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.Registration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var regs []models.Registration
	if err := cur.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// GetByEventAndName looks up a registration by the exact attendee name as
// registered. The match is case-sensitive: the name in a check-in payload
// must be the stored name verbatim.
func (s *Store) GetByEventAndName(ctx context.Context, eventID primitive.ObjectID, name string) (*models.Registration, error) {
	var reg models.Registration
	err := s.c.FindOne(ctx, bson.M{"event_id": eventID, "name": name}).Decode(&reg)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// GetByAccessCode looks a registration up by code alone, for the public
// "my code" page where the attendee has nothing but the code.
func (s *Store) GetByAccessCode(ctx context.Context, code string) (*models.Registration, error) {
	var reg models.Registration
	err := s.c.FindOne(ctx, bson.M{"access_code": code}).Decode(&reg)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *Store) GetByEventAndAccessCode(ctx context.Context, eventID primitive.ObjectID, code string) (*models.Registration, error) {
	var reg models.Registration
	err := s.c.FindOne(ctx, bson.M{"event_id": eventID, "access_code": code}).Decode(&reg)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Create inserts a new registration, generating its access code.
func (s *Store) Create(ctx context.Context, reg *models.Registration) error {
	now := time.Now().UTC()
	reg.ID = primitive.NewObjectID()
	reg.Name = normalize.Name(reg.Name)
	reg.Email = normalize.Email(reg.Email)
	reg.AccessCode = passcode.New()
	reg.CreatedAt = now
	reg.UpdatedAt = now

	_, err := s.c.InsertOne(ctx, reg)
	return err
}

func (s *Store) Update(ctx context.Context, reg *models.Registration) error {
	update := bson.M{"$set": bson.M{
		"name":        normalize.Name(reg.Name),
		"description": reg.Description,
		"email":       normalize.Email(reg.Email),
		"member":      reg.Member,
		"paid":        reg.Paid,
		"updated_at":  time.Now().UTC(),
	}}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": reg.ID}, update)
	return err
}

// SetArrived records a check-in (or undoes one from the attendee list).
func (s *Store) SetArrived(ctx context.Context, id primitive.ObjectID, arrived bool) error {
	update := bson.M{"$set": bson.M{"arrived": arrived, "updated_at": time.Now().UTC()}}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) SetPaid(ctx context.Context, id primitive.ObjectID, paid bool) error {
	update := bson.M{"$set": bson.M{"paid": paid, "updated_at": time.Now().UTC()}}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteByEvent removes every registration belonging to an event. Called
// when the event itself is deleted.
func (s *Store) DeleteByEvent(ctx context.Context, eventID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"event_id": eventID})
	return err
}

// CountByEvent reports how many attendees are registered for an event.
func (s *Store) CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"event_id": eventID})
}
