package eventstore

import (
	"context"
	"time"

	"github.com/mkovarik/kulturhub/internal/app/system/htmlsanitize"
	"github.com/mkovarik/kulturhub/internal/app/system/normalize"
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
	return &Store{c: db.Collection("events")}
}

// GetByID loads one event.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns every event ascending by date.
func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Create inserts a new event. The description is sanitized before storage.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	e.ID = primitive.NewObjectID()
	e.Title = normalize.Name(e.Title)
	e.Description = htmlsanitize.Sanitize(e.Description)

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// Update replaces the editable fields of an event.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, e models.Event) error {
	set := bson.M{
		"title":          normalize.Name(e.Title),
		"date":           e.Date,
		"location":       e.Location,
		"description":    htmlsanitize.Sanitize(e.Description),
		"member_price":   e.MemberPrice,
		"regular_price":  e.RegularPrice,
		"brochure_url":   e.BrochureURL,
		"background_url": e.BackgroundURL,
		"updated_at":     time.Now(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete removes an event. The caller is responsible for deleting the
// event's registrations as well.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
