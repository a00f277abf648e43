// Package memberstore persists approved members and hands out
// membership numbers.
package memberstore

import (
	"context"
	"time"

	"github.com/mkovarik/kulturhub/internal/app/system/normalize"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c        *mongo.Collection
	counters *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("members"),
		counters: db.Collection("counters"),
	}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	var m models.Member
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns all members, newest membership number first.
func (s *Store) List(ctx context.Context) ([]models.Member, error) {
	opts := options.Find().SetSort(bson.D{{Key: "membership_number", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.Member
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"email": normalize.Email(email)})
	return n > 0, err
}

func (s *Store) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"phone": normalize.Phone(phone)})
	return n > 0, err
}

// NextMembershipNumber atomically increments and returns the membership
// counter. The counter document is upserted on first use, so the first
// number handed out is 1. Concurrent approvals each get a distinct
// number; numbers are never reused even if a member is later deleted.
func (s *Store) NextMembershipNumber(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "membership_number"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// Create inserts a member. When m.MembershipNumber is zero a fresh number
// is drawn from the counter first.
func (s *Store) Create(ctx context.Context, m *models.Member) error {
	if m.MembershipNumber == 0 {
		num, err := s.NextMembershipNumber(ctx)
		if err != nil {
			return err
		}
		m.MembershipNumber = num
	}

	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.FullName = normalize.Name(m.FullName)
	m.Email = normalize.Email(m.Email)
	m.Phone = normalize.Phone(m.Phone)
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err := s.c.InsertOne(ctx, m)
	return err
}

// Update rewrites the editable fields. The membership number is fixed at
// creation and never part of an update.
func (s *Store) Update(ctx context.Context, m *models.Member) error {
	update := bson.M{"$set": bson.M{
		"full_name":  normalize.Name(m.FullName),
		"email":      normalize.Email(m.Email),
		"phone":      normalize.Phone(m.Phone),
		"address":    m.Address,
		"processed":  m.Processed,
		"updated_at": time.Now().UTC(),
	}}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": m.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) SetProcessed(ctx context.Context, id primitive.ObjectID, processed bool) error {
	update := bson.M{"$set": bson.M{"processed": processed, "updated_at": time.Now().UTC()}}
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
