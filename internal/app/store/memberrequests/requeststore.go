// Package requeststore persists pending membership applications.
package requeststore

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
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("member_requests")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MemberRequest, error) {
	var req models.MemberRequest
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns pending requests oldest first, so the queue is worked in
// arrival order.
func (s *Store) List(ctx context.Context) ([]models.MemberRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reqs []models.MemberRequest
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"email": normalize.Email(email)})
	return n > 0, err
}

func (s *Store) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"phone": normalize.Phone(phone)})
	return n > 0, err
}

func (s *Store) Create(ctx context.Context, req *models.MemberRequest) error {
	req.ID = primitive.NewObjectID()
	req.FullName = normalize.Name(req.FullName)
	req.Email = normalize.Email(req.Email)
	req.Phone = normalize.Phone(req.Phone)
	req.CreatedAt = time.Now().UTC()

	_, err := s.c.InsertOne(ctx, req)
	return err
}

// Delete removes a request. Both approval and rejection end here; an
// approved request is copied into the members collection first.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
