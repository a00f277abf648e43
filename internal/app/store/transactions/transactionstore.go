// Package transactionstore persists bookkeeping transactions.
package transactionstore

import (
	"context"
	"time"

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
	return &Store{c: db.Collection("transactions")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&txn)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// List returns all transactions newest first. The ledger is small enough
// that the finance pages and the CSV export both load it whole.
func (s *Store) List(ctx context.Context) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var txns []models.Transaction
	if err := cur.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *Store) Create(ctx context.Context, txn *models.Transaction) error {
	now := time.Now().UTC()
	txn.ID = primitive.NewObjectID()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	_, err := s.c.InsertOne(ctx, txn)
	return err
}

// CreateMany bulk-inserts imported transactions. The rows have already
// been validated by the CSV pre-scan.
func (s *Store) CreateMany(ctx context.Context, txns []models.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(txns))
	for i := range txns {
		txns[i].ID = primitive.NewObjectID()
		txns[i].CreatedAt = now
		txns[i].UpdatedAt = now
		docs = append(docs, txns[i])
	}
	_, err := s.c.InsertMany(ctx, docs)
	return err
}

func (s *Store) Update(ctx context.Context, txn *models.Transaction) error {
	update := bson.M{"$set": bson.M{
		"type":        txn.Type,
		"amount":      txn.Amount,
		"description": txn.Description,
		"date":        txn.Date,
		"recurring":   txn.Recurring,
		"updated_at":  time.Now().UTC(),
	}}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": txn.ID}, update)
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
