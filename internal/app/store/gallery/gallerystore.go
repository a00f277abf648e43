// Package gallerystore persists gallery images.
package gallerystore

import (
	"context"
	"time"

	"github.com/mkovarik/kulturhub/internal/app/system/imageurl"
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
	return &Store{c: db.Collection("gallery_images")}
}

// List returns all images, newest first.
func (s *Store) List(ctx context.Context) ([]models.GalleryImage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var images []models.GalleryImage
	if err := cur.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// Create inserts an image, rewriting sharing-page URLs (Dropbox, Google
// Drive) to their direct-content form first.
func (s *Store) Create(ctx context.Context, img *models.GalleryImage) error {
	img.ID = primitive.NewObjectID()
	img.URL = imageurl.Normalize(img.URL)
	img.CreatedAt = time.Now().UTC()

	_, err := s.c.InsertOne(ctx, img)
	return err
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
