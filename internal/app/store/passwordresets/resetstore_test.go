package resetstore

import (
	"errors"
	"testing"

	"github.com/mkovarik/kulturhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestConsume_SingleUse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	pr, err := store.Create(ctx, userID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Consume(ctx, pr.Token)
	if err != nil {
		t.Fatalf("first Consume: %v", err)
	}
	if got.UserID != userID {
		t.Errorf("user ID: got %s, want %s", got.UserID.Hex(), userID.Hex())
	}

	_, err = store.Consume(ctx, pr.Token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("second Consume: got %v, want ErrInvalidToken", err)
	}
}

func TestConsume_UnknownToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Consume(ctx, "not-a-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestPeek_DoesNotConsume(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	pr, err := store.Create(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := store.Peek(ctx, pr.Token); err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if _, err := store.Consume(ctx, pr.Token); err != nil {
		t.Errorf("Consume after Peek: %v", err)
	}
}
