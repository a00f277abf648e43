package registrationstore

import (
	"errors"
	"testing"
	"time"

	"github.com/mkovarik/kulturhub/internal/app/system/passcode"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"github.com/mkovarik/kulturhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_GeneratesAccessCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	event := fx.CreateEvent(ctx, "Spring Concert", time.Now().Add(24*time.Hour))

	reg := &models.Registration{EventID: event.ID, Name: "Jana Novak"}
	if err := store.Create(ctx, reg); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(reg.AccessCode) != passcode.Length {
		t.Errorf("access code %q: got length %d, want %d", reg.AccessCode, len(reg.AccessCode), passcode.Length)
	}

	got, err := store.GetByEventAndAccessCode(ctx, event.ID, reg.AccessCode)
	if err != nil {
		t.Fatalf("GetByEventAndAccessCode: %v", err)
	}
	if got.Name != "Jana Novak" {
		t.Errorf("name: got %q", got.Name)
	}
}

func TestGetByEventAndName_CaseSensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	event := fx.CreateEvent(ctx, "Spring Concert", time.Now().Add(24*time.Hour))
	fx.CreateRegistration(ctx, event.ID, "Jana Novak", true)

	if _, err := store.GetByEventAndName(ctx, event.ID, "Jana Novak"); err != nil {
		t.Fatalf("exact name lookup: %v", err)
	}

	_, err := store.GetByEventAndName(ctx, event.ID, "jana novak")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("case-variant lookup: got %v, want ErrNoDocuments", err)
	}
}

func TestGetByEventAndName_ScopedToEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	eventA := fx.CreateEvent(ctx, "Concert A", time.Now().Add(24*time.Hour))
	eventB := fx.CreateEvent(ctx, "Concert B", time.Now().Add(48*time.Hour))
	fx.CreateRegistration(ctx, eventA.ID, "Jana Novak", true)

	_, err := store.GetByEventAndName(ctx, eventB.ID, "Jana Novak")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("cross-event lookup: got %v, want ErrNoDocuments", err)
	}
}

func TestSetArrived(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	event := fx.CreateEvent(ctx, "Spring Concert", time.Now().Add(24*time.Hour))
	reg := fx.CreateRegistration(ctx, event.ID, "Jana Novak", false)

	if err := store.SetArrived(ctx, reg.ID, true); err != nil {
		t.Fatalf("SetArrived: %v", err)
	}
	got, err := store.GetByID(ctx, reg.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Arrived {
		t.Error("expected arrived=true")
	}

	if err := store.SetArrived(ctx, reg.ID, false); err != nil {
		t.Fatalf("SetArrived undo: %v", err)
	}
	got, err = store.GetByID(ctx, reg.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Arrived {
		t.Error("expected arrived=false after undo")
	}
}

func TestDeleteByEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	eventA := fx.CreateEvent(ctx, "Concert A", time.Now().Add(24*time.Hour))
	eventB := fx.CreateEvent(ctx, "Concert B", time.Now().Add(48*time.Hour))
	fx.CreateRegistration(ctx, eventA.ID, "One", false)
	fx.CreateRegistration(ctx, eventA.ID, "Two", false)
	fx.CreateRegistration(ctx, eventB.ID, "Three", false)

	if err := store.DeleteByEvent(ctx, eventA.ID); err != nil {
		t.Fatalf("DeleteByEvent: %v", err)
	}

	n, err := store.CountByEvent(ctx, eventA.ID)
	if err != nil {
		t.Fatalf("CountByEvent: %v", err)
	}
	if n != 0 {
		t.Errorf("event A registrations: got %d, want 0", n)
	}

	n, err = store.CountByEvent(ctx, eventB.ID)
	if err != nil {
		t.Fatalf("CountByEvent: %v", err)
	}
	if n != 1 {
		t.Errorf("event B registrations: got %d, want 1", n)
	}
}
