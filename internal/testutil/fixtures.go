package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Calling it repeatedly accumulates parameters on the same route context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateEvent creates a test event on the given date.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, date time.Time) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	event := models.Event{
		ID:           primitive.NewObjectID(),
		Title:        title,
		Date:         date,
		Location:     "Test Hall",
		Description:  "<p>Test description</p>",
		MemberPrice:  5,
		RegularPrice: 10,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("events").InsertOne(ctx, event)
	if err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}

	return event
}

// CreateRegistration creates a test registration for an event.
func (f *Fixtures) CreateRegistration(ctx context.Context, eventID primitive.ObjectID, name string, member bool) models.Registration {
	f.t.Helper()

	now := time.Now().UTC()
	reg := models.Registration{
		ID:         primitive.NewObjectID(),
		EventID:    eventID,
		Name:       name,
		Member:     member,
		AccessCode: "testcode",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("event_registrations").InsertOne(ctx, reg)
	if err != nil {
		f.t.Fatalf("failed to create test registration: %v", err)
	}

	return reg
}

// CreateMember creates an approved test member with the given number.
func (f *Fixtures) CreateMember(ctx context.Context, num int64, fullName, email, phone string) models.Member {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Member{
		ID:               primitive.NewObjectID(),
		MembershipNumber: num,
		FullName:         fullName,
		Email:            email,
		Phone:            phone,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err := f.db.Collection("members").InsertOne(ctx, m)
	if err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}

	return m
}

// CreateMemberRequest creates a pending test membership application.
func (f *Fixtures) CreateMemberRequest(ctx context.Context, fullName, email, phone string) models.MemberRequest {
	f.t.Helper()

	req := models.MemberRequest{
		ID:        primitive.NewObjectID(),
		FullName:  fullName,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("member_requests").InsertOne(ctx, req)
	if err != nil {
		f.t.Fatalf("failed to create test member request: %v", err)
	}

	return req
}

// CreateTransaction creates a test bookkeeping entry.
func (f *Fixtures) CreateTransaction(ctx context.Context, txnType string, amount float64, date time.Time) models.Transaction {
	f.t.Helper()

	now := time.Now().UTC()
	txn := models.Transaction{
		ID:          primitive.NewObjectID(),
		Type:        txnType,
		Amount:      amount,
		Description: "Test entry",
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("transactions").InsertOne(ctx, txn)
	if err != nil {
		f.t.Fatalf("failed to create test transaction: %v", err)
	}

	return txn
}

// CreateGalleryImage creates a test gallery image.
func (f *Fixtures) CreateGalleryImage(ctx context.Context, url, caption string) models.GalleryImage {
	f.t.Helper()

	img := models.GalleryImage{
		ID:        primitive.NewObjectID(),
		URL:       url,
		Caption:   caption,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("gallery_images").InsertOne(ctx, img)
	if err != nil {
		f.t.Fatalf("failed to create test gallery image: %v", err)
	}

	return img
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		Email:      email,
		AuthMethod: "internal",
		Role:       "admin",
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}
