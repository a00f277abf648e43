package events_test

import (
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	uierrors "github.com/mkovarik/kulturhub/internal/app/features/errors"
	"github.com/mkovarik/kulturhub/internal/app/features/events"
	eventstore "github.com/mkovarik/kulturhub/internal/app/store/events"
	"github.com/mkovarik/kulturhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*events.Handler, *mongo.Database, *eventstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	handler := events.NewHandler(db, errLog, logger)
	return handler, db, eventstore.New(db)
}

func TestNewHandler(t *testing.T) {
	h, _, _ := newTestHandler(t)
	if h == nil {
		t.Fatal("NewHandler() returned nil")
	}
}

func TestCreate_Success(t *testing.T) {
	handler, _, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{
		"title":         {"Spring Concert"},
		"date":          {"2027-05-01T19:00"},
		"location":      {"Town Hall"},
		"description":   {"<p>An evening of music.</p>"},
		"member_price":  {"5"},
		"regular_price": {"10"},
	}

	req := testutil.NewFormRequest("/admin/events/new", form)
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := testutil.NewRecorder()

	handler.Create(rec, req)

	rec.AssertRedirect(t, "/admin/events?success=created")

	evs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("got %d events, want 1", len(evs))
	}
	if evs[0].Title != "Spring Concert" {
		t.Errorf("title: got %q", evs[0].Title)
	}
	if evs[0].RegularPrice != 10 {
		t.Errorf("regular price: got %v", evs[0].RegularPrice)
	}
}

func TestUpdate_PersistsChanges(t *testing.T) {
	handler, db, store := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ev := fx.CreateEvent(ctx, "Spring Concert", time.Now().Add(24*time.Hour))

	form := url.Values{
		"title":         {"Spring Concert (rescheduled)"},
		"date":          {"2027-06-15T19:00"},
		"location":      {"Riverside Park"},
		"description":   {"<p>Moved outdoors.</p>"},
		"member_price":  {"5"},
		"regular_price": {"12"},
	}

	req := testutil.NewFormRequest("/admin/events/"+ev.ID.Hex(), form)
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", ev.ID.Hex())
	rec := testutil.NewRecorder()

	handler.Update(rec, req)

	rec.AssertRedirect(t, "/admin/events?success=updated")

	got, err := store.GetByID(ctx, ev.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Spring Concert (rescheduled)" {
		t.Errorf("title: got %q", got.Title)
	}
	if got.Location != "Riverside Park" {
		t.Errorf("location: got %q", got.Location)
	}
	if got.RegularPrice != 12 {
		t.Errorf("regular price: got %v", got.RegularPrice)
	}
}

func TestCreate_MissingTitle(t *testing.T) {
	handler, _, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{
		"date":     {"2027-05-01T19:00"},
		"location": {"Town Hall"},
	}

	req := testutil.NewFormRequest("/admin/events/new", form)
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()

	// Handler will try to render a template which may panic without initialized templates
	func() {
		defer func() { _ = recover() }()
		handler.Create(rec, req)
	}()

	evs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(evs) != 0 {
		t.Errorf("invalid form created %d events", len(evs))
	}
}

func TestDelete_RemovesRegistrations(t *testing.T) {
	handler, db, store := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ev := fx.CreateEvent(ctx, "Doomed Event", time.Now().Add(24*time.Hour))
	fx.CreateRegistration(ctx, ev.ID, "Jana Novak", true)

	req := testutil.NewAuthenticatedRequest("POST", "/admin/events/"+ev.ID.Hex()+"/delete", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", ev.ID.Hex())
	rec := testutil.NewRecorder()

	handler.Delete(rec, req)

	rec.AssertRedirect(t, "/admin/events?success=deleted")

	if _, err := store.GetByID(ctx, ev.ID); err == nil {
		t.Error("event still present after delete")
	}
	n, err := db.Collection("event_registrations").CountDocuments(ctx, map[string]any{"event_id": ev.ID})
	if err != nil {
		t.Fatalf("count registrations: %v", err)
	}
	if n != 0 {
		t.Errorf("registrations left after event delete: %d", n)
	}
}
