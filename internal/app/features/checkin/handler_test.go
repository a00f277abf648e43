package checkin_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/mkovarik/kulturhub/internal/app/features/checkin"
	uierrors "github.com/mkovarik/kulturhub/internal/app/features/errors"
	registrationstore "github.com/mkovarik/kulturhub/internal/app/store/registrations"
	checkinsys "github.com/mkovarik/kulturhub/internal/app/system/checkin"
	"github.com/mkovarik/kulturhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*checkin.Handler, *mongo.Database, *registrationstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	handler := checkin.NewHandler(db, errLog, logger)
	return handler, db, registrationstore.New(db)
}

func scan(t *testing.T, handler *checkin.Handler, eventID, payload string) *testutil.ResponseRecorder {
	t.Helper()
	form := url.Values{
		"event":   {eventID},
		"payload": {payload},
	}
	req := testutil.NewFormRequest("/admin/checkin", form)
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := testutil.NewRecorder()

	// Handler will try to render a template which may panic without
	// initialized templates.
	func() {
		defer func() { _ = recover() }()
		handler.Scan(rec, req)
	}()
	return rec
}

func TestScan_MarksArrived(t *testing.T) {
	handler, db, store := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ev := fx.CreateEvent(ctx, "Spring Concert", time.Now().Add(24*time.Hour))
	reg := fx.CreateRegistration(ctx, ev.ID, "Jana Novak", true)

	scan(t, handler, ev.ID.Hex(), checkinsys.Payload("Jana Novak", ev.ID.Hex()))

	got, err := store.GetByID(ctx, reg.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Arrived {
		t.Error("registration not marked arrived after a matching scan")
	}
}

func TestScan_NameWithSeparator(t *testing.T) {
	handler, db, store := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ev := fx.CreateEvent(ctx, "Spring Concert", time.Now().Add(24*time.Hour))
	reg := fx.CreateRegistration(ctx, ev.ID, "Duo - Jana & Petr", false)

	scan(t, handler, ev.ID.Hex(), checkinsys.Payload("Duo - Jana & Petr", ev.ID.Hex()))

	got, err := store.GetByID(ctx, reg.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Arrived {
		t.Error("split must happen at the last separator, not the first")
	}
}

func TestScan_WrongEventDoesNotCrossLookup(t *testing.T) {
	handler, db, store := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	concert := fx.CreateEvent(ctx, "Spring Concert", time.Now().Add(24*time.Hour))
	ball := fx.CreateEvent(ctx, "Autumn Ball", time.Now().Add(48*time.Hour))
	reg := fx.CreateRegistration(ctx, concert.ID, "Jana Novak", true)

	// Ticket issued for the concert, scanner set to the ball.
	scan(t, handler, ball.ID.Hex(), checkinsys.Payload("Jana Novak", concert.ID.Hex()))

	got, err := store.GetByID(ctx, reg.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Arrived {
		t.Error("a mismatched scan must not mark the other event's registration")
	}
}

func TestScan_CaseSensitiveName(t *testing.T) {
	handler, db, store := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ev := fx.CreateEvent(ctx, "Spring Concert", time.Now().Add(24*time.Hour))
	reg := fx.CreateRegistration(ctx, ev.ID, "Jana Novak", true)

	scan(t, handler, ev.ID.Hex(), checkinsys.Payload("jana novak", ev.ID.Hex()))

	got, err := store.GetByID(ctx, reg.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Arrived {
		t.Error("lookup must be exact and case sensitive")
	}
}

func TestScan_BadFormatLeavesNothingArrived(t *testing.T) {
	handler, db, store := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ev := fx.CreateEvent(ctx, "Spring Concert", time.Now().Add(24*time.Hour))
	reg := fx.CreateRegistration(ctx, ev.ID, "Jana Novak", true)

	scan(t, handler, ev.ID.Hex(), "garbage without separator")

	got, err := store.GetByID(ctx, reg.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Arrived {
		t.Error("an unreadable scan must not check anyone in")
	}
}
