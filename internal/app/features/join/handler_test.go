package join_test

import (
	"net/url"
	"testing"

	uierrors "github.com/mkovarik/kulturhub/internal/app/features/errors"
	"github.com/mkovarik/kulturhub/internal/app/features/join"
	requeststore "github.com/mkovarik/kulturhub/internal/app/store/memberrequests"
	"github.com/mkovarik/kulturhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*join.Handler, *mongo.Database, *requeststore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	handler := join.NewHandler(db, errLog, logger)
	return handler, db, requeststore.New(db)
}

func submitForm() url.Values {
	return url.Values{
		"full_name": {"Jana Novak"},
		"email":     {"jana@example.com"},
		"phone":     {"+420777123456"},
		"address":   {"Main Street 1"},
		"message":   {"Looking forward to the concerts."},
	}
}

func TestSubmit_CreatesRequest(t *testing.T) {
	handler, _, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewFormRequest("/join", submitForm())
	rec := testutil.NewRecorder()

	// Handler will try to render a template which may panic without initialized templates
	func() {
		defer func() { _ = recover() }()
		handler.Submit(rec, req)
	}()

	reqs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reqs) != 1 {
		t.Fatalf("got %d requests, want 1", len(reqs))
	}
	if reqs[0].Email != "jana@example.com" {
		t.Errorf("email: got %q", reqs[0].Email)
	}
}

func TestSubmit_DuplicateEmailAgainstMembers(t *testing.T) {
	handler, db, store := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateMember(ctx, 1, "Jana Novak", "jana@example.com", "+420000000000")

	req := testutil.NewFormRequest("/join", submitForm())
	rec := testutil.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.Submit(rec, req)
	}()

	reqs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reqs) != 0 {
		t.Errorf("duplicate email created %d requests", len(reqs))
	}
}

func TestSubmit_DuplicatePhoneAgainstPendingRequests(t *testing.T) {
	handler, db, store := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateMemberRequest(ctx, "Petr Svoboda", "petr@example.com", "+420777123456")

	req := testutil.NewFormRequest("/join", submitForm())
	rec := testutil.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.Submit(rec, req)
	}()

	reqs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reqs) != 1 {
		t.Fatalf("got %d requests, want just the fixture", len(reqs))
	}
	if reqs[0].Email != "petr@example.com" {
		t.Errorf("unexpected request stored: %q", reqs[0].Email)
	}
}

func TestSubmit_InvalidEmail(t *testing.T) {
	handler, _, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := submitForm()
	form.Set("email", "not-an-email")

	req := testutil.NewFormRequest("/join", form)
	rec := testutil.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.Submit(rec, req)
	}()

	reqs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reqs) != 0 {
		t.Errorf("invalid email created %d requests", len(reqs))
	}
}
