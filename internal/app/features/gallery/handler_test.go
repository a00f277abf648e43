package gallery_test

import (
	"net/url"
	"testing"

	uierrors "github.com/mkovarik/kulturhub/internal/app/features/errors"
	"github.com/mkovarik/kulturhub/internal/app/features/gallery"
	gallerystore "github.com/mkovarik/kulturhub/internal/app/store/gallery"
	"github.com/mkovarik/kulturhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*gallery.Handler, *mongo.Database, *gallerystore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	handler := gallery.NewHandler(db, errLog, logger)
	return handler, db, gallerystore.New(db)
}

func TestAdd_NormalizesDropboxURL(t *testing.T) {
	handler, _, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{
		"url":     {"https://www.dropbox.com/s/abc123/photo.jpg?dl=0"},
		"caption": {"Summer picnic"},
	}

	req := testutil.NewFormRequest("/admin/gallery/new", form)
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := testutil.NewRecorder()

	handler.Add(rec, req)

	rec.AssertRedirect(t, "/admin/gallery?success=added")

	images, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("got %d images, want 1", len(images))
	}
	if images[0].URL != "https://dl.dropboxusercontent.com/s/abc123/photo.jpg" {
		t.Errorf("URL not normalized: %q", images[0].URL)
	}
	if images[0].Caption != "Summer picnic" {
		t.Errorf("caption: got %q", images[0].Caption)
	}
}

func TestDelete(t *testing.T) {
	handler, db, store := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	img := fx.CreateGalleryImage(ctx, "https://example.com/a.jpg", "")

	req := testutil.NewAuthenticatedRequest("POST", "/admin/gallery/"+img.ID.Hex()+"/delete", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", img.ID.Hex())
	rec := testutil.NewRecorder()

	handler.Delete(rec, req)

	rec.AssertRedirect(t, "/admin/gallery?success=deleted")

	images, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("image still present after delete")
	}
}
