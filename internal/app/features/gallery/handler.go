// internal/app/features/gallery/handler.go
package gallery

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/mkovarik/kulturhub/internal/app/features/errors"
	gallerystore "github.com/mkovarik/kulturhub/internal/app/store/gallery"
	"github.com/mkovarik/kulturhub/internal/app/system/formutil"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the gallery pages.
type Handler struct {
	Store  *gallerystore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs a gallery Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  gallerystore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

type imageVM struct {
	ID      string
	URL     string
	Caption string
}

// GalleryVM is the view model for both the public grid and the admin page.
type GalleryVM struct {
	viewdata.BaseVM
	Images  []imageVM
	Success string
}

// PublicGrid displays the photo gallery.
// GET /gallery
func (h *Handler) PublicGrid(w http.ResponseWriter, r *http.Request) {
	vm, ok := h.loadGallery(w, r, "Gallery", "/")
	if !ok {
		return
	}
	templates.Render(w, r, "gallery_grid", vm)
}

// AdminList displays the gallery with add/delete controls.
// GET /admin/gallery
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	vm, ok := h.loadGallery(w, r, "Manage Gallery", "/dashboard")
	if !ok {
		return
	}
	switch r.URL.Query().Get("success") {
	case "added":
		vm.Success = "Image added"
	case "deleted":
		vm.Success = "Image deleted"
	}
	templates.Render(w, r, "gallery_admin", vm)
}

func (h *Handler) loadGallery(w http.ResponseWriter, r *http.Request, title, back string) (GalleryVM, bool) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "gallery list")
	defer cancel()

	images, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to list gallery images", err, "Unable to load the gallery.", back)
		return GalleryVM{}, false
	}

	vms := make([]imageVM, 0, len(images))
	for _, img := range images {
		vms = append(vms, imageVM{ID: img.ID.Hex(), URL: img.URL, Caption: img.Caption})
	}

	return GalleryVM{
		BaseVM: viewdata.NewBaseVM(r, title, back),
		Images: vms,
	}, true
}

// addFormData backs the add-image form.
type addFormData struct {
	formutil.Base
	URL     string
	Caption string
}

// ShowAdd displays the add-image form.
// GET /admin/gallery/new
func (h *Handler) ShowAdd(w http.ResponseWriter, r *http.Request) {
	data := addFormData{}
	formutil.SetBase(&data.Base, r, "Add Image", "/admin/gallery")
	templates.Render(w, r, "gallery_add", data)
}

// Add handles the add-image submission. Sharing-page URLs are normalized
// by the store before the document is written.
// POST /admin/gallery/new
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/admin/gallery")
		return
	}

	imgURL := r.FormValue("url")
	caption := r.FormValue("caption")

	if imgURL == "" {
		data := addFormData{URL: imgURL, Caption: caption}
		formutil.SetBase(&data.Base, r, "Add Image", "/admin/gallery")
		data.SetError("Image URL is required.")
		templates.Render(w, r, "gallery_add", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "gallery add")
	defer cancel()

	img := &models.GalleryImage{URL: imgURL, Caption: caption}
	if err := h.Store.Create(ctx, img); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to add gallery image", err, "A database error occurred.", "/admin/gallery")
		return
	}

	http.Redirect(w, r, "/admin/gallery?success=added", http.StatusSeeOther)
}

// Delete removes an image.
// POST /admin/gallery/{id}/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "gallery delete")
	defer cancel()

	if err := h.Store.Delete(ctx, objID); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to delete gallery image", err, "A database error occurred.", "/admin/gallery")
		return
	}

	http.Redirect(w, r, "/admin/gallery?success=deleted", http.StatusSeeOther)
}
