// internal/app/features/dashboard/handler.go

// Package dashboard is the admin landing page: headline counts and links
// into the back-office sections.
package dashboard

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/mkovarik/kulturhub/internal/app/features/errors"
	eventstore "github.com/mkovarik/kulturhub/internal/app/store/events"
	gallerystore "github.com/mkovarik/kulturhub/internal/app/store/gallery"
	requeststore "github.com/mkovarik/kulturhub/internal/app/store/memberrequests"
	memberstore "github.com/mkovarik/kulturhub/internal/app/store/members"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the admin dashboard.
type Handler struct {
	Events   *eventstore.Store
	Members  *memberstore.Store
	Requests *requeststore.Store
	Gallery  *gallerystore.Store
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

// NewHandler constructs a dashboard Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Events:   eventstore.New(db),
		Members:  memberstore.New(db),
		Requests: requeststore.New(db),
		Gallery:  gallerystore.New(db),
		Log:      logger,
		ErrLog:   errLog,
	}
}

// DashboardVM is the view model for the dashboard page.
type DashboardVM struct {
	viewdata.BaseVM
	UpcomingEvents int
	Members        int
	PendingJoins   int64
	GalleryImages  int
}

// Serve renders the dashboard. Count failures degrade to zero rather
// than blocking the page.
// GET /dashboard
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "dashboard counts")
	defer cancel()

	vm := DashboardVM{
		BaseVM: viewdata.NewBaseVM(r, "Dashboard", "/"),
	}

	if events, err := h.Events.List(ctx); err == nil {
		upcoming, _ := eventstore.Partition(events, time.Now())
		vm.UpcomingEvents = len(upcoming)
	} else {
		h.Log.Warn("dashboard event count failed", zap.Error(err))
	}

	if members, err := h.Members.List(ctx); err == nil {
		vm.Members = len(members)
	} else {
		h.Log.Warn("dashboard member count failed", zap.Error(err))
	}

	if pending, err := h.Requests.Count(ctx); err == nil {
		vm.PendingJoins = pending
	} else {
		h.Log.Warn("dashboard request count failed", zap.Error(err))
	}

	if images, err := h.Gallery.List(ctx); err == nil {
		vm.GalleryImages = len(images)
	} else {
		h.Log.Warn("dashboard gallery count failed", zap.Error(err))
	}

	templates.Render(w, r, "dashboard", vm)
}
