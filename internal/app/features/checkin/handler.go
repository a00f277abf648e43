// internal/app/features/checkin/handler.go
package checkin

import (
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/mkovarik/kulturhub/internal/app/features/errors"
	eventstore "github.com/mkovarik/kulturhub/internal/app/store/events"
	registrationstore "github.com/mkovarik/kulturhub/internal/app/store/registrations"
	checkinsys "github.com/mkovarik/kulturhub/internal/app/system/checkin"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the door check-in scanner page.
type Handler struct {
	Events *eventstore.Store
	Store  *registrationstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs a checkin Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Events: eventstore.New(db),
		Store:  registrationstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

type eventOption struct {
	ID       string
	Title    string
	Selected bool
}

// scanResult is what the scanner shows after each scan.
type scanResult struct {
	Name       string
	Registered bool
	Arrived    bool
	Message    string
}

// ScannerVM is the view model for the scanner page.
type ScannerVM struct {
	viewdata.BaseVM
	Events        []eventOption
	SelectedEvent string
	Result        *scanResult
	Error         string
}

// Show displays the scanner with an event selector. Upcoming events are
// listed first since that is what the door crew is working.
// GET /admin/checkin?event=...
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	vm, ok := h.baseVM(w, r, query.Get(r, "event"))
	if !ok {
		return
	}
	templates.Render(w, r, "checkin_scanner", vm)
}

// Scan resolves one decoded QR payload against the selected event and, on
// a match, marks the attendee arrived.
// POST /admin/checkin
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/admin/checkin")
		return
	}

	selected := r.FormValue("event")
	payload := r.FormValue("payload")

	vm, ok := h.baseVM(w, r, selected)
	if !ok {
		return
	}

	if selected == "" {
		vm.Error = "Select an event first."
		templates.Render(w, r, "checkin_scanner", vm)
		return
	}

	name, err := checkinsys.Resolve(payload, selected)
	switch {
	case errors.Is(err, checkinsys.ErrBadFormat):
		vm.Error = "That code is not one of ours."
		templates.Render(w, r, "checkin_scanner", vm)
		return
	case errors.Is(err, checkinsys.ErrEventMismatch):
		vm.Error = "This ticket is for a different event."
		templates.Render(w, r, "checkin_scanner", vm)
		return
	case err != nil:
		h.ErrLog.LogBadRequest(w, r, "scan resolve failed", err, "Could not read that code.", "/admin/checkin")
		return
	}

	eventID, err := primitive.ObjectIDFromHex(selected)
	if err != nil {
		vm.Error = "Select an event first."
		templates.Render(w, r, "checkin_scanner", vm)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "checkin lookup")
	defer cancel()

	reg, err := h.Store.GetByEventAndName(ctx, eventID, name)
	if errors.Is(err, mongo.ErrNoDocuments) {
		vm.Result = &scanResult{Name: name, Registered: false, Message: "Not Registered"}
		templates.Render(w, r, "checkin_scanner", vm)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "checkin lookup failed", err, "A database error occurred.", "/admin/checkin")
		return
	}

	if err := h.Store.SetArrived(ctx, reg.ID, true); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to mark arrived", err, "A database error occurred.", "/admin/checkin")
		return
	}

	h.Log.Info("attendee checked in",
		zap.String("event_id", selected),
		zap.String("name", name),
		zap.Bool("was_already_arrived", reg.Arrived))

	vm.Result = &scanResult{
		Name:       name,
		Registered: true,
		Arrived:    reg.Arrived,
		Message:    "Registered",
	}
	templates.Render(w, r, "checkin_scanner", vm)
}

// baseVM loads the event options shared by both handlers.
func (h *Handler) baseVM(w http.ResponseWriter, r *http.Request, selected string) (ScannerVM, bool) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "checkin events list")
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to list events", err, "Unable to load events.", "/dashboard")
		return ScannerVM{}, false
	}

	upcoming, past := eventstore.Partition(events, time.Now())
	ordered := append(upcoming, past...)

	options := make([]eventOption, 0, len(ordered))
	for _, ev := range ordered {
		options = append(options, eventOption{
			ID:       ev.ID.Hex(),
			Title:    ev.Title,
			Selected: ev.ID.Hex() == selected,
		})
	}

	return ScannerVM{
		BaseVM:        viewdata.NewBaseVM(r, "Check-in", "/dashboard"),
		Events:        options,
		SelectedEvent: selected,
	}, true
}
