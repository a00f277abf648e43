// internal/app/features/events/admin.go
package events

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/mkovarik/kulturhub/internal/app/system/formutil"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// dateInputLayout matches <input type="datetime-local">.
const dateInputLayout = "2006-01-02T15:04"

// adminRow is one event in the admin listing.
type adminRow struct {
	ID            string
	Title         string
	Date          string
	Location      string
	Registrations int64
}

// AdminListVM is the view model for the admin events page.
type AdminListVM struct {
	viewdata.BaseVM
	Events  []adminRow
	Success string
}

// AdminList displays all events for management.
// GET /admin/events
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "admin events list")
	defer cancel()

	events, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to list events", err, "Unable to load events.", "/dashboard")
		return
	}

	rows := make([]adminRow, 0, len(events))
	for _, ev := range events {
		count, err := h.Registrations.CountByEvent(ctx, ev.ID)
		if err != nil {
			h.Log.Warn("failed to count registrations", zap.String("event_id", ev.ID.Hex()), zap.Error(err))
		}
		rows = append(rows, adminRow{
			ID:            ev.ID.Hex(),
			Title:         ev.Title,
			Date:          ev.Date.Format("Jan 2, 2006 15:04"),
			Location:      ev.Location,
			Registrations: count,
		})
	}

	vm := AdminListVM{
		BaseVM: viewdata.NewBaseVM(r, "Manage Events", "/dashboard"),
		Events: rows,
	}

	switch r.URL.Query().Get("success") {
	case "created":
		vm.Success = "Event created"
	case "updated":
		vm.Success = "Event updated"
	case "deleted":
		vm.Success = "Event and its registrations deleted"
	}

	templates.Render(w, r, "events_admin_list", vm)
}

// eventFormData backs both the new and edit forms.
type eventFormData struct {
	formutil.Base
	ID            string
	EventTitle    string
	Date          string
	Location      string
	Description   string
	MemberPrice   string
	RegularPrice  string
	BrochureURL   string
	BackgroundURL string
}

// ShowNew displays the create form.
// GET /admin/events/new
func (h *Handler) ShowNew(w http.ResponseWriter, r *http.Request) {
	data := eventFormData{}
	formutil.SetBase(&data.Base, r, "New Event", "/admin/events")
	templates.Render(w, r, "event_form", data)
}

// Create handles the create form submission.
// POST /admin/events/new
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/admin/events")
		return
	}

	ev, data, msg := h.eventFromForm(r)
	if msg != "" {
		formutil.SetBase(&data.Base, r, "New Event", "/admin/events")
		data.SetError(msg)
		templates.Render(w, r, "event_form", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "event create")
	defer cancel()

	if _, err := h.Store.Create(ctx, *ev); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to create event", err, "A database error occurred.", "/admin/events")
		return
	}

	http.Redirect(w, r, "/admin/events?success=created", http.StatusSeeOther)
}

// ShowEdit displays the edit form.
// GET /admin/events/{id}/edit
func (h *Handler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "event lookup")
	defer cancel()

	ev, err := h.Store.GetByID(ctx, objID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := eventFormData{
		ID:            ev.ID.Hex(),
		EventTitle:    ev.Title,
		Date:          ev.Date.Format(dateInputLayout),
		Location:      ev.Location,
		Description:   ev.Description,
		MemberPrice:   formatPrice(ev.MemberPrice),
		RegularPrice:  formatPrice(ev.RegularPrice),
		BrochureURL:   ev.BrochureURL,
		BackgroundURL: ev.BackgroundURL,
	}
	formutil.SetBase(&data.Base, r, "Edit Event", "/admin/events")

	templates.Render(w, r, "event_form", data)
}

// Update handles the edit form submission.
// POST /admin/events/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/admin/events")
		return
	}

	ev, data, msg := h.eventFromForm(r)
	if msg != "" {
		data.ID = objID.Hex()
		formutil.SetBase(&data.Base, r, "Edit Event", "/admin/events")
		data.SetError(msg)
		templates.Render(w, r, "event_form", data)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "event update")
	defer cancel()

	if err := h.Store.Update(ctx, objID, *ev); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to update event", err, "A database error occurred.", "/admin/events")
		return
	}

	http.Redirect(w, r, "/admin/events?success=updated", http.StatusSeeOther)
}

// Delete removes an event and all its registrations.
// POST /admin/events/{id}/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long, h.Log, "event delete")
	defer cancel()

	if err := h.Store.Delete(ctx, objID); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to delete event", err, "A database error occurred.", "/admin/events")
		return
	}
	// Registrations are scoped to the event; remove them with it.
	if err := h.Registrations.DeleteByEvent(ctx, objID); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to delete event registrations", err, "A database error occurred.", "/admin/events")
		return
	}

	http.Redirect(w, r, "/admin/events?success=deleted", http.StatusSeeOther)
}

// eventFromForm parses and validates the shared event form. On a
// validation failure it returns the echoed form data and a message.
func (h *Handler) eventFromForm(r *http.Request) (*models.Event, eventFormData, string) {
	data := eventFormData{
		EventTitle:    r.FormValue("title"),
		Date:          r.FormValue("date"),
		Location:      r.FormValue("location"),
		Description:   r.FormValue("description"),
		MemberPrice:   r.FormValue("member_price"),
		RegularPrice:  r.FormValue("regular_price"),
		BrochureURL:   r.FormValue("brochure_url"),
		BackgroundURL: r.FormValue("background_url"),
	}

	if data.EventTitle == "" || data.Date == "" || data.Location == "" {
		return nil, data, "Title, date and location are required."
	}

	date, err := time.ParseInLocation(dateInputLayout, data.Date, time.Local)
	if err != nil {
		return nil, data, "Date is not in a recognized format."
	}

	memberPrice, err := parsePrice(data.MemberPrice)
	if err != nil {
		return nil, data, "Member price must be a number."
	}
	regularPrice, err := parsePrice(data.RegularPrice)
	if err != nil {
		return nil, data, "Regular price must be a number."
	}

	ev := &models.Event{
		Title:         data.EventTitle,
		Date:          date,
		Location:      data.Location,
		Description:   data.Description, // sanitized by the store
		MemberPrice:   memberPrice,
		RegularPrice:  regularPrice,
		BrochureURL:   data.BrochureURL,
		BackgroundURL: data.BackgroundURL,
	}
	return ev, data, ""
}
