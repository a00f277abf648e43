// internal/app/features/registrations/admin.go
package registrations

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/mkovarik/kulturhub/internal/app/system/finance"
	"github.com/mkovarik/kulturhub/internal/app/system/formutil"
	"github.com/mkovarik/kulturhub/internal/app/system/mailer"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// regRow is one attendee in the admin list.
type regRow struct {
	ID          string
	Name        string
	Description string
	Email       string
	Member      bool
	Arrived     bool
	Paid        bool
	Price       float64
	AccessCode  string
}

// ListVM is the view model for the per-event attendee page.
type ListVM struct {
	viewdata.BaseVM
	EventID       string
	EventName     string
	Registrations []regRow
	Arrived       int
	Revenue       float64
	Success       string
}

// List displays an event's attendees with arrival and payment state.
// GET /admin/events/{eventID}/registrations
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadEvent(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "registrations list")
	defer cancel()

	regs, err := h.Store.ListByEvent(ctx, event.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to list registrations", err, "Unable to load attendees.", "/admin/events")
		return
	}

	rows := make([]regRow, 0, len(regs))
	arrived := 0
	for _, reg := range regs {
		if reg.Arrived {
			arrived++
		}
		rows = append(rows, regRow{
			ID:          reg.ID.Hex(),
			Name:        reg.Name,
			Description: reg.Description,
			Email:       reg.Email,
			Member:      reg.Member,
			Arrived:     reg.Arrived,
			Paid:        reg.Paid,
			Price:       finance.DisplayPrice(reg, *event),
			AccessCode:  reg.AccessCode,
		})
	}

	vm := ListVM{
		BaseVM:        viewdata.NewBaseVM(r, "Attendees: "+event.Title, "/admin/events"),
		EventID:       event.ID.Hex(),
		EventName:     event.Title,
		Registrations: rows,
		Arrived:       arrived,
		Revenue:       finance.Revenue(regs, *event),
	}

	switch r.URL.Query().Get("success") {
	case "created":
		vm.Success = "Attendee registered"
	case "updated":
		vm.Success = "Registration updated"
	case "deleted":
		vm.Success = "Registration deleted"
	}

	templates.Render(w, r, "registrations_list", vm)
}

// regFormData backs both the new and edit forms.
type regFormData struct {
	formutil.Base
	EventID     string
	ID          string
	Name        string
	Description string
	Email       string
	Member      bool
	Paid        bool
}

// ShowNew displays the registration form.
// GET /admin/events/{eventID}/registrations/new
func (h *Handler) ShowNew(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadEvent(w, r)
	if !ok {
		return
	}

	data := regFormData{EventID: event.ID.Hex()}
	formutil.SetBase(&data.Base, r, "Register Attendee", "/admin/events/"+event.ID.Hex()+"/registrations")
	templates.Render(w, r, "registration_form", data)
}

// Create registers an attendee. The access code is generated by the
// store; when an email is given, the code goes out fire-and-forget.
// POST /admin/events/{eventID}/registrations/new
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadEvent(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/admin/events")
		return
	}

	listURL := "/admin/events/" + event.ID.Hex() + "/registrations"

	data := regFormData{
		EventID:     event.ID.Hex(),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Email:       r.FormValue("email"),
		Member:      r.FormValue("member") == "on",
		Paid:        r.FormValue("paid") == "on",
	}

	if data.Name == "" || data.Description == "" {
		formutil.SetBase(&data.Base, r, "Register Attendee", listURL)
		data.SetError("Name and description are required.")
		templates.Render(w, r, "registration_form", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "registration create")
	defer cancel()

	reg := &models.Registration{
		EventID:     event.ID,
		Name:        data.Name,
		Description: data.Description,
		Email:       data.Email,
		Member:      data.Member,
		Paid:        data.Paid,
	}
	if err := h.Store.Create(ctx, reg); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to create registration", err, "A database error occurred.", listURL)
		return
	}

	if reg.Email != "" {
		email := mailer.BuildAccessCodeEmail(mailer.AccessCodeEmailData{
			SiteName:   models.DefaultSiteName,
			EventTitle: event.Title,
			Name:       reg.Name,
			AccessCode: reg.AccessCode,
			CodeURL:    h.BaseURL + "/mycode",
		})
		email.To = reg.Email
		h.Mail.SendAsync(email)
	}

	h.Log.Info("attendee registered",
		zap.String("event_id", event.ID.Hex()),
		zap.String("name", reg.Name))

	http.Redirect(w, r, listURL+"?success=created", http.StatusSeeOther)
}

// ShowEdit displays the edit form.
// GET /admin/events/{eventID}/registrations/{id}/edit
func (h *Handler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadEvent(w, r)
	if !ok {
		return
	}
	reg, ok := h.loadRegistration(w, r)
	if !ok {
		return
	}

	data := regFormData{
		EventID:     event.ID.Hex(),
		ID:          reg.ID.Hex(),
		Name:        reg.Name,
		Description: reg.Description,
		Email:       reg.Email,
		Member:      reg.Member,
		Paid:        reg.Paid,
	}
	formutil.SetBase(&data.Base, r, "Edit Registration", "/admin/events/"+event.ID.Hex()+"/registrations")
	templates.Render(w, r, "registration_form", data)
}

// Update handles the edit form submission.
// POST /admin/events/{eventID}/registrations/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadEvent(w, r)
	if !ok {
		return
	}
	reg, ok := h.loadRegistration(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/admin/events")
		return
	}

	listURL := "/admin/events/" + event.ID.Hex() + "/registrations"

	data := regFormData{
		EventID:     event.ID.Hex(),
		ID:          reg.ID.Hex(),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Email:       r.FormValue("email"),
		Member:      r.FormValue("member") == "on",
		Paid:        r.FormValue("paid") == "on",
	}

	if data.Name == "" || data.Description == "" {
		formutil.SetBase(&data.Base, r, "Edit Registration", listURL)
		data.SetError("Name and description are required.")
		templates.Render(w, r, "registration_form", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "registration update")
	defer cancel()

	reg.Name = data.Name
	reg.Description = data.Description
	reg.Email = data.Email
	reg.Member = data.Member
	reg.Paid = data.Paid
	if err := h.Store.Update(ctx, reg); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to update registration", err, "A database error occurred.", listURL)
		return
	}

	http.Redirect(w, r, listURL+"?success=updated", http.StatusSeeOther)
}

// ToggleArrived flips the arrived flag from the attendee list, for manual
// corrections when a scan was wrong or impossible.
// POST /admin/events/{eventID}/registrations/{id}/arrived
func (h *Handler) ToggleArrived(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadEvent(w, r)
	if !ok {
		return
	}
	reg, ok := h.loadRegistration(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "registration arrived toggle")
	defer cancel()

	if err := h.Store.SetArrived(ctx, reg.ID, !reg.Arrived); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to toggle arrived", err, "A database error occurred.", "/admin/events")
		return
	}

	http.Redirect(w, r, "/admin/events/"+event.ID.Hex()+"/registrations", http.StatusSeeOther)
}

// TogglePaid flips the paid flag.
// POST /admin/events/{eventID}/registrations/{id}/paid
func (h *Handler) TogglePaid(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadEvent(w, r)
	if !ok {
		return
	}
	reg, ok := h.loadRegistration(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "registration paid toggle")
	defer cancel()

	if err := h.Store.SetPaid(ctx, reg.ID, !reg.Paid); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to toggle paid", err, "A database error occurred.", "/admin/events")
		return
	}

	http.Redirect(w, r, "/admin/events/"+event.ID.Hex()+"/registrations", http.StatusSeeOther)
}

// Delete removes a registration.
// POST /admin/events/{eventID}/registrations/{id}/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	event, ok := h.loadEvent(w, r)
	if !ok {
		return
	}
	reg, ok := h.loadRegistration(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "registration delete")
	defer cancel()

	if err := h.Store.Delete(ctx, reg.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to delete registration", err, "A database error occurred.", "/admin/events")
		return
	}

	http.Redirect(w, r, "/admin/events/"+event.ID.Hex()+"/registrations?success=deleted", http.StatusSeeOther)
}

// loadEvent resolves the {eventID} URL param. A missing event 404s.
func (h *Handler) loadEvent(w http.ResponseWriter, r *http.Request) (*models.Event, bool) {
	objID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "eventID"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "event lookup")
	defer cancel()

	event, err := h.Events.GetByID(ctx, objID)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return event, true
}

// loadRegistration resolves the {id} URL param.
func (h *Handler) loadRegistration(w http.ResponseWriter, r *http.Request) (*models.Registration, bool) {
	objID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "registration lookup")
	defer cancel()

	reg, err := h.Store.GetByID(ctx, objID)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return reg, true
}
