// internal/app/features/members/members.go
package members

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/mkovarik/kulturhub/internal/app/system/formutil"
	"github.com/mkovarik/kulturhub/internal/app/system/normalize"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/validators"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memberRow is one member in the register.
type memberRow struct {
	ID               string
	MembershipNumber int64
	FullName         string
	Email            string
	Phone            string
	Address          string
	Processed        bool
}

// ListVM is the view model for the member register.
type ListVM struct {
	viewdata.BaseVM
	Members []memberRow
	Pending int64
	Success string
}

// List displays all members, newest membership number first.
// GET /admin/members
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "members list")
	defer cancel()

	members, err := h.Members.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to list members", err, "Unable to load members.", "/dashboard")
		return
	}

	pending, err := h.Requests.Count(ctx)
	if err != nil {
		h.Log.Warn("failed to count pending requests")
		pending = 0
	}

	rows := make([]memberRow, 0, len(members))
	for _, m := range members {
		rows = append(rows, memberRow{
			ID:               m.ID.Hex(),
			MembershipNumber: m.MembershipNumber,
			FullName:         m.FullName,
			Email:            m.Email,
			Phone:            m.Phone,
			Address:          m.Address,
			Processed:        m.Processed,
		})
	}

	vm := ListVM{
		BaseVM:  viewdata.NewBaseVM(r, "Members", "/dashboard"),
		Members: rows,
		Pending: pending,
	}

	switch r.URL.Query().Get("success") {
	case "updated":
		vm.Success = "Member updated"
	case "deleted":
		vm.Success = "Member deleted"
	}

	templates.Render(w, r, "members_list", vm)
}

// memberFormData backs the edit form.
type memberFormData struct {
	formutil.Base
	ID               string
	MembershipNumber int64
	FullName         string
	Email            string
	Phone            string
	Address          string
	Processed        bool
}

// ShowEdit displays the member edit form.
// GET /admin/members/{id}/edit
func (h *Handler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "member lookup")
	defer cancel()

	m, err := h.Members.GetByID(ctx, objID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := memberFormData{
		ID:               m.ID.Hex(),
		MembershipNumber: m.MembershipNumber,
		FullName:         m.FullName,
		Email:            m.Email,
		Phone:            m.Phone,
		Address:          m.Address,
		Processed:        m.Processed,
	}
	formutil.SetBase(&data.Base, r, "Edit Member", "/admin/members")

	templates.Render(w, r, "member_form", data)
}

// Update handles the edit form submission. The membership number is not
// editable.
// POST /admin/members/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/admin/members")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "member update")
	defer cancel()

	existing, err := h.Members.GetByID(ctx, objID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := memberFormData{
		ID:               objID.Hex(),
		MembershipNumber: existing.MembershipNumber,
		FullName:         r.FormValue("full_name"),
		Email:            r.FormValue("email"),
		Phone:            r.FormValue("phone"),
		Address:          r.FormValue("address"),
		Processed:        r.FormValue("processed") == "on",
	}

	if msg := validateMemberForm(data); msg != "" {
		formutil.SetBase(&data.Base, r, "Edit Member", "/admin/members")
		data.SetError(msg)
		templates.Render(w, r, "member_form", data)
		return
	}

	m := &models.Member{
		ID:        objID,
		FullName:  data.FullName,
		Email:     normalize.Email(data.Email),
		Phone:     normalize.Phone(data.Phone),
		Address:   data.Address,
		Processed: data.Processed,
	}
	if err := h.Members.Update(ctx, m); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to update member", err, "A database error occurred.", "/admin/members")
		return
	}

	http.Redirect(w, r, "/admin/members?success=updated", http.StatusSeeOther)
}

// ToggleProcessed flips the processed flag straight from the register,
// so issuing a membership card is one click.
// POST /admin/members/{id}/processed
func (h *Handler) ToggleProcessed(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "member processed toggle")
	defer cancel()

	m, err := h.Members.GetByID(ctx, objID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.Members.SetProcessed(ctx, objID, !m.Processed); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to toggle processed flag", err, "A database error occurred.", "/admin/members")
		return
	}

	http.Redirect(w, r, "/admin/members", http.StatusSeeOther)
}

// Delete removes a member. The membership number is never reissued.
// POST /admin/members/{id}/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "member delete")
	defer cancel()

	if err := h.Members.Delete(ctx, objID); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to delete member", err, "A database error occurred.", "/admin/members")
		return
	}

	http.Redirect(w, r, "/admin/members?success=deleted", http.StatusSeeOther)
}

func validateMemberForm(data memberFormData) string {
	if data.FullName == "" || data.Email == "" || data.Phone == "" {
		return "Name, email and phone are required."
	}
	if !validators.EmailValid(data.Email) {
		return "That email address doesn't look right."
	}
	if !validators.PhoneValid(data.Phone) {
		return "That phone number doesn't look right."
	}
	return ""
}
