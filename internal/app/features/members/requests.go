// internal/app/features/members/requests.go
package members

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/mkovarik/kulturhub/internal/app/system/mailer"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// requestRow is one pending application in the queue.
type requestRow struct {
	ID        string
	FullName  string
	Email     string
	Phone     string
	Address   string
	Message   string
	Submitted string
}

// RequestsVM is the view model for the pending applications page.
type RequestsVM struct {
	viewdata.BaseVM
	Requests []requestRow
	Success  string
}

// ListRequests displays pending membership applications, oldest first.
// GET /admin/members/requests
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "member requests list")
	defer cancel()

	reqs, err := h.Requests.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to list member requests", err, "Unable to load applications.", "/dashboard")
		return
	}

	rows := make([]requestRow, 0, len(reqs))
	for _, req := range reqs {
		rows = append(rows, requestRow{
			ID:        req.ID.Hex(),
			FullName:  req.FullName,
			Email:     req.Email,
			Phone:     req.Phone,
			Address:   req.Address,
			Message:   req.Message,
			Submitted: req.CreatedAt.Format("Jan 2, 2006"),
		})
	}

	vm := RequestsVM{
		BaseVM:   viewdata.NewBaseVM(r, "Membership Applications", "/dashboard"),
		Requests: rows,
	}

	switch r.URL.Query().Get("success") {
	case "approved":
		vm.Success = "Application approved and member created"
	case "rejected":
		vm.Success = "Application rejected"
	}

	templates.Render(w, r, "member_requests", vm)
}

// Approve turns an application into a member. The membership number comes
// from the atomic counter, the request is deleted, and the confirmation
// email goes out fire-and-forget.
// POST /admin/members/requests/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long, h.Log, "member approve")
	defer cancel()

	req, err := h.Requests.GetByID(ctx, objID)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "member request not found", "Application no longer exists.", "/admin/members/requests")
		return
	}

	member := &models.Member{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	if err := h.Members.Create(ctx, member); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to create member", err, "A database error occurred.", "/admin/members/requests")
		return
	}

	if err := h.Requests.Delete(ctx, objID); err != nil {
		// The member exists; the stale request is the lesser problem.
		h.Log.Error("failed to delete approved request", zap.String("id", objID.Hex()), zap.Error(err))
	}

	email := mailer.BuildMemberApprovedEmail(mailer.MemberApprovedEmailData{
		SiteName:         models.DefaultSiteName,
		Name:             member.FullName,
		MembershipNumber: member.MembershipNumber,
	})
	email.To = member.Email
	h.Mail.SendAsync(email)

	h.Log.Info("membership approved",
		zap.String("email", member.Email),
		zap.Int64("membership_number", member.MembershipNumber))

	http.Redirect(w, r, "/admin/members/requests?success=approved", http.StatusSeeOther)
}

// Reject deletes an application without creating a member.
// POST /admin/members/requests/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "member reject")
	defer cancel()

	if err := h.Requests.Delete(ctx, objID); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to delete member request", err, "A database error occurred.", "/admin/members/requests")
		return
	}

	http.Redirect(w, r, "/admin/members/requests?success=rejected", http.StatusSeeOther)
}
