// internal/app/features/login/form.go
package login

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/mkovarik/kulturhub/internal/app/system/auth"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LoginVM is the view model for the sign-in form.
type LoginVM struct {
	viewdata.BaseVM
	Email     string
	Return    string
	HasGoogle bool
	Error     string
	Success   string
}

// ShowForm displays the sign-in form.
// GET /login?return=...
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	templates.Render(w, r, "login_form", LoginVM{
		BaseVM:    viewdata.NewBaseVM(r, "Sign In", "/"),
		Return:    query.Get(r, "return"),
		HasGoogle: h.OAuth != nil,
		Success:   query.Get(r, "success"),
	})
}

// Submit checks email and password and starts a session.
// POST /login
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	returnTo := r.FormValue("return")

	vm := LoginVM{
		BaseVM:    viewdata.NewBaseVM(r, "Sign In", "/"),
		Email:     email,
		Return:    returnTo,
		HasGoogle: h.OAuth != nil,
	}

	if email == "" || password == "" {
		vm.Error = "Enter your email and password."
		templates.Render(w, r, "login_form", vm)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "password login")
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		vm.Error = "Invalid email or password."
		templates.Render(w, r, "login_form", vm)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "user lookup failed", err, "A database error occurred.", "/login")
		return
	}

	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		h.Log.Info("failed login attempt", zap.String("email", user.Email))
		vm.Error = "Invalid email or password."
		templates.Render(w, r, "login_form", vm)
		return
	}

	if user.Status != "" && user.Status != "active" {
		vm.Error = "This account is disabled."
		templates.Render(w, r, "login_form", vm)
		return
	}

	if err := auth.SignIn(w, r, auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.FullName,
		Email: user.Email,
		Role:  user.Role,
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "session sign-in failed", err, "Unable to sign you in.", "/login")
		return
	}

	h.Log.Info("user signed in", zap.String("email", user.Email))
	http.Redirect(w, r, safeReturn(returnTo), http.StatusSeeOther)
}
