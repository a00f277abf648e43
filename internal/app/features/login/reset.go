// internal/app/features/login/reset.go
package login

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	resetstore "github.com/mkovarik/kulturhub/internal/app/store/passwordresets"
	"github.com/mkovarik/kulturhub/internal/app/system/mailer"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

// ForgotVM is the view model for the forgot-password form.
type ForgotVM struct {
	viewdata.BaseVM
	Email string
	Error string
	Sent  bool
}

// ResetVM is the view model for the choose-new-password form.
type ResetVM struct {
	viewdata.BaseVM
	Token string
	Error string
}

// ShowForgot displays the forgot-password form.
// GET /login/forgot
func (h *Handler) ShowForgot(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "forgot_form", ForgotVM{
		BaseVM: viewdata.NewBaseVM(r, "Forgot Password", "/login"),
	})
}

// SubmitForgot issues a reset token and emails the link. The response is
// the same whether or not the email belongs to an account.
// POST /login/forgot
func (h *Handler) SubmitForgot(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login/forgot")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		templates.Render(w, r, "forgot_form", ForgotVM{
			BaseVM: viewdata.NewBaseVM(r, "Forgot Password", "/login"),
			Error:  "Enter your email address.",
		})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "password reset request")
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		// Fall through to the confirmation page without a token.
	case err != nil:
		h.ErrLog.LogServerError(w, r, "user lookup failed", err, "A database error occurred.", "/login/forgot")
		return
	default:
		reset, rerr := h.Resets.Create(ctx, user.ID)
		if rerr != nil {
			h.ErrLog.LogServerError(w, r, "creating reset token failed", rerr, "A database error occurred.", "/login/forgot")
			return
		}
		msg := mailer.BuildPasswordResetEmail(mailer.PasswordResetEmailData{
			SiteName:  models.DefaultSiteName,
			ResetLink: h.BaseURL + "/login/reset?token=" + reset.Token,
			ExpiresIn: "1 hour",
		})
		msg.To = user.Email
		h.Mail.SendAsync(msg)
		h.Log.Info("password reset issued", zap.String("email", user.Email))
	}

	templates.Render(w, r, "forgot_form", ForgotVM{
		BaseVM: viewdata.NewBaseVM(r, "Forgot Password", "/login"),
		Email:  email,
		Sent:   true,
	})
}

// ShowReset displays the new-password form if the token is still good.
// GET /login/reset?token=...
func (h *Handler) ShowReset(w http.ResponseWriter, r *http.Request) {
	token := query.Get(r, "token")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "password reset peek")
	defer cancel()

	if _, err := h.Resets.Peek(ctx, token); err != nil {
		h.renderResetInvalid(w, r)
		return
	}

	templates.Render(w, r, "reset_form", ResetVM{
		BaseVM: viewdata.NewBaseVM(r, "Choose a New Password", "/login"),
		Token:  token,
	})
}

// SubmitReset consumes the token and stores the new password hash.
// POST /login/reset
func (h *Handler) SubmitReset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	token := r.FormValue("token")
	password := r.FormValue("password")
	confirm := r.FormValue("confirm")

	vm := ResetVM{
		BaseVM: viewdata.NewBaseVM(r, "Choose a New Password", "/login"),
		Token:  token,
	}

	if len(password) < minPasswordLen {
		vm.Error = "Password must be at least 8 characters."
		templates.Render(w, r, "reset_form", vm)
		return
	}
	if password != confirm {
		vm.Error = "Passwords do not match."
		templates.Render(w, r, "reset_form", vm)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "password reset consume")
	defer cancel()

	reset, err := h.Resets.Consume(ctx, token)
	if errors.Is(err, resetstore.ErrInvalidToken) {
		h.renderResetInvalid(w, r)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "consuming reset token failed", err, "A database error occurred.", "/login")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hashing new password failed", err, "Unable to set the new password.", "/login")
		return
	}
	if err := h.Users.SetPasswordHash(ctx, reset.UserID, string(hash)); err != nil {
		h.ErrLog.LogServerError(w, r, "storing new password failed", err, "A database error occurred.", "/login")
		return
	}

	h.Log.Info("password reset completed", zap.String("user_id", reset.UserID.Hex()))
	http.Redirect(w, r, "/login?success=reset", http.StatusSeeOther)
}

func (h *Handler) renderResetInvalid(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "reset_form", ResetVM{
		BaseVM: viewdata.NewBaseVM(r, "Choose a New Password", "/login"),
		Error:  "This reset link is invalid or has expired. Request a new one.",
	})
}
